package chunk

import "errors"

var (
	// ErrOutOfBounds координаты или индекс вне сегмента 16x16x16
	ErrOutOfBounds = errors.New("chunk: position out of bounds")
	// ErrNibbleRange значение не помещается в 4 бита
	ErrNibbleRange = errors.New("chunk: nibble value out of range")
	// ErrEncodedSize размер сериализованных данных не равен EncodedSize
	ErrEncodedSize = errors.New("chunk: unexpected encoded size")
	// ErrReleased буфер изменяют после возврата в пул
	ErrReleased = errors.New("chunk: buffer used after release")
	// ErrDoubleRelease буфер уже находится в пуле
	ErrDoubleRelease = errors.New("chunk: buffer released twice")
	// ErrForeignBuffer буфер получен не из этого пула
	ErrForeignBuffer = errors.New("chunk: buffer does not belong to this pool")
)
