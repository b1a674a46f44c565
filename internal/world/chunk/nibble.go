package chunk

import "fmt"

// NibbleArray хранит 4-битные значения по два в байте.
// Четный индекс занимает младший полубайт, нечетный старший.
type NibbleArray [Volume / 2]byte

// Get возвращает значение по логическому индексу i
func (n *NibbleArray) Get(i int) uint8 {
	checkIndex(i)
	if i&1 == 1 {
		return n[i>>1] >> 4
	}
	return n[i>>1] & 0xF
}

// Set записывает значение по логическому индексу i.
// Значения больше 0xF не усекаются: они испортили бы соседний полубайт.
func (n *NibbleArray) Set(i int, v uint8) {
	checkIndex(i)
	if v > 0xF {
		panic(fmt.Errorf("%w: %d", ErrNibbleRange, v))
	}
	if i&1 == 1 {
		n[i>>1] = n[i>>1]&0x0F | v<<4
	} else {
		n[i>>1] = n[i>>1]&0xF0 | v
	}
}

// Fill заполняет все байты хранилища значением b
func (n *NibbleArray) Fill(b byte) {
	for i := range n {
		n[i] = b
	}
}

// Bytes возвращает упакованное представление
func (n *NibbleArray) Bytes() []byte {
	return n[:]
}

func checkIndex(i int) {
	if i < 0 || i >= Volume {
		panic(fmt.Errorf("%w: index %d", ErrOutOfBounds, i))
	}
}
