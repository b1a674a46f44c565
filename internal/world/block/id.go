package block

// BlockID представляет идентификатор типа блока (один байт в сегменте)
type BlockID uint8

// Константы ID блоков
const (
	AirBlockID     BlockID = 0
	StoneBlockID   BlockID = 1
	DirtBlockID    BlockID = 3
	SaplingBlockID BlockID = 6
	LogBlockID     BlockID = 17
	LeavesBlockID  BlockID = 18
)

// ItemID идентификатор предмета. Для блоков совпадает с BlockID.
type ItemID int16

// Предметы, которые выпадают при разрушении блоков
const (
	SaplingItemID ItemID = ItemID(SaplingBlockID)
	AppleItemID   ItemID = 260
)

// Item описывает выпадающий предмет
type Item struct {
	ID     ItemID
	Damage int16 // Вариант предмета (например, порода саженца)
	Count  uint8
}
