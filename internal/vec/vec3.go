package vec

// Vec3 представляет трехмерный вектор с целочисленными координатами
type Vec3 struct {
	X int
	Y int
	Z int
}

// Единичные смещения к соседним граням блока.
// Север направлен в сторону -Z, восток в сторону +X.
var (
	Down  = Vec3{X: 0, Y: -1, Z: 0}
	Up    = Vec3{X: 0, Y: 1, Z: 0}
	North = Vec3{X: 0, Y: 0, Z: -1}
	South = Vec3{X: 0, Y: 0, Z: 1}
	West  = Vec3{X: -1, Y: 0, Z: 0}
	East  = Vec3{X: 1, Y: 0, Z: 0}
)

// Faces перечисляет шесть граней в порядке обхода соседей:
// вниз, запад, восток, юг, север, вверх.
var Faces = [6]Vec3{Down, West, East, South, North, Up}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// Side возвращает соседнюю позицию в направлении face
func (v Vec3) Side(face Vec3) Vec3 {
	return v.Add(face)
}

// Neighbors возвращает шесть соседних позиций в порядке Faces
func (v Vec3) Neighbors() [6]Vec3 {
	var out [6]Vec3
	for i, face := range Faces {
		out[i] = v.Add(face)
	}
	return out
}

// ToSegmentCoords преобразует мировые координаты в координаты сегмента 16x16x16
func (v Vec3) ToSegmentCoords() Vec3 {
	return Vec3{X: v.X >> 4, Y: v.Y >> 4, Z: v.Z >> 4} // Деление на 16
}

// LocalInSegment возвращает локальные координаты внутри сегмента
func (v Vec3) LocalInSegment() Vec3 {
	return Vec3{X: v.X & 0xF, Y: v.Y & 0xF, Z: v.Z & 0xF} // Модуль 16
}

// SegmentOrigin возвращает мировые координаты угла сегмента с координатами v
func (v Vec3) SegmentOrigin() Vec3 {
	return Vec3{X: v.X << 4, Y: v.Y << 4, Z: v.Z << 4}
}

// Less задает детерминированный порядок обхода позиций (X, затем Z, затем Y)
func (v Vec3) Less(other Vec3) bool {
	if v.X != other.X {
		return v.X < other.X
	}
	if v.Z != other.Z {
		return v.Z < other.Z
	}
	return v.Y < other.Y
}
