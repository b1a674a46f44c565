package block

// Раскладка байта метаданных для блоков, способных к распаду.
// Биты 0–1 — порода, бит 2 — распад отключён, бит 3 — ожидает проверки.
const (
	MetaVariantMask uint8 = 0x03
	MetaSpeciesMask uint8 = 0x07 // ключ совпадения при поиске опоры
	MetaNoDecay     uint8 = 0x04
	MetaCheckDecay  uint8 = 0x08
)

// DecayState состояние протокола распада
type DecayState uint8

const (
	DecayStable   DecayState = iota // проверка не нужна
	DecayPending                    // сосед изменился, проверить на следующем тике
	DecayDisabled                   // распад отключён навсегда (например, листва поставлена игроком)
)

// String возвращает строковое представление состояния
func (s DecayState) String() string {
	switch s {
	case DecayStable:
		return "stable"
	case DecayPending:
		return "pending"
	case DecayDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// DecayStateOf извлекает состояние распада из метаданных.
// Флаг отключения важнее флага ожидания.
func DecayStateOf(meta uint8) DecayState {
	switch {
	case meta&MetaNoDecay != 0:
		return DecayDisabled
	case meta&MetaCheckDecay != 0:
		return DecayPending
	default:
		return DecayStable
	}
}

// EncodeDecay собирает байт метаданных из породы и состояния распада
func EncodeDecay(variant uint8, state DecayState) uint8 {
	meta := variant & MetaVariantMask
	switch state {
	case DecayPending:
		meta |= MetaCheckDecay
	case DecayDisabled:
		meta |= MetaNoDecay
	}
	return meta
}
