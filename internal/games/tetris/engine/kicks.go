package engine

// Offset is a (row, col) displacement tried during rotation.
// Positive Row moves down, positive Col moves right.
type Offset struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Family groups kinds that share a kick table.
type Family uint8

const (
	FamilyJLSTZ Family = iota
	FamilyI
	FamilyO
)

// String returns the family name.
func (f Family) String() string {
	switch f {
	case FamilyI:
		return "I"
	case FamilyO:
		return "O"
	default:
		return "JLSTZ"
	}
}

// FamilyOf returns the kick family of a kind.
func FamilyOf(k Kind) Family {
	switch k {
	case KindI:
		return FamilyI
	case KindO:
		return FamilyO
	default:
		return FamilyJLSTZ
	}
}

type transition struct {
	from, to int
}

var jlstzKicks = map[transition][]Offset{
	{0, 1}: {{0, 0}, {0, -1}, {1, -1}, {-2, 0}, {-2, -1}},
	{1, 0}: {{0, 0}, {0, 1}, {-1, 1}, {2, 0}, {2, 1}},
	{1, 2}: {{0, 0}, {0, 1}, {-1, 1}, {2, 0}, {2, 1}},
	{2, 1}: {{0, 0}, {0, -1}, {1, -1}, {-2, 0}, {-2, -1}},
	{2, 3}: {{0, 0}, {0, 1}, {1, 1}, {-2, 0}, {-2, 1}},
	{3, 2}: {{0, 0}, {0, -1}, {-1, -1}, {2, 0}, {2, -1}},
	{3, 0}: {{0, 0}, {0, -1}, {-1, -1}, {2, 0}, {2, -1}},
	{0, 3}: {{0, 0}, {0, 1}, {1, 1}, {-2, 0}, {-2, 1}},
}

var iKicks = map[transition][]Offset{
	{0, 1}: {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{1, 0}: {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{1, 2}: {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
	{2, 1}: {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{2, 3}: {{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}},
	{3, 2}: {{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}},
	{3, 0}: {{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}},
	{0, 3}: {{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}},
}

// Kicks returns the ordered candidate offsets for rotating a piece of family f
// from orientation from to orientation to. The returned slice is a copy.
// O pieces and unknown transitions yield the single zero offset.
func Kicks(f Family, from, to int) []Offset {
	var table map[transition][]Offset
	switch f {
	case FamilyI:
		table = iKicks
	case FamilyJLSTZ:
		table = jlstzKicks
	default:
		return []Offset{{0, 0}}
	}
	offsets, ok := table[transition{from: mod4(from), to: mod4(to)}]
	if !ok {
		return []Offset{{0, 0}}
	}
	out := make([]Offset, len(offsets))
	copy(out, offsets)
	return out
}

// mod4 wraps an orientation into 0..3.
func mod4(n int) int {
	return ((n % 4) + 4) % 4
}
