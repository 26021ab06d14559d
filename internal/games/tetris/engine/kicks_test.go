package engine

import (
	"reflect"
	"testing"
)

func TestKicks(t *testing.T) {
	tests := []struct {
		name     string
		family   Family
		from, to int
		want     []Offset
	}{
		{"JLSTZ 0->1", FamilyJLSTZ, 0, 1, []Offset{{0, 0}, {0, -1}, {1, -1}, {-2, 0}, {-2, -1}}},
		{"JLSTZ 3->0", FamilyJLSTZ, 3, 0, []Offset{{0, 0}, {0, -1}, {-1, -1}, {2, 0}, {2, -1}}},
		{"I 0->1", FamilyI, 0, 1, []Offset{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}}},
		{"I 1->0", FamilyI, 1, 0, []Offset{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}}},
		{"O any", FamilyO, 2, 3, []Offset{{0, 0}}},
		{"wrapped orientation", FamilyJLSTZ, 4, -3, []Offset{{0, 0}, {0, -1}, {1, -1}, {-2, 0}, {-2, -1}}},
		{"unknown transition", FamilyJLSTZ, 0, 2, []Offset{{0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kicks(tt.family, tt.from, tt.to); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Kicks(%v, %d, %d) = %v, want %v", tt.family, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestKicksReturnsCopy(t *testing.T) {
	k := Kicks(FamilyI, 0, 1)
	k[1] = Offset{9, 9}
	if got := Kicks(FamilyI, 0, 1)[1]; got != (Offset{-2, 0}) {
		t.Errorf("kick table mutated through returned slice: %+v", got)
	}
}

func TestFamilyOf(t *testing.T) {
	want := map[Kind]Family{
		KindI: FamilyI,
		KindO: FamilyO,
		KindT: FamilyJLSTZ,
		KindS: FamilyJLSTZ,
		KindZ: FamilyJLSTZ,
		KindJ: FamilyJLSTZ,
		KindL: FamilyJLSTZ,
	}
	for k, f := range want {
		if got := FamilyOf(k); got != f {
			t.Errorf("FamilyOf(%v) = %v, want %v", k, got, f)
		}
	}
}
