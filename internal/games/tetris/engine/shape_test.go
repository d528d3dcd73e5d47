package engine

import "testing"

func TestShapeFullRotationCycle(t *testing.T) {
	for _, k := range Kinds {
		for _, dir := range []int{1, -1} {
			s := k.Shape()
			r := s
			for i := 0; i < 4; i++ {
				r = r.Rotate(dir)
			}
			if r != s {
				t.Errorf("%v: four rotations in dir %d gave\n%v\nexpected\n%v", k, dir, r, s)
			}
		}
	}
}

func TestShapeRotateInverse(t *testing.T) {
	for _, k := range Kinds {
		s := k.Shape()
		if got := s.Rotate(1).Rotate(-1); got != s {
			t.Errorf("%v: CW then CCW gave\n%v\nexpected\n%v", k, got, s)
		}
	}
}

func TestShapeRotateOrientation(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		dir      int
		expected string
	}{
		{"T clockwise", KindT, 1, ".#.\n.##\n.#."},
		{"T counter-clockwise", KindT, -1, ".#.\n##.\n.#."},
		{"I clockwise", KindI, 1, "..#.\n..#.\n..#.\n..#."},
		{"I counter-clockwise", KindI, -1, ".#..\n.#..\n.#..\n.#.."},
		{"J clockwise", KindJ, 1, ".##\n.#.\n.#."},
		{"O clockwise", KindO, 1, "##\n##"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.kind.Shape().Rotate(tc.dir).String(); got != tc.expected {
				t.Errorf("Rotate(%d) =\n%s\nexpected\n%s", tc.dir, got, tc.expected)
			}
		})
	}
}

func TestShapeRotateLeavesOriginal(t *testing.T) {
	s := KindL.Shape()
	before := s.String()
	_ = s.Rotate(1)
	if s.String() != before {
		t.Error("Rotate mutated the receiver")
	}
	if KindL.Shape().String() != before {
		t.Error("Rotate mutated the canonical shape table")
	}
}

func TestShapeSizes(t *testing.T) {
	expected := map[Kind]int{
		KindI: 4, KindJ: 3, KindL: 3, KindO: 2, KindS: 3, KindZ: 3, KindT: 3,
	}
	for k, size := range expected {
		s := k.Shape()
		if s.Size() != size || s.Width() != size {
			t.Errorf("%v: Size() = %d, Width() = %d, expected %d", k, s.Size(), s.Width(), size)
		}
		if n := len(s.Cells()); n != 4 {
			t.Errorf("%v: %d filled cells, expected 4", k, n)
		}
	}
}

func TestParseShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"empty", nil},
		{"too large", []string{".....", ".....", ".....", ".....", "....."}},
		{"not square", []string{"##", "#"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseShape(tc.rows...); err == nil {
				t.Errorf("ParseShape(%q) should fail", tc.rows)
			}
		})
	}
}

func TestKindMetadata(t *testing.T) {
	seen := make(map[string]bool)
	for _, k := range Kinds {
		name := k.String()
		if seen[name] {
			t.Errorf("duplicate kind name %q", name)
		}
		seen[name] = true

		if back, ok := ParseKind(name); !ok || back != k {
			t.Errorf("ParseKind(%q) = %v, %v; expected %v", name, back, ok, k)
		}
	}
	if KindNone.Valid() {
		t.Error("KindNone should not be valid")
	}
	if KindNone.Shape().Size() != 0 {
		t.Error("KindNone should have an empty shape")
	}
}
