package domain

import "testing"

func TestMatrixFromRows(t *testing.T) {
	m, err := MatrixFromRows([][]float64{
		{0, 1, 2},
		{1, 0, 1},
		{2, 1, 0},
	})
	if err != nil {
		t.Fatalf("from rows: %v", err)
	}
	if m.Side() != 3 {
		t.Fatalf("side = %d, want 3", m.Side())
	}
	if got := m.At(0, 2); got != 2 {
		t.Errorf("At(0,2) = %v, want 2", got)
	}
	if got := m.At(2, 1); got != 1 {
		t.Errorf("At(2,1) = %v, want 1", got)
	}

	if _, err := MatrixFromRows([][]float64{{0, 1}, {1}}); err == nil {
		t.Fatal("ragged rows: want error")
	}
}

func TestMatrixScaleAndClone(t *testing.T) {
	m, _ := MatrixFromRows([][]float64{
		{0, 10},
		{10, 0},
	})

	c := m.Clone()
	c.Scale(0, 1, 1.5)

	if got := c.At(0, 1); got != 15 {
		t.Errorf("scaled cell = %v, want 15", got)
	}
	if got := m.At(0, 1); got != 10 {
		t.Errorf("original cell mutated: %v, want 10", got)
	}
}

func TestMatrixInBounds(t *testing.T) {
	m := NewMatrix(2)
	for _, tc := range []struct {
		i, j int
		want bool
	}{
		{0, 0, true},
		{1, 1, true},
		{2, 0, false},
		{0, 2, false},
		{-1, 0, false},
	} {
		if got := m.InBounds(tc.i, tc.j); got != tc.want {
			t.Errorf("InBounds(%d,%d) = %v, want %v", tc.i, tc.j, got, tc.want)
		}
	}
}

func TestLonLatList(t *testing.T) {
	coords := []Coordinates{
		{Lat: 47.6062, Lng: -122.3321},
		{Lat: 47.6242, Lng: -122.3321},
	}
	got := LonLatList(coords)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0][0] != -122.3321 || got[0][1] != 47.6062 {
		t.Errorf("pair 0 = %v, want [lng lat]", got[0])
	}
}
