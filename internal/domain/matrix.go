package domain

import "fmt"

// Matrix is a square cost matrix (distances in km or travel times in
// minutes) over depot plus stops. Index 0 is always the depot. Cells are
// stored row-major in one contiguous slice so the solver's inner loops stay
// cache-friendly.
type Matrix struct {
	side  int
	cells []float64
}

// NewMatrix allocates a zeroed side x side matrix.
func NewMatrix(side int) *Matrix {
	return &Matrix{side: side, cells: make([]float64, side*side)}
}

// MatrixFromRows builds a matrix from nested rows, validating squareness.
func MatrixFromRows(rows [][]float64) (*Matrix, error) {
	side := len(rows)
	m := NewMatrix(side)
	for i, row := range rows {
		if len(row) != side {
			return nil, fmt.Errorf("matrix from rows: row %d has %d cells, want %d", i, len(row), side)
		}
		copy(m.cells[i*side:(i+1)*side], row)
	}
	return m, nil
}

// MatrixFromCells wraps an existing row-major cell slice. The slice is not
// copied.
func MatrixFromCells(side int, cells []float64) (*Matrix, error) {
	if len(cells) != side*side {
		return nil, fmt.Errorf("matrix from cells: got %d cells, want %d", len(cells), side*side)
	}
	return &Matrix{side: side, cells: cells}, nil
}

// Side returns the matrix dimension.
func (m *Matrix) Side() int { return m.side }

// At returns the cost from i to j.
func (m *Matrix) At(i, j int) float64 { return m.cells[i*m.side+j] }

// Set assigns the cost from i to j.
func (m *Matrix) Set(i, j int, v float64) { m.cells[i*m.side+j] = v }

// Scale multiplies the cost from i to j by factor.
func (m *Matrix) Scale(i, j int, factor float64) { m.cells[i*m.side+j] *= factor }

// InBounds reports whether (i, j) addresses a real cell.
func (m *Matrix) InBounds(i, j int) bool {
	return i >= 0 && i < m.side && j >= 0 && j < m.side
}

// Cells exposes the row-major backing slice for serialization. Callers must
// not mutate it.
func (m *Matrix) Cells() []float64 { return m.cells }

// Clone returns a deep copy, used before applying per-request perturbations.
func (m *Matrix) Clone() *Matrix {
	out := NewMatrix(m.side)
	copy(out.cells, m.cells)
	return out
}
