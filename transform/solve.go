package transform

import "math"

// pivotEpsilon is the magnitude below which a pivot counts as zero.
const pivotEpsilon = 1e-9

// solve runs Gaussian elimination with partial pivoting on an n x (n+1)
// augmented matrix, in place, and returns the n unknowns.
func solve(m [][]float64) ([]float64, error) {
	n := len(m)
	for col := 0; col < n; col++ {
		pivot := findPivotRow(m, col)
		if pivot < 0 {
			return nil, ErrSingularMatrix
		}
		if pivot != col {
			m[pivot], m[col] = m[col], m[pivot]
		}
		normalizeRow(m[col], col)
		eliminateColumn(m, col)
	}
	x := make([]float64, n)
	for i := range x {
		x[i] = m[i][n]
	}
	return x, nil
}

// findPivotRow returns the row at or below col with the largest entry in col,
// or -1 when every candidate is zero.
func findPivotRow(m [][]float64, col int) int {
	best, bestAbs := -1, pivotEpsilon
	for row := col; row < len(m); row++ {
		if v := math.Abs(m[row][col]); v > bestAbs {
			best, bestAbs = row, v
		}
	}
	return best
}

func normalizeRow(row []float64, col int) {
	p := row[col]
	for j := col; j < len(row); j++ {
		row[j] /= p
	}
}

// eliminateColumn clears col from every other row, leaving the system in
// reduced row echelon form once all columns are done.
func eliminateColumn(m [][]float64, col int) {
	for row := range m {
		if row == col || m[row][col] == 0 {
			continue
		}
		factor := m[row][col]
		for j := col; j < len(m[row]); j++ {
			m[row][j] -= factor * m[col][j]
		}
	}
}
