package classify

import (
	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes feature rows to zero mean and unit variance using the
// statistics captured at fit time. A fitted Scaler is immutable; refitting
// produces a new value.
type Scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// FitScaler computes per-feature mean and standard deviation. Constant
// features get a unit deviation so transformation stays defined.
func FitScaler(rows [][]float64) *Scaler {
	if len(rows) == 0 {
		return &Scaler{}
	}
	width := len(rows[0])
	s := &Scaler{
		Mean: make([]float64, width),
		Std:  make([]float64, width),
	}
	col := make([]float64, len(rows))
	for j := 0; j < width; j++ {
		for i, r := range rows {
			col[i] = r[j]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 || len(rows) < 2 {
			std = 1
		}
		s.Mean[j] = mean
		s.Std[j] = std
	}
	return s
}

// Transform standardizes one row. Rows wider than the fitted statistics are
// truncated; narrower rows are zero-padded before scaling.
func (s *Scaler) Transform(row []float64) []float64 {
	out := make([]float64, len(s.Mean))
	for j := range s.Mean {
		v := 0.0
		if j < len(row) {
			v = row[j]
		}
		out[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return out
}
