package features

import (
	"github.com/kiteco/rating-model/kite-go/ratings/traindata"
	"github.com/kiteco/rating-model/kite-golib/errors"
	"github.com/kiteco/rating-model/kite-golib/sparse"
	"github.com/montanaflynn/stats"
)

// StandardScaler standardizes a numeric column to zero mean and unit
// variance using statistics learned at fit time.
type StandardScaler struct {
	Column string

	Mean float64
	// Std is the population standard deviation of the fitted column, or 1
	// for a constant column so transformed values stay finite. Zero means
	// the scaler is not fitted.
	Std float64
}

// Fit learns the column mean and standard deviation.
func (s *StandardScaler) Fit(frame traindata.Frame) error {
	s.Reset()
	vals, err := frame.Floats(s.Column)
	if err != nil {
		return errors.Wrapf(err, "error fitting scaler")
	}

	mean, err := stats.Mean(vals)
	if err != nil {
		return errors.Wrapf(err, "error fitting scaler on column %s", s.Column)
	}
	std, err := stats.StandardDeviationPopulation(vals)
	if err != nil {
		return errors.Wrapf(err, "error fitting scaler on column %s", s.Column)
	}
	if std == 0 {
		std = 1
	}

	s.Mean = mean
	s.Std = std
	return nil
}

// Transform standardizes the column with the fitted statistics.
func (s *StandardScaler) Transform(frame traindata.Frame) (sparse.Matrix, error) {
	if s.Std == 0 {
		return sparse.Matrix{}, errors.Errorf("scaler is not fitted")
	}
	vals, err := frame.Floats(s.Column)
	if err != nil {
		return sparse.Matrix{}, errors.Wrapf(err, "error transforming column")
	}

	m := sparse.Matrix{
		Cols: 1,
		Rows: make([]sparse.Vector, len(vals)),
	}
	for i, val := range vals {
		m.Rows[i] = sparse.NewVector(map[int]float64{0: (val - s.Mean) / s.Std})
	}
	return m, nil
}

// Width is always one column.
func (s *StandardScaler) Width() int {
	return 1
}

// Reset discards the fitted statistics.
func (s *StandardScaler) Reset() {
	s.Mean = 0
	s.Std = 0
}
