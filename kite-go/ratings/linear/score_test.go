package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rsquaredTC struct {
	predicted []float64
	actual    []float64
	expected  float64
}

func TestRSquared(t *testing.T) {
	tcs := []rsquaredTC{
		// perfect fit
		rsquaredTC{
			predicted: []float64{1, 2, 3},
			actual:    []float64{1, 2, 3},
			expected:  1,
		},
		// predicting the mean everywhere
		rsquaredTC{
			predicted: []float64{2, 2, 2},
			actual:    []float64{1, 2, 3},
			expected:  0,
		},
		// one unit of residual against two of variance
		rsquaredTC{
			predicted: []float64{1, 2, 2},
			actual:    []float64{1, 2, 3},
			expected:  0.5,
		},
		// worse than the mean goes negative
		rsquaredTC{
			predicted: []float64{3, 2, 1},
			actual:    []float64{1, 2, 3},
			expected:  -3,
		},
		// constant actuals, perfect fit
		rsquaredTC{
			predicted: []float64{4, 4},
			actual:    []float64{4, 4},
			expected:  1,
		},
		// constant actuals, imperfect fit
		rsquaredTC{
			predicted: []float64{4, 5},
			actual:    []float64{4, 4},
			expected:  0,
		},
	}
	for _, tc := range tcs {
		score, err := RSquared(tc.predicted, tc.actual)
		require.NoError(t, err)
		assert.InDelta(t, tc.expected, score, 1e-12, "predicted %v actual %v", tc.predicted, tc.actual)
	}
}

func TestRSquaredErrors(t *testing.T) {
	_, err := RSquared([]float64{1}, []float64{1, 2})
	require.Error(t, err)

	_, err = RSquared(nil, nil)
	require.Error(t, err)
}
