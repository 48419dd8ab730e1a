package linear

import (
	"github.com/kiteco/rating-model/kite-golib/errors"
)

// RSquared is the coefficient of determination of predictions against
// actuals: 1 − Σ(y−ŷ)² / Σ(y−ȳ)². Predicting the mean everywhere scores
// zero; a perfect fit scores one. For a constant actual vector the ratio is
// undefined, so a perfect fit scores one and anything else scores zero.
func RSquared(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, errors.Errorf("%d predictions for %d actuals", len(predicted), len(actual))
	}
	if len(actual) == 0 {
		return 0, errors.Errorf("cannot score an empty sample")
	}

	ybar := mean(actual)
	var ssRes, ssTot float64
	for i := range actual {
		res := actual[i] - predicted[i]
		tot := actual[i] - ybar
		ssRes += res * res
		ssTot += tot * tot
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1, nil
		}
		return 0, nil
	}
	return 1 - ssRes/ssTot, nil
}
