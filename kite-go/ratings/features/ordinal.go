package features

import (
	"fmt"

	"github.com/kiteco/rating-model/kite-go/ratings/traindata"
	"github.com/kiteco/rating-model/kite-golib/errors"
	"github.com/kiteco/rating-model/kite-golib/sparse"
)

// UnknownCategoryError reports a categorical value outside the declared
// category set.
type UnknownCategoryError struct {
	Column string
	Value  string
}

func (e UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q in column %s", e.Value, e.Column)
}

// OrdinalEncoder maps a categorical column onto a single numeric column,
// encoding each value as its position in the declared category order. Values
// outside the declared set fail with UnknownCategoryError at fit and
// transform time alike.
type OrdinalEncoder struct {
	Column     string
	Categories []string
}

func (o *OrdinalEncoder) codes() map[string]float64 {
	codes := make(map[string]float64, len(o.Categories))
	for i, cat := range o.Categories {
		codes[cat] = float64(i)
	}
	return codes
}

// Fit checks every value against the declared categories. The encoding
// itself is fixed by the declaration, not learned.
func (o *OrdinalEncoder) Fit(frame traindata.Frame) error {
	_, err := o.Transform(frame)
	return err
}

// Transform encodes the column as category positions.
func (o *OrdinalEncoder) Transform(frame traindata.Frame) (sparse.Matrix, error) {
	if len(o.Categories) == 0 {
		return sparse.Matrix{}, errors.Errorf("no categories declared for column %s", o.Column)
	}
	vals, err := frame.Strings(o.Column)
	if err != nil {
		return sparse.Matrix{}, errors.Wrapf(err, "error transforming column")
	}

	codes := o.codes()
	m := sparse.Matrix{
		Cols: 1,
		Rows: make([]sparse.Vector, len(vals)),
	}
	for i, val := range vals {
		code, known := codes[val]
		if !known {
			return sparse.Matrix{}, UnknownCategoryError{Column: o.Column, Value: val}
		}
		m.Rows[i] = sparse.NewVector(map[int]float64{0: code})
	}
	return m, nil
}

// Width is always one column.
func (o *OrdinalEncoder) Width() int {
	return 1
}

// Reset is a no-op: the encoding is declared, not learned.
func (o *OrdinalEncoder) Reset() {}
