package features

import (
	"github.com/kiteco/rating-model/kite-go/ratings/traindata"
	"github.com/kiteco/rating-model/kite-golib/errors"
	"github.com/kiteco/rating-model/kite-golib/sparse"
)

// Group routes one feature group to its transformer.
type Group struct {
	Name        string
	Transformer Transformer
}

// ColumnTransformer fits each group's transformer on the same frame and
// concatenates the per-group feature blocks side by side, in group
// declaration order. Columns outside the groups are dropped.
type ColumnTransformer struct {
	Groups []Group
}

// Fit fits every group on the frame.
func (c *ColumnTransformer) Fit(frame traindata.Frame) error {
	for _, g := range c.Groups {
		if err := g.Transformer.Fit(frame); err != nil {
			return errors.Wrapf(err, "error fitting group %s", g.Name)
		}
	}
	return nil
}

// Transform maps the frame through every group and stacks the blocks. The
// output has one row per input row and Width columns.
func (c *ColumnTransformer) Transform(frame traindata.Frame) (sparse.Matrix, error) {
	blocks := make([]sparse.Matrix, 0, len(c.Groups))
	for _, g := range c.Groups {
		block, err := g.Transformer.Transform(frame)
		if err != nil {
			return sparse.Matrix{}, errors.Wrapf(err, "error transforming group %s", g.Name)
		}
		if len(block.Rows) != frame.Len() {
			return sparse.Matrix{}, errors.Errorf(
				"group %s produced %d rows for %d input rows", g.Name, len(block.Rows), frame.Len())
		}
		blocks = append(blocks, block)
	}
	return sparse.HStack(blocks...)
}

// FitTransform fits on the frame and maps it in one step.
func (c *ColumnTransformer) FitTransform(frame traindata.Frame) (sparse.Matrix, error) {
	if err := c.Fit(frame); err != nil {
		return sparse.Matrix{}, err
	}
	return c.Transform(frame)
}

// Width is the total output column count across groups.
func (c *ColumnTransformer) Width() int {
	var width int
	for _, g := range c.Groups {
		width += g.Transformer.Width()
	}
	return width
}

// Reset resets every group.
func (c *ColumnTransformer) Reset() {
	for _, g := range c.Groups {
		g.Transformer.Reset()
	}
}
