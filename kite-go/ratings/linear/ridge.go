package linear

import (
	"github.com/kiteco/rating-model/kite-golib/errors"
	"github.com/kiteco/rating-model/kite-golib/sparse"
	"gonum.org/v1/gonum/mat"
)

// Ridge is an L2 regularized least squares regressor. Features and targets
// are centered before solving so the intercept is never penalized.
//
// Fit solves the normal equations (XcᵀXc + αI) w = Xcᵀ yc when the feature
// count is at most the sample count, and otherwise the equivalent kernel
// system (XcXcᵀ + αI) a = yc with w = Xcᵀ a, which keeps the factored matrix
// at sample-count size. Text features routinely push the feature count far
// past the sample count, so the kernel path is the common one.
type Ridge struct {
	Alpha float64

	Coef      []float64
	Intercept float64
}

// NewRidge returns an unfitted regressor with the given regularization
// strength.
func NewRidge(alpha float64) *Ridge {
	return &Ridge{Alpha: alpha}
}

// Fit learns coefficients and intercept from scratch, discarding any
// previous fit.
func (r *Ridge) Fit(x sparse.Matrix, y []float64) error {
	rows, cols := x.Dims()
	if rows == 0 {
		return errors.Errorf("cannot fit on an empty matrix")
	}
	if rows != len(y) {
		return errors.Errorf("%d feature rows for %d targets", rows, len(y))
	}
	if r.Alpha < 0 {
		return errors.Errorf("alpha must be nonnegative, got %f", r.Alpha)
	}
	if cols == 0 {
		// nothing to regress on, predict the mean
		r.Coef = make([]float64, 0)
		r.Intercept = mean(y)
		return nil
	}
	if cols <= rows {
		return r.fitPrimal(x, y)
	}
	return r.fitDual(x, y)
}

func (r *Ridge) fitPrimal(x sparse.Matrix, y []float64) error {
	rows, cols := x.Dims()
	means := x.ColumnMeans()
	ybar := mean(y)

	// XcᵀXc = XᵀX − n·mmᵀ, accumulated over the upper triangle
	data := make([]float64, cols*cols)
	for _, row := range x.Rows {
		for i, e := range row.Entries {
			for _, f := range row.Entries[i:] {
				data[e.Col*cols+f.Col] += e.Val * f.Val
			}
		}
	}
	n := float64(rows)
	for i := 0; i < cols; i++ {
		for j := i; j < cols; j++ {
			data[i*cols+j] -= n * means[i] * means[j]
		}
		data[i*cols+i] += r.Alpha
	}

	// Xcᵀyc = Xᵀyc because yc sums to zero
	rhs, err := x.MulTransVec(centered(y, ybar))
	if err != nil {
		return err
	}

	w, err := solve(mat.NewSymDense(cols, data), rhs)
	if err != nil {
		return err
	}

	r.Coef = w
	r.Intercept = ybar - dot(means, w)
	return nil
}

func (r *Ridge) fitDual(x sparse.Matrix, y []float64) error {
	rows, _ := x.Dims()
	means := x.ColumnMeans()
	ybar := mean(y)

	rowMeans := make([]float64, rows)
	for i, row := range x.Rows {
		d, err := row.DotDense(means)
		if err != nil {
			return err
		}
		rowMeans[i] = d
	}
	mm := dot(means, means)

	// centered kernel (xᵢ−m)·(xⱼ−m) over the upper triangle
	data := make([]float64, rows*rows)
	for i := 0; i < rows; i++ {
		for j := i; j < rows; j++ {
			data[i*rows+j] = sparse.Dot(x.Rows[i], x.Rows[j]) - rowMeans[i] - rowMeans[j] + mm
		}
		data[i*rows+i] += r.Alpha
	}

	a, err := solve(mat.NewSymDense(rows, data), centered(y, ybar))
	if err != nil {
		return err
	}

	// w = Xcᵀa = Xᵀa − (Σa)·m
	w, err := x.MulTransVec(a)
	if err != nil {
		return err
	}
	var sum float64
	for _, ai := range a {
		sum += ai
	}
	for j := range w {
		w[j] -= sum * means[j]
	}

	r.Coef = w
	r.Intercept = ybar - dot(means, w)
	return nil
}

// Predict applies the fitted linear map.
func (r *Ridge) Predict(x sparse.Matrix) ([]float64, error) {
	if r.Coef == nil {
		return nil, errors.Errorf("ridge is not fitted")
	}
	preds, err := x.MulVec(r.Coef)
	if err != nil {
		return nil, err
	}
	for i := range preds {
		preds[i] += r.Intercept
	}
	return preds, nil
}

func solve(sym *mat.SymDense, rhs []float64) ([]float64, error) {
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, errors.Errorf("cholesky factorization failed, system is not positive definite")
	}
	var sol mat.VecDense
	if err := chol.SolveVecTo(&sol, mat.NewVecDense(len(rhs), rhs)); err != nil {
		return nil, errors.Wrapf(err, "error solving ridge system")
	}
	out := make([]float64, len(rhs))
	for i := range out {
		out[i] = sol.AtVec(i)
	}
	return out, nil
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func dot(a, b []float64) float64 {
	var d float64
	for i := range a {
		d += a[i] * b[i]
	}
	return d
}

func centered(vals []float64, about float64) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = v - about
	}
	return out
}
