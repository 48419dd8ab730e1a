package pipeline

import (
	"github.com/kiteco/rating-model/kite-go/ratings/features"
	"github.com/kiteco/rating-model/kite-go/ratings/linear"
	"github.com/kiteco/rating-model/kite-go/ratings/traindata"
	"github.com/kiteco/rating-model/kite-golib/errors"
	"github.com/kiteco/rating-model/kite-golib/serialization"
)

// Pipeline chains the feature preprocessor and the ridge regressor into a
// single fit/predict unit.
type Pipeline struct {
	Config features.Config
	Pre    *features.ColumnTransformer
	Reg    *linear.Ridge
}

// New builds an unfitted pipeline for the feature config and regularization
// strength. The preprocessor is fresh, so nothing fitted leaks in.
func New(cfg features.Config, alpha float64) *Pipeline {
	return &Pipeline{
		Config: cfg,
		Pre:    cfg.NewColumnTransformer(),
		Reg:    linear.NewRidge(alpha),
	}
}

// Alpha returns the regularization strength the pipeline was built with.
func (p *Pipeline) Alpha() float64 {
	return p.Reg.Alpha
}

// Fit learns the preprocessor and the regressor from the frame. Fitting
// again relearns from scratch, never from the previous state.
func (p *Pipeline) Fit(frame traindata.Frame) error {
	p.Pre.Reset()
	x, err := p.Pre.FitTransform(frame)
	if err != nil {
		return errors.Wrapf(err, "error preprocessing train frame")
	}
	if err := p.Reg.Fit(x, frame.Ratings()); err != nil {
		return errors.Wrapf(err, "error fitting regressor")
	}
	return nil
}

// Predict maps the frame through the fitted preprocessor and linear model.
// It never mutates fitted state.
func (p *Pipeline) Predict(frame traindata.Frame) ([]float64, error) {
	x, err := p.Pre.Transform(frame)
	if err != nil {
		return nil, errors.Wrapf(err, "error preprocessing frame")
	}
	return p.Reg.Predict(x)
}

// Score computes R² of the pipeline's predictions against the frame's
// ratings.
func (p *Pipeline) Score(frame traindata.Frame) (float64, error) {
	preds, err := p.Predict(frame)
	if err != nil {
		return 0, err
	}
	return linear.RSquared(preds, frame.Ratings())
}

// Save persists the fitted pipeline to the path. The extension selects the
// format; model artifacts use .gob.gz, written at best compression.
func (p *Pipeline) Save(path string) error {
	if err := serialization.EncodeArchival(path, p); err != nil {
		return errors.Wrapf(err, "error saving pipeline to %s", path)
	}
	return nil
}

// Load reads a pipeline persisted by Save. The loaded pipeline predicts
// identically to the one that was saved.
func Load(path string) (*Pipeline, error) {
	var p Pipeline
	if err := serialization.Decode(path, &p); err != nil {
		return nil, errors.Wrapf(err, "error loading pipeline from %s", path)
	}
	return &p, nil
}
