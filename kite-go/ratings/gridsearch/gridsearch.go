package gridsearch

import (
	"log"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/kiteco/rating-model/kite-go/ratings/features"
	"github.com/kiteco/rating-model/kite-go/ratings/pipeline"
	"github.com/kiteco/rating-model/kite-go/ratings/traindata"
	"github.com/kiteco/rating-model/kite-golib/errors"
	"github.com/kiteco/rating-model/kite-golib/workerpool"
)

// Options configures the search.
type Options struct {
	Alphas  []float64
	Folds   int
	Workers int
}

// DefaultOptions mirrors the production search: regularization strengths
// 500 through 950 in steps of 50, five folds, one worker per CPU.
func DefaultOptions() Options {
	var alphas []float64
	for alpha := 500.0; alpha < 1000; alpha += 50 {
		alphas = append(alphas, alpha)
	}
	return Options{
		Alphas:  alphas,
		Folds:   5,
		Workers: runtime.NumCPU(),
	}
}

var (
	errNoCandidates       = errors.New("Alphas must contain at least one candidate")
	errTooFewFolds        = errors.New("Folds must be at least 2")
	errNonPositiveWorkers = errors.New("Workers must be positive")
)

func (o Options) validate(rows int) error {
	if len(o.Alphas) == 0 {
		return errNoCandidates
	}
	if o.Folds < 2 {
		return errTooFewFolds
	}
	if o.Workers < 1 {
		return errNonPositiveWorkers
	}
	if rows < o.Folds {
		return errors.Errorf("%d rows cannot be split into %d folds", rows, o.Folds)
	}
	return nil
}

// Search cross validates every candidate on the frame, ranks candidates by
// mean held-out R², and refits the winner on the whole frame. Candidate
// folds are evaluated in parallel; each evaluation fits its own pipeline,
// so no fitted state is shared. Any failed evaluation fails the search.
func Search(cfg features.Config, frame traindata.Frame, opts Options) (*Outcome, error) {
	if err := opts.validate(frame.Len()); err != nil {
		return nil, err
	}

	folds := kfold(frame.Len(), opts.Folds)
	scores := make([][]FoldScore, len(opts.Alphas))
	for i := range scores {
		scores[i] = make([]FoldScore, len(folds))
	}

	total := len(opts.Alphas) * len(folds)
	log.Printf("fitting %d folds for each of %d candidates, %d fits total",
		len(folds), len(opts.Alphas), total)

	var done int64
	var jobs []workerpool.Job
	for i, alpha := range opts.Alphas {
		for j, heldout := range folds {
			i, j, alpha, heldout := i, j, alpha, heldout
			jobs = append(jobs, func() error {
				score, err := evaluate(cfg, frame, alpha, heldout)
				if err != nil {
					return errors.Wrapf(err, "error evaluating alpha=%g on fold %d", alpha, j)
				}
				scores[i][j] = score
				if n := atomic.AddInt64(&done, 1); n%10 == 0 || n == int64(total) {
					log.Printf("evaluated %d/%d", n, total)
				}
				return nil
			})
		}
	}

	pool := workerpool.New(opts.Workers)
	defer pool.Stop()
	pool.Add(jobs)
	if err := pool.Wait(); err != nil {
		return nil, errors.Wrapf(err, "hyper-parameter search failed")
	}

	results, err := aggregate(opts.Alphas, scores)
	if err != nil {
		return nil, err
	}

	best := results[0]
	bestPipeline := pipeline.New(cfg, best.Alpha)
	if err := bestPipeline.Fit(frame); err != nil {
		return nil, errors.Wrapf(err, "error refitting best candidate alpha=%g", best.Alpha)
	}

	return &Outcome{
		Results:      results,
		Best:         best,
		BestPipeline: bestPipeline,
	}, nil
}

// evaluate fits a fresh pipeline for the candidate on everything outside
// the held-out span and scores both partitions.
func evaluate(cfg features.Config, frame traindata.Frame, alpha float64, heldout Span) (FoldScore, error) {
	train := frame.Without(heldout.Start, heldout.End)
	test := frame.Slice(heldout.Start, heldout.End)

	p := pipeline.New(cfg, alpha)

	fitStart := time.Now()
	if err := p.Fit(train); err != nil {
		return FoldScore{}, err
	}
	fitTime := time.Since(fitStart)

	scoreStart := time.Now()
	testScore, err := p.Score(test)
	if err != nil {
		return FoldScore{}, err
	}
	scoreTime := time.Since(scoreStart)

	trainScore, err := p.Score(train)
	if err != nil {
		return FoldScore{}, err
	}

	return FoldScore{
		TestScore:  testScore,
		TrainScore: trainScore,
		FitTime:    fitTime,
		ScoreTime:  scoreTime,
	}, nil
}
