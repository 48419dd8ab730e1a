package gridsearch

import (
	"sort"
	"time"

	"github.com/kiteco/rating-model/kite-go/ratings/pipeline"
	"github.com/kiteco/rating-model/kite-golib/errors"
	"github.com/montanaflynn/stats"
)

// FoldScore is one fold's evaluation of one candidate.
type FoldScore struct {
	// TestScore is the R² on the held-out fold, the score the search
	// optimizes. TrainScore is the R² on the fitted partition, recorded as
	// an overfitting diagnostic.
	TestScore  float64
	TrainScore float64

	FitTime   time.Duration
	ScoreTime time.Duration
}

// CandidateResult aggregates one candidate's cross validation. Times are in
// seconds.
type CandidateResult struct {
	Alpha float64
	Folds []FoldScore

	MeanTestScore  float64
	StdTestScore   float64
	MeanTrainScore float64
	StdTrainScore  float64

	MeanFitTime   float64
	StdFitTime    float64
	MeanScoreTime float64
	StdScoreTime  float64

	// Rank is 1-based, assigned after sorting by descending mean test
	// score.
	Rank int
}

// Outcome is a completed search: every candidate's result in rank order,
// the winner, and the winner refit on the full frame.
type Outcome struct {
	Results      []CandidateResult
	Best         CandidateResult
	BestPipeline *pipeline.Pipeline
}

// aggregate summarizes the fold scores per candidate and ranks the
// candidates by descending mean held-out score. The sort is stable, so a
// candidate enumerated earlier wins exact ties.
func aggregate(alphas []float64, scores [][]FoldScore) ([]CandidateResult, error) {
	results := make([]CandidateResult, len(alphas))
	for i, alpha := range alphas {
		folds := scores[i]
		test := make([]float64, len(folds))
		train := make([]float64, len(folds))
		fit := make([]float64, len(folds))
		score := make([]float64, len(folds))
		for j, fold := range folds {
			test[j] = fold.TestScore
			train[j] = fold.TrainScore
			fit[j] = fold.FitTime.Seconds()
			score[j] = fold.ScoreTime.Seconds()
		}

		r := CandidateResult{Alpha: alpha, Folds: folds}
		var err error
		if r.MeanTestScore, r.StdTestScore, err = meanStd(test); err != nil {
			return nil, errors.Wrapf(err, "error aggregating alpha=%g", alpha)
		}
		if r.MeanTrainScore, r.StdTrainScore, err = meanStd(train); err != nil {
			return nil, errors.Wrapf(err, "error aggregating alpha=%g", alpha)
		}
		if r.MeanFitTime, r.StdFitTime, err = meanStd(fit); err != nil {
			return nil, errors.Wrapf(err, "error aggregating alpha=%g", alpha)
		}
		if r.MeanScoreTime, r.StdScoreTime, err = meanStd(score); err != nil {
			return nil, errors.Wrapf(err, "error aggregating alpha=%g", alpha)
		}
		results[i] = r
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MeanTestScore > results[j].MeanTestScore
	})
	for i := range results {
		results[i].Rank = i + 1
	}
	return results, nil
}

func meanStd(vals []float64) (float64, float64, error) {
	mean, err := stats.Mean(vals)
	if err != nil {
		return 0, 0, err
	}
	std, err := stats.StandardDeviationPopulation(vals)
	if err != nil {
		return 0, 0, err
	}
	return mean, std, nil
}
