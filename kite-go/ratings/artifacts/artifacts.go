package artifacts

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	humanize "github.com/dustin/go-humanize"
	"github.com/kiteco/rating-model/kite-go/ratings/gridsearch"
	"github.com/kiteco/rating-model/kite-golib/errors"
)

// Artifact file names inside the output directory.
const (
	ReportName = "hyper_param_search_result.csv"
	ModelName  = "model.gob.gz"
)

// tmpPrefix keeps partially written files distinguishable from finished
// artifacts while preserving the extension the encoder switches on.
const tmpPrefix = "tmp."

// Write persists the search outcome into dir, creating it if needed: the
// ranked search report and the refit model. Each file is first written to a
// temp sibling; only after both encode successfully are they renamed into
// place, so a directory never holds a partial artifact under a final name.
func Write(dir string, outcome *gridsearch.Outcome) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "error creating output directory %s", dir)
	}

	reportTmp := filepath.Join(dir, tmpPrefix+ReportName)
	modelTmp := filepath.Join(dir, tmpPrefix+ModelName)
	cleanup := func() {
		os.Remove(reportTmp)
		os.Remove(modelTmp)
	}

	if err := writeReport(reportTmp, outcome.Results); err != nil {
		cleanup()
		return errors.Wrapf(err, "error writing search report")
	}
	if err := outcome.BestPipeline.Save(modelTmp); err != nil {
		cleanup()
		return errors.Wrapf(err, "error writing model")
	}

	report := filepath.Join(dir, ReportName)
	model := filepath.Join(dir, ModelName)
	if err := os.Rename(reportTmp, report); err != nil {
		cleanup()
		return errors.Wrapf(err, "error placing search report")
	}
	if err := os.Rename(modelTmp, model); err != nil {
		os.Remove(report)
		cleanup()
		return errors.Wrapf(err, "error placing model")
	}

	logSize(report)
	logSize(model)
	return nil
}

func logSize(path string) {
	fi, err := os.Stat(path)
	if err != nil {
		return
	}
	log.Printf("wrote %s (%s)", path, humanize.Bytes(uint64(fi.Size())))
}

// writeReport writes one csv row per candidate, best ranked first, in the
// usual search-result layout: rank, alpha, aggregated and per-fold test
// scores, aggregated and per-fold train scores, fit and score timings.
func writeReport(path string, results []gridsearch.CandidateResult) (err error) {
	if len(results) == 0 {
		return errors.Errorf("no results to report")
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer errors.Defer(&err, f.Close)

	writer := csv.NewWriter(f)

	folds := len(results[0].Folds)
	header := []string{"rank_test_score", "param_alpha", "mean_test_score", "std_test_score"}
	for i := 0; i < folds; i++ {
		header = append(header, fmt.Sprintf("split%d_test_score", i))
	}
	header = append(header, "mean_train_score", "std_train_score")
	for i := 0; i < folds; i++ {
		header = append(header, fmt.Sprintf("split%d_train_score", i))
	}
	header = append(header, "mean_fit_time", "std_fit_time", "mean_score_time", "std_score_time")
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		if len(r.Folds) != folds {
			return errors.Errorf("candidate alpha=%g has %d folds, expected %d", r.Alpha, len(r.Folds), folds)
		}
		row := []string{
			strconv.Itoa(r.Rank),
			formatFloat(r.Alpha),
			formatFloat(r.MeanTestScore),
			formatFloat(r.StdTestScore),
		}
		for _, fold := range r.Folds {
			row = append(row, formatFloat(fold.TestScore))
		}
		row = append(row, formatFloat(r.MeanTrainScore), formatFloat(r.StdTrainScore))
		for _, fold := range r.Folds {
			row = append(row, formatFloat(fold.TrainScore))
		}
		row = append(row,
			formatFloat(r.MeanFitTime),
			formatFloat(r.StdFitTime),
			formatFloat(r.MeanScoreTime),
			formatFloat(r.StdScoreTime),
		)
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
