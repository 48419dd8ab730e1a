package artifacts

import (
	"encoding/csv"
	"io/ioutil"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/kiteco/rating-model/kite-go/ratings/features"
	"github.com/kiteco/rating-model/kite-go/ratings/gridsearch"
	"github.com/kiteco/rating-model/kite-go/ratings/pipeline"
	"github.com/kiteco/rating-model/kite-go/ratings/traindata"
	"github.com/kiteco/rating-model/kite-golib/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticFrame(n int) traindata.Frame {
	sentiments := []string{"neg", "compound", "neu", "pos"}
	qualities := []string{"dire", "mediocre", "decent", "sublime"}
	fillers := []string{"grainy", "loud", "quiet", "long", "short"}

	rows := make([]traindata.Row, n)
	for i := range rows {
		q := i % 4
		text := qualities[q] + " " + fillers[i%5] + " film"
		rows[i] = traindata.Row{
			ID:        strconv.Itoa(i),
			Author:    "author" + strconv.Itoa(i%7),
			Text:      text,
			NumWords:  float64(len(strings.Fields(text))),
			Sentiment: sentiments[q],
			Rating:    float64(q)*2.5 + 0.5 + 0.1*float64(i%3),
		}
	}
	return traindata.Frame{Rows: rows}
}

func readReport(t *testing.T, path string) [][]string {
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWrite(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	frame := syntheticFrame(12)
	opts := gridsearch.Options{Alphas: []float64{1, 100}, Folds: 3, Workers: 2}
	outcome, err := gridsearch.Search(features.DefaultConfig(), frame, opts)
	require.NoError(t, err)

	out := filepath.Join(dir, "out")
	require.NoError(t, Write(out, outcome))

	// only the two finished artifacts remain
	entries, err := ioutil.ReadDir(out)
	require.NoError(t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.ElementsMatch(t, []string{ReportName, ModelName}, names)

	records := readReport(t, filepath.Join(out, ReportName))
	require.Len(t, records, 1+len(outcome.Results))

	// 4 leading columns, per-fold test and train scores, 2 train
	// aggregates, 4 timing columns
	header := records[0]
	require.Len(t, header, 4+3+2+3+4)
	assert.Equal(t, "rank_test_score", header[0])
	assert.Equal(t, "param_alpha", header[1])
	assert.Equal(t, "mean_test_score", header[2])
	assert.Equal(t, "split0_test_score", header[4])
	assert.Equal(t, "std_score_time", header[len(header)-1])

	for i, result := range outcome.Results {
		row := records[i+1]
		assert.Equal(t, strconv.Itoa(result.Rank), row[0])

		alpha, err := strconv.ParseFloat(row[1], 64)
		require.NoError(t, err)
		assert.Equal(t, result.Alpha, alpha)

		mean, err := strconv.ParseFloat(row[2], 64)
		require.NoError(t, err)
		assert.Equal(t, result.MeanTestScore, mean)
	}

	// the persisted model predicts identically to the refit pipeline
	loaded, err := pipeline.Load(filepath.Join(out, ModelName))
	require.NoError(t, err)
	want, err := outcome.BestPipeline.Predict(frame)
	require.NoError(t, err)
	got, err := loaded.Predict(frame)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteCreatesDirectory(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	frame := syntheticFrame(8)
	opts := gridsearch.Options{Alphas: []float64{1}, Folds: 2, Workers: 1}
	outcome, err := gridsearch.Search(features.DefaultConfig(), frame, opts)
	require.NoError(t, err)

	nested := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, Write(nested, outcome))
	_, err = os.Stat(filepath.Join(nested, ReportName))
	require.NoError(t, err)
}

func TestWriteBadDirectory(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	// a file where the output directory should go
	blocker := filepath.Join(dir, "blocked")
	require.NoError(t, ioutil.WriteFile(blocker, []byte("x"), 0600))

	frame := syntheticFrame(8)
	opts := gridsearch.Options{Alphas: []float64{1}, Folds: 2, Workers: 1}
	outcome, err := gridsearch.Search(features.DefaultConfig(), frame, opts)
	require.NoError(t, err)

	require.Error(t, Write(filepath.Join(blocker, "out"), outcome))
}

// unserializable satisfies features.Transformer but is not registered with
// gob, so persisting a pipeline holding it fails after the report is
// already written.
type unserializable struct{}

func (unserializable) Fit(traindata.Frame) error { return nil }
func (unserializable) Transform(traindata.Frame) (sparse.Matrix, error) {
	return sparse.Matrix{}, nil
}
func (unserializable) Width() int { return 0 }
func (unserializable) Reset()     {}

func TestWriteAllOrNothing(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	frame := syntheticFrame(8)
	opts := gridsearch.Options{Alphas: []float64{1}, Folds: 2, Workers: 1}
	outcome, err := gridsearch.Search(features.DefaultConfig(), frame, opts)
	require.NoError(t, err)

	// a report that encodes fine with a model that cannot
	outcome.BestPipeline.Pre.Groups[0].Transformer = unserializable{}
	out := filepath.Join(dir, "out")
	require.Error(t, Write(out, outcome))

	entries, err := ioutil.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEndToEnd(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	frame := syntheticFrame(200)
	outcome, err := gridsearch.Search(features.DefaultConfig(), frame, gridsearch.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, outcome.Results, 10)

	var maxScore float64
	for i, result := range outcome.Results {
		assert.Equal(t, i+1, result.Rank)
		if i == 0 || result.MeanTestScore > maxScore {
			maxScore = result.MeanTestScore
		}
	}
	assert.Equal(t, maxScore, outcome.Best.MeanTestScore)

	out := filepath.Join(dir, "model")
	require.NoError(t, Write(out, outcome))

	records := readReport(t, filepath.Join(out, ReportName))
	require.Len(t, records, 11)
	last := -1.0
	for i, row := range records[1:] {
		assert.Equal(t, strconv.Itoa(i+1), row[0])
		mean, err := strconv.ParseFloat(row[2], 64)
		require.NoError(t, err)
		if i > 0 {
			assert.LessOrEqual(t, mean, last)
		}
		last = mean
	}

	loaded, err := pipeline.Load(filepath.Join(out, ModelName))
	require.NoError(t, err)
	want, err := outcome.BestPipeline.Predict(frame)
	require.NoError(t, err)
	got, err := loaded.Predict(frame)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
