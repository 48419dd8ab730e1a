package pipeline

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/kiteco/rating-model/kite-go/ratings/features"
	"github.com/kiteco/rating-model/kite-go/ratings/traindata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviews() traindata.Frame {
	return traindata.Frame{Rows: []traindata.Row{
		traindata.Row{ID: "1", Text: "excellent wonderful", NumWords: 2, Sentiment: "pos", Rating: 9},
		traindata.Row{ID: "2", Text: "terrible boring", NumWords: 2, Sentiment: "neg", Rating: 1},
		traindata.Row{ID: "3", Text: "average watchable", NumWords: 2, Sentiment: "neu", Rating: 5},
		traindata.Row{ID: "4", Text: "mixed feelings overall", NumWords: 3, Sentiment: "compound", Rating: 6},
		traindata.Row{ID: "5", Text: "wonderful truly wonderful", NumWords: 3, Sentiment: "pos", Rating: 10},
		traindata.Row{ID: "6", Text: "boring dreadful mess", NumWords: 3, Sentiment: "neg", Rating: 2},
		traindata.Row{ID: "7", Text: "watchable average stuff", NumWords: 3, Sentiment: "neu", Rating: 6},
		traindata.Row{ID: "8", Text: "odd mixed bag", NumWords: 3, Sentiment: "compound", Rating: 5},
	}}
}

func TestPipelineFitPredictScore(t *testing.T) {
	p := New(features.DefaultConfig(), 0.1)
	frame := reviews()
	require.NoError(t, p.Fit(frame))

	preds, err := p.Predict(frame)
	require.NoError(t, err)
	require.Len(t, preds, frame.Len())

	score, err := p.Score(frame)
	require.NoError(t, err)
	assert.Greater(t, score, 0.5)
}

func TestPipelineFitDeterminism(t *testing.T) {
	frame := reviews()

	a := New(features.DefaultConfig(), 10)
	require.NoError(t, a.Fit(frame))
	b := New(features.DefaultConfig(), 10)
	require.NoError(t, b.Fit(frame))

	predsA, err := a.Predict(frame)
	require.NoError(t, err)
	predsB, err := b.Predict(frame)
	require.NoError(t, err)
	assert.Equal(t, predsA, predsB)
}

func TestPipelineRefitFromScratch(t *testing.T) {
	frame := reviews()
	first := frame.Slice(0, 4)
	second := frame.Slice(4, 8)

	refit := New(features.DefaultConfig(), 1)
	require.NoError(t, refit.Fit(first))
	require.NoError(t, refit.Fit(second))

	fresh := New(features.DefaultConfig(), 1)
	require.NoError(t, fresh.Fit(second))

	predsRefit, err := refit.Predict(frame)
	require.NoError(t, err)
	predsFresh, err := fresh.Predict(frame)
	require.NoError(t, err)
	assert.Equal(t, predsFresh, predsRefit)
}

func TestPipelineSaveLoadRoundTrip(t *testing.T) {
	dir, err := ioutil.TempDir("", "")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	frame := reviews()
	p := New(features.DefaultConfig(), 500)
	require.NoError(t, p.Fit(frame))
	want, err := p.Predict(frame)
	require.NoError(t, err)

	path := filepath.Join(dir, "model.gob.gz")
	require.NoError(t, p.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500.0, loaded.Alpha())

	got, err := loaded.Predict(frame)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	score, err := loaded.Score(frame)
	require.NoError(t, err)
	wantScore, err := p.Score(frame)
	require.NoError(t, err)
	assert.Equal(t, wantScore, score)
}

func TestPipelineLoadMissing(t *testing.T) {
	_, err := Load("/no/such/model.gob.gz")
	require.Error(t, err)
}

func TestPipelineUnfittedPredict(t *testing.T) {
	p := New(features.DefaultConfig(), 1)
	_, err := p.Predict(reviews())
	require.Error(t, err)
}

func TestPipelineUnknownSentiment(t *testing.T) {
	p := New(features.DefaultConfig(), 1)
	require.NoError(t, p.Fit(reviews()))

	bad := traindata.Frame{Rows: []traindata.Row{
		traindata.Row{Text: "fine", NumWords: 1, Sentiment: "angsty", Rating: 3},
	}}
	_, err := p.Predict(bad)
	require.Error(t, err)
}
