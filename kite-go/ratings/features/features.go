package features

import (
	"encoding/gob"

	"github.com/kiteco/rating-model/kite-go/ratings/traindata"
	"github.com/kiteco/rating-model/kite-golib/sparse"
)

// Transformer learns statistics for one feature group from a training frame
// and maps frames into feature space.
type Transformer interface {
	// Fit learns from the given frame only, replacing any previous state.
	Fit(frame traindata.Frame) error
	// Transform maps the frame into feature space without mutating state.
	Transform(frame traindata.Frame) (sparse.Matrix, error)
	// Width is the number of output columns after a successful Fit.
	Width() int
	// Reset discards learned state.
	Reset()
}

func init() {
	gob.Register(&CountVectorizer{})
	gob.Register(&StandardScaler{})
	gob.Register(&OrdinalEncoder{})
}

// SentimentOrder lists the sentiment categories in ascending polarity order.
// The ordinal code of a category is its position here.
var SentimentOrder = []string{"neg", "compound", "neu", "pos"}

// MaxTextFeatures caps the text vocabulary size.
const MaxTextFeatures = 20000

// Config describes the feature groups of the rating model. It carries no
// learned state and may be shared across pipelines.
type Config struct {
	TextColumn    string
	MaxVocab      int
	StripHTML     bool
	NGrams        int
	NumericColumn string
	OrdinalColumn string
	Categories    []string
}

// DefaultConfig returns the production feature groups: counts over the
// review text, the standardized word count, and the ordinal sentiment.
func DefaultConfig() Config {
	return Config{
		TextColumn:    traindata.ColText,
		MaxVocab:      MaxTextFeatures,
		NumericColumn: traindata.ColNumWords,
		OrdinalColumn: traindata.ColSentiment,
		Categories:    SentimentOrder,
	}
}

// NewColumnTransformer builds a preprocessor for the configured groups. The
// transformers are fresh on every call so fitted state is never shared
// between pipelines.
func (c Config) NewColumnTransformer() *ColumnTransformer {
	return &ColumnTransformer{
		Groups: []Group{
			Group{
				Name: "text",
				Transformer: &CountVectorizer{
					Column:    c.TextColumn,
					MaxVocab:  c.MaxVocab,
					StripHTML: c.StripHTML,
					NGrams:    c.NGrams,
				},
			},
			Group{
				Name:        "num",
				Transformer: &StandardScaler{Column: c.NumericColumn},
			},
			Group{
				Name: "ord",
				Transformer: &OrdinalEncoder{
					Column:     c.OrdinalColumn,
					Categories: c.Categories,
				},
			},
		},
	}
}
