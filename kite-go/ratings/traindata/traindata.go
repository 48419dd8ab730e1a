package traindata

import (
	"os"

	"github.com/gocarina/gocsv"
	"github.com/kiteco/rating-model/kite-golib/errors"
)

// Column names of the training frame.
const (
	ColID        = "Id"
	ColAuthor    = "Author"
	ColText      = "Text"
	ColNumWords  = "n_words"
	ColSentiment = "sentiment"
	ColRating    = "Rating"
)

func init() {
	// a column named by a struct tag but absent from the csv header is a
	// schema violation, not a silently zeroed field
	gocsv.FailIfUnmatchedStructTags = true
}

// Row is one labeled review.
type Row struct {
	ID        string  `csv:"Id"`
	Author    string  `csv:"Author"`
	Text      string  `csv:"Text"`
	NumWords  float64 `csv:"n_words"`
	Sentiment string  `csv:"sentiment"`
	Rating    float64 `csv:"Rating"`
}

// Frame is an ordered table of training rows. It is loaded once and treated
// as read only thereafter.
type Frame struct {
	Rows []Row
}

// Load reads a training csv. The header must contain every column of Row,
// numeric columns must parse, and at least one data row must be present.
func Load(path string) (Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return Frame{}, errors.Wrapf(err, "error opening train data")
	}
	defer f.Close()

	var rows []Row
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return Frame{}, errors.Wrapf(err, "error parsing train data %s", path)
	}
	if len(rows) == 0 {
		return Frame{}, errors.Errorf("train data %s contains no rows", path)
	}
	return Frame{Rows: rows}, nil
}

// Len returns the number of rows.
func (f Frame) Len() int {
	return len(f.Rows)
}

// Strings returns a text valued column.
func (f Frame) Strings(col string) ([]string, error) {
	var get func(Row) string
	switch col {
	case ColID:
		get = func(r Row) string { return r.ID }
	case ColAuthor:
		get = func(r Row) string { return r.Author }
	case ColText:
		get = func(r Row) string { return r.Text }
	case ColSentiment:
		get = func(r Row) string { return r.Sentiment }
	default:
		return nil, errors.Errorf("no text column %q", col)
	}

	vals := make([]string, len(f.Rows))
	for i, row := range f.Rows {
		vals[i] = get(row)
	}
	return vals, nil
}

// Floats returns a numeric valued column.
func (f Frame) Floats(col string) ([]float64, error) {
	var get func(Row) float64
	switch col {
	case ColNumWords:
		get = func(r Row) float64 { return r.NumWords }
	case ColRating:
		get = func(r Row) float64 { return r.Rating }
	default:
		return nil, errors.Errorf("no numeric column %q", col)
	}

	vals := make([]float64, len(f.Rows))
	for i, row := range f.Rows {
		vals[i] = get(row)
	}
	return vals, nil
}

// Ratings returns the target column.
func (f Frame) Ratings() []float64 {
	vals := make([]float64, len(f.Rows))
	for i, row := range f.Rows {
		vals[i] = row.Rating
	}
	return vals
}

// Slice returns the half open row range [lo, hi).
func (f Frame) Slice(lo, hi int) Frame {
	return Frame{Rows: f.Rows[lo:hi]}
}

// Select returns a new frame containing the rows at the given indices, in
// the given order.
func (f Frame) Select(idx []int) Frame {
	rows := make([]Row, len(idx))
	for i, j := range idx {
		rows[i] = f.Rows[j]
	}
	return Frame{Rows: rows}
}

// Without returns a new frame with the row range [lo, hi) removed and the
// remaining rows in their original order.
func (f Frame) Without(lo, hi int) Frame {
	rows := make([]Row, 0, len(f.Rows)-(hi-lo))
	rows = append(rows, f.Rows[:lo]...)
	rows = append(rows, f.Rows[hi:]...)
	return Frame{Rows: rows}
}
