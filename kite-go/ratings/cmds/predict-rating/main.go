package main

import (
	"log"
	"os"

	arg "github.com/alexflint/go-arg"
	"github.com/gocarina/gocsv"
	"github.com/kiteco/rating-model/kite-go/ratings/linear"
	"github.com/kiteco/rating-model/kite-go/ratings/pipeline"
	"github.com/kiteco/rating-model/kite-go/ratings/traindata"
)

type prediction struct {
	ID        string  `csv:"Id"`
	Rating    float64 `csv:"Rating"`
	Predicted float64 `csv:"predicted_rating"`
}

func main() {
	var args struct {
		Model string `arg:"positional,required,help:path to a model written by train-rating-model"`
		Data  string `arg:"positional,required,help:path to a CSV of reviews to score"`
		Out   string `arg:"positional,required,help:path to write the predictions CSV"`
	}
	arg.MustParse(&args)

	model, err := pipeline.Load(args.Model)
	if err != nil {
		log.Fatal(err)
	}

	frame, err := traindata.Load(args.Data)
	if err != nil {
		log.Fatal(err)
	}

	preds, err := model.Predict(frame)
	if err != nil {
		log.Fatal(err)
	}
	score, err := linear.RSquared(preds, frame.Ratings())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("R2 score on %d rows: %g", frame.Len(), score)

	records := make([]prediction, 0, frame.Len())
	for i, row := range frame.Rows {
		records = append(records, prediction{
			ID:        row.ID,
			Rating:    row.Rating,
			Predicted: preds[i],
		})
	}

	f, err := os.Create(args.Out)
	if err != nil {
		log.Fatal(err)
	}
	if err := gocsv.Marshal(&records, f); err != nil {
		f.Close()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %d predictions to %s", len(records), args.Out)
}
