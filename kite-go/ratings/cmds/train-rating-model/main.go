package main

import (
	"log"

	arg "github.com/alexflint/go-arg"
	"github.com/kiteco/rating-model/kite-go/ratings/artifacts"
	"github.com/kiteco/rating-model/kite-go/ratings/features"
	"github.com/kiteco/rating-model/kite-go/ratings/gridsearch"
	"github.com/kiteco/rating-model/kite-go/ratings/traindata"
)

func main() {
	var args struct {
		Train string `arg:"positional,required,help:path to the training data CSV"`
		Out   string `arg:"positional,required,help:directory to write the model and search report"`
	}
	arg.MustParse(&args)

	log.Printf("Constructing model from train data %s", args.Train)
	frame, err := traindata.Load(args.Train)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Searching for hyper-parameters")
	outcome, err := gridsearch.Search(features.DefaultConfig(), frame, gridsearch.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("R2 score for best model: %g", outcome.Best.MeanTestScore)

	log.Printf("Writing model to directory: %s", args.Out)
	if err := artifacts.Write(args.Out, outcome); err != nil {
		log.Fatal(err)
	}
}
