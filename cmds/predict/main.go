package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"

	"github.com/Mathildevib/DAKI2-grp3-final/dataset"
	"github.com/Mathildevib/DAKI2-grp3-final/sweep"
)

func fail(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	args := struct {
		ModelDir    string `arg:"positional,required" help:"artifact directory written by train"`
		Instruction string `help:"free-text work instruction"`
		Asset       string `help:"asset product category"`
		Dataset     string `help:"optional work order CSV to predict in batch"`
		TopK        int    `help:"number of parts to recommend"`
	}{
		TopK: 5,
	}
	arg.MustParse(&args)

	if args.Instruction == "" && args.Dataset == "" {
		fail(errors.New("pass --instruction or --dataset"))
	}

	arts, err := sweep.LoadArtifacts(args.ModelDir)
	fail(err)
	log.Printf("loaded models for %d parts from %s", arts.Space.Len(), args.ModelDir)

	if args.Instruction != "" {
		printRecommendations(arts, args.Instruction, args.Asset, args.TopK)
	}

	if args.Dataset != "" {
		samples, err := dataset.Load(args.Dataset)
		fail(err)
		for _, s := range samples {
			fmt.Printf("\nwork order %s: %q\n", s.WorkOrder, s.Instructions)
			printRecommendations(arts, s.Instructions, s.Asset, args.TopK)
		}
	}
}

func printRecommendations(arts *sweep.Artifacts, instruction, asset string, k int) {
	recs := arts.Predict(dataset.PreprocessInstruction(instruction), asset, k)

	w := tabwriter.NewWriter(os.Stdout, 16, 4, 4, ' ', 0)
	fmt.Fprintf(w, "part\tprobability\tquantity\n")
	for _, rec := range recs {
		fmt.Fprintf(w, "%s\t%.3f\t%d\n", rec.Part, rec.Probability, rec.Quantity)
	}
	w.Flush()
}
