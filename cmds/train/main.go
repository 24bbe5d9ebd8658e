package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexflint/go-arg"
	humanize "github.com/dustin/go-humanize"
	"github.com/gocarina/gocsv"
	chart "github.com/wcharczuk/go-chart"

	"github.com/Mathildevib/DAKI2-grp3-final/config"
	"github.com/Mathildevib/DAKI2-grp3-final/dataset"
	"github.com/Mathildevib/DAKI2-grp3-final/ranking"
	"github.com/Mathildevib/DAKI2-grp3-final/sweep"
	"github.com/Mathildevib/DAKI2-grp3-final/text"
)

type metricRecord struct {
	MaxFeatures      int     `csv:"max_features"`
	Fold             string  `csv:"fold"`
	PrecisionAtK     float64 `csv:"precision_at_k"`
	RecallAtK        float64 `csv:"recall_at_k"`
	F1AtK            float64 `csv:"f1_at_k"`
	Hamming          float64 `csv:"hamming"`
	Weighted         float64 `csv:"weighted"`
	PartialCoverage  float64 `csv:"partial_coverage"`
	IoU              float64 `csv:"iou"`
	QuantityAccuracy float64 `csv:"quantity_accuracy"`
}

func newRecord(maxFeatures int, fold string, m ranking.Metrics) metricRecord {
	return metricRecord{
		MaxFeatures:      maxFeatures,
		Fold:             fold,
		PrecisionAtK:     m.PrecisionAtK,
		RecallAtK:        m.RecallAtK,
		F1AtK:            m.F1AtK,
		Hamming:          m.Hamming,
		Weighted:         m.Weighted,
		PartialCoverage:  m.PartialCoverage,
		IoU:              m.IoU,
		QuantityAccuracy: m.QuantityAccuracy,
	}
}

func fail(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	args := struct {
		Dataset   string `arg:"positional,required" help:"work order CSV export"`
		StopWords string `help:"newline-delimited Danish stop words"`
		Config    string `help:"optional YAML overriding the default configuration"`
		OutDir    string `help:"directory for the exported model artifacts"`
		Metrics   string `help:"per-fold metric CSV"`
		Plot      string `help:"recall-by-feature-count PNG"`
		Examples  int    `help:"out-of-fold example predictions to print"`
	}{
		StopWords: "data/stopord.txt",
		OutDir:    "models",
		Metrics:   "metrics.csv",
		Plot:      "recall.png",
		Examples:  3,
	}
	arg.MustParse(&args)

	cfg := config.Default()
	if args.Config != "" {
		var err error
		cfg, err = config.Load(args.Config)
		fail(err)
	}

	samples, err := dataset.Load(args.Dataset)
	fail(err)
	log.Printf("loaded %s work order rows from %s", humanize.Comma(int64(len(samples))), args.Dataset)

	sw, err := text.LoadStopWords(args.StopWords)
	fail(err)
	log.Printf("loaded %d stop words from %s", len(sw), args.StopWords)

	dataset.Preprocess(samples)

	report, err := sweep.Run(samples, sw, cfg)
	fail(err)

	printSummary(report, cfg)
	printExamples(report, samples, cfg, args.Examples)

	fail(writeMetrics(report, args.Metrics))
	fail(writePlot(report, cfg, args.Plot))

	fail(report.Artifacts.Save(args.OutDir))
	log.Printf("saved artifacts to %s", args.OutDir)
}

func printSummary(report *sweep.Report, cfg config.Config) {
	fmt.Printf("n-gram vocabulary: %s terms\n", humanize.Comma(int64(report.VocabSize)))

	w := tabwriter.NewWriter(os.Stdout, 16, 4, 4, ' ', 0)
	fmt.Fprintf(w, "max features\tfold\tprecision@%d\trecall@%d\tf1@%d\thamming\tweighted\tcoverage\tiou\tqty acc\n",
		cfg.TopK, cfg.TopK, cfg.TopK)
	for _, res := range report.Results {
		for i, m := range res.Folds {
			writeRow(w, res.MaxFeatures, fmt.Sprintf("%d", i), m)
		}
		writeRow(w, res.MaxFeatures, "mean", res.Mean)
	}
	w.Flush()

	fmt.Printf("selected max features: %d\n", report.BestMaxFeatures)
}

func writeRow(w *tabwriter.Writer, maxFeatures int, fold string, m ranking.Metrics) {
	fmt.Fprintf(w, "%d\t%s\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
		maxFeatures, fold,
		m.PrecisionAtK, m.RecallAtK, m.F1AtK, m.Hamming,
		m.Weighted, m.PartialCoverage, m.IoU, m.QuantityAccuracy)
}

// printExamples shows the first rows with their out-of-fold top-K at the
// selected feature size next to the parts actually used.
func printExamples(report *sweep.Report, samples []dataset.Sample, cfg config.Config, n int) {
	best := report.Best()
	if best == nil || n <= 0 {
		return
	}
	if n > len(samples) {
		n = len(samples)
	}
	space := report.Artifacts.Space

	fmt.Printf("\nexample predictions (out-of-fold, max features %d):\n", best.MaxFeatures)
	for r := 0; r < n; r++ {
		var actual []string
		for j, part := range samples[r].Parts {
			if j < len(samples[r].Quantities) {
				actual = append(actual, fmt.Sprintf("%s x%d", part, samples[r].Quantities[j]))
			}
		}
		fmt.Printf("work order %s: %q\n", samples[r].WorkOrder, samples[r].Instructions)
		fmt.Printf("  used: %s\n", strings.Join(actual, ", "))
		for _, l := range ranking.TopK(best.Proba[r], cfg.TopK) {
			fmt.Printf("  %.3f  %s x%d\n", best.Proba[r][l], space.Label(l), best.Quantities[r][l])
		}
	}
}

func writeMetrics(report *sweep.Report, path string) error {
	var records []metricRecord
	for _, res := range report.Results {
		for i, m := range res.Folds {
			records = append(records, newRecord(res.MaxFeatures, fmt.Sprintf("%d", i), m))
		}
		records = append(records, newRecord(res.MaxFeatures, "mean", res.Mean))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gocsv.Marshal(&records, f)
}

func writePlot(report *sweep.Report, cfg config.Config, path string) error {
	if len(report.Results) < 2 {
		log.Printf("skipping %s: need at least two feature settings for a curve", path)
		return nil
	}

	var xs, ys []float64
	for _, res := range report.Results {
		xs = append(xs, float64(res.MaxFeatures))
		ys = append(ys, res.Mean.RecallAtK)
	}

	graph := chart.Chart{
		Title:      fmt.Sprintf("Recall@%d by feature count", cfg.TopK),
		TitleStyle: chart.StyleShow(),
		XAxis: chart.XAxis{
			Name:      "Max features",
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		YAxis: chart.YAxis{
			Name:      fmt.Sprintf("Mean recall@%d", cfg.TopK),
			NameStyle: chart.StyleShow(),
			Style:     chart.StyleShow(),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("mean recall@%d", cfg.TopK),
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					Show:        true,
					StrokeColor: chart.GetAlternateColor(0),
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
