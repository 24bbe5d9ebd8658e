package sweep

import (
	"log"

	"github.com/pkg/errors"

	"github.com/Mathildevib/DAKI2-grp3-final/config"
	"github.com/Mathildevib/DAKI2-grp3-final/crossval"
	"github.com/Mathildevib/DAKI2-grp3-final/dataset"
	"github.com/Mathildevib/DAKI2-grp3-final/features"
	"github.com/Mathildevib/DAKI2-grp3-final/labels"
	"github.com/Mathildevib/DAKI2-grp3-final/presence"
	"github.com/Mathildevib/DAKI2-grp3-final/quantity"
	"github.com/Mathildevib/DAKI2-grp3-final/ranking"
	"github.com/Mathildevib/DAKI2-grp3-final/sparse"
	"github.com/Mathildevib/DAKI2-grp3-final/svm"
	"github.com/Mathildevib/DAKI2-grp3-final/text"
)

// Result holds the cross-validated outcome of one feature-size setting.
type Result struct {
	MaxFeatures int
	Folds       []ranking.Metrics
	Mean        ranking.Metrics

	// Proba and Quantities are the out-of-fold prediction matrices, kept so
	// reports can show example predictions at this setting.
	Proba      [][]float64
	Quantities [][]int
}

// Report is the outcome of a full sweep run.
type Report struct {
	// VocabSize is the uncapped n-gram vocabulary size of the corpus.
	VocabSize       int
	Results         []Result
	BestMaxFeatures int
	// Artifacts hold the full-data refit at the best setting.
	Artifacts *Artifacts
}

// Best returns the result of the selected feature size.
func (r *Report) Best() *Result {
	for i := range r.Results {
		if r.Results[i].MaxFeatures == r.BestMaxFeatures {
			return &r.Results[i]
		}
	}
	return nil
}

var errNoUsableFeatureSteps = errors.New("no feature step below the n-gram vocabulary size")

// Run sweeps the configured feature sizes over grouped cross-validation,
// selects the size with the best mean recall at TopK, and refits both stages
// on the full dataset at that size. Samples must already be preprocessed.
func Run(samples []dataset.Sample, sw text.StopWords, cfg config.Config) (*Report, error) {
	instructions := make([]string, len(samples))
	categories := make([]string, len(samples))
	groups := make([]string, len(samples))
	partLists := make([][]string, len(samples))
	qtyLists := make([][]int, len(samples))
	for i, s := range samples {
		instructions[i] = s.Instructions
		categories[i] = s.Asset
		groups[i] = s.WorkOrder
		partLists[i] = s.Parts
		qtyLists[i] = s.Quantities
	}

	space := labels.Fit(partLists)
	yBin, yCnt := space.Transform(partLists, qtyLists)
	log.Printf("label space: %d parts across %d rows", space.Len(), len(samples))

	plan, err := crossval.Plan(groups, cfg.Folds, cfg.Seed)
	if err != nil {
		return nil, err
	}

	vocabSize := features.VocabularySize(instructions, cfg.NGramMin, cfg.NGramMax)
	var steps []int
	for _, s := range cfg.FeatureSteps {
		if s < vocabSize {
			steps = append(steps, s)
		}
	}
	if len(steps) == 0 {
		return nil, errors.Wrapf(errNoUsableFeatureSteps, "vocabulary has %d terms", vocabSize)
	}

	report := &Report{VocabSize: vocabSize}
	var transformers []*features.Transformer
	var matrices [][]sparse.Vector
	for _, step := range steps {
		log.Printf("sweep: max features %d", step)
		tr := features.Fit(instructions, categories, features.Options{
			MaxFeatures: step,
			NGramMin:    cfg.NGramMin,
			NGramMax:    cfg.NGramMax,
			StopWords:   sw,
		})
		X := tr.TransformAll(instructions, categories)

		folds, proba, qty, err := CrossValidate(X, yBin, yCnt, plan, space, tr.NumFeatures(), cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "max features %d", step)
		}
		mean, err := ranking.Mean(folds)
		if err != nil {
			return nil, err
		}
		log.Printf("sweep: max features %d mean recall@%d %.4f", step, cfg.TopK, mean.RecallAtK)

		report.Results = append(report.Results, Result{
			MaxFeatures: step,
			Folds:       folds,
			Mean:        mean,
			Proba:       proba,
			Quantities:  qty,
		})
		transformers = append(transformers, tr)
		matrices = append(matrices, X)
	}

	best := bestIndex(report.Results)
	report.BestMaxFeatures = report.Results[best].MaxFeatures
	log.Printf("sweep: selected max features %d", report.BestMaxFeatures)

	arts, err := Refit(transformers[best], matrices[best], yBin, yCnt, space, cfg)
	if err != nil {
		return nil, err
	}
	report.Artifacts = arts
	return report, nil
}

// bestIndex picks the result with the highest mean recall, first occurrence
// on ties.
func bestIndex(results []Result) int {
	best := 0
	for i := range results {
		if results[i].Mean.RecallAtK > results[best].Mean.RecallAtK {
			best = i
		}
	}
	return best
}

// CrossValidate runs both prediction stages across every fold of the plan.
// Each fold trains on its training rows and writes predictions into the
// shared matrices at its validation rows only, so after all folds every cell
// holds an out-of-fold prediction (or 0 where a label was skipped). Returns
// the per-fold validation metrics and the filled matrices.
func CrossValidate(X []sparse.Vector, yBin, yCnt [][]int, plan []int, space *labels.Space, numFeatures int, cfg config.Config) ([]ranking.Metrics, [][]float64, [][]int, error) {
	proba := make([][]float64, len(X))
	qty := make([][]int, len(X))
	for i := range X {
		proba[i] = make([]float64, space.Len())
		qty[i] = make([]int, space.Len())
	}

	base := svm.Options{C: cfg.Cost, Tol: cfg.Tol, MaxIter: cfg.MaxIter}
	var folds []ranking.Metrics
	for fold := 0; fold < cfg.Folds; fold++ {
		train, val := crossval.Split(plan, fold)

		pres, err := presence.Train(X, yBin, train, space, numFeatures, presence.Options{
			Base:             base,
			CalibrationFolds: cfg.CalibrationFolds,
			Seed:             cfg.Seed,
		})
		if err != nil {
			return nil, nil, nil, errors.Wrapf(err, "fold %d", fold)
		}
		pres.PredictInto(X, val, proba)

		qens := quantity.Train(X, yCnt, train, space, numFeatures, quantity.Options{
			Base:    base,
			MinRows: cfg.MinQuantityRows,
			Seed:    cfg.Seed,
		})
		qens.PredictInto(X, val, qty)

		quantity.Safeguard(proba, qty, val, cfg.TopK)

		m := scoreRows(yBin, yCnt, proba, qty, val, cfg.TopK)
		folds = append(folds, m)
		log.Printf("fold %d/%d: precision@%d %.4f recall@%d %.4f quantity accuracy %.4f",
			fold+1, cfg.Folds, cfg.TopK, m.PrecisionAtK, cfg.TopK, m.RecallAtK, m.QuantityAccuracy)
	}
	return folds, proba, qty, nil
}

// scoreRows evaluates the given rows of the shared matrices.
func scoreRows(yBin, yCnt [][]int, proba [][]float64, qty [][]int, rows []int, k int) ranking.Metrics {
	truth := make([][]int, len(rows))
	truthCnt := make([][]int, len(rows))
	probaRows := make([][]float64, len(rows))
	qtyRows := make([][]int, len(rows))
	for i, r := range rows {
		truth[i] = yBin[r]
		truthCnt[i] = yCnt[r]
		probaRows[i] = proba[r]
		qtyRows[i] = qty[r]
	}
	m := ranking.Evaluate(truth, probaRows, k)
	m.QuantityAccuracy = ranking.QuantityAccuracy(truthCnt, qtyRows)
	return m
}

// Refit trains both stages on the full dataset at the selected setting and
// bundles the exportable artifacts.
func Refit(tr *features.Transformer, X []sparse.Vector, yBin, yCnt [][]int, space *labels.Space, cfg config.Config) (*Artifacts, error) {
	rows := make([]int, len(X))
	for i := range rows {
		rows[i] = i
	}

	base := svm.Options{C: cfg.Cost, Tol: cfg.Tol, MaxIter: cfg.MaxIter}
	pres, err := presence.Train(X, yBin, rows, space, tr.NumFeatures(), presence.Options{
		Base:             base,
		CalibrationFolds: cfg.CalibrationFolds,
		Seed:             cfg.Seed,
	})
	if err != nil {
		return nil, errors.Wrap(err, "full-data refit")
	}
	qens := quantity.Train(X, yCnt, rows, space, tr.NumFeatures(), quantity.Options{
		Base:    base,
		MinRows: cfg.MinQuantityRows,
		Seed:    cfg.Seed,
	})

	return &Artifacts{
		Transformer: tr,
		Presence:    pres.Models,
		Space:       space,
		Quantity:    qens.Models,
	}, nil
}
