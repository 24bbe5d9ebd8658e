package quantity

import (
	"runtime"
	"sort"
	"sync"

	"github.com/Mathildevib/DAKI2-grp3-final/labels"
	"github.com/Mathildevib/DAKI2-grp3-final/sparse"
	"github.com/Mathildevib/DAKI2-grp3-final/svm"
	"github.com/Mathildevib/DAKI2-grp3-final/workerpool"
)

// Model kinds. A label with enough varied usage gets a trained classifier,
// anything else a constant.
const (
	KindSVC      = "svc"
	KindConstant = "constant"
)

// Options configure quantity training.
type Options struct {
	// Base is the classifier configuration; its seed is replaced per label.
	Base svm.Options
	// MinRows is the fewest usage rows a label needs for a trained predictor.
	MinRows int
	// Seed is the run seed each label's seed derives from.
	Seed int64
	// Workers bounds the training pool; zero means one per CPU.
	Workers int
}

// Model predicts the used quantity of one label.
type Model struct {
	Kind     string         `json:"kind"`
	Constant int            `json:"constant,omitempty"`
	SVC      *svm.Multiclass `json:"svc,omitempty"`
}

// Predict returns the quantity for a feature vector.
func (m *Model) Predict(x sparse.Vector) int {
	if m.Kind == KindSVC && m.SVC != nil {
		return m.SVC.Predict(x)
	}
	return m.Constant
}

// Ensemble holds a quantity model for every label, keyed by label index.
// Unlike presence, no label is skipped: sparse usage degrades to a constant,
// never to an error.
type Ensemble struct {
	Models map[int]*Model `json:"models"`
}

// Train fits per-label quantity predictors on the rows where the label was
// actually used. A label with fewer than MinRows usages or a single distinct
// quantity gets a constant predictor holding the mode of its quantities (0
// with no usage at all); the rest get a one-vs-rest classifier over their
// observed quantity values.
func Train(X []sparse.Vector, yCnt [][]int, rows []int, space *labels.Space, numFeatures int, opts Options) *Ensemble {
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	pool := workerpool.New(workers)
	defer pool.Stop()

	ens := &Ensemble{Models: make(map[int]*Model)}
	var mu sync.Mutex

	jobs := make([]workerpool.Job, 0, space.Len())
	for l := 0; l < space.Len(); l++ {
		l := l
		jobs = append(jobs, func() error {
			var usedX []sparse.Vector
			var qtys []int
			distinct := make(map[int]bool)
			for _, r := range rows {
				if q := yCnt[r][l]; q > 0 {
					usedX = append(usedX, X[r])
					qtys = append(qtys, q)
					distinct[q] = true
				}
			}

			var model *Model
			if len(qtys) < opts.MinRows || len(distinct) < 2 {
				model = &Model{Kind: KindConstant, Constant: Mode(qtys)}
			} else {
				base := opts.Base
				base.Seed = labels.Seed(opts.Seed, space.Label(l))
				model = &Model{Kind: KindSVC, SVC: svm.TrainMulticlass(usedX, qtys, numFeatures, base)}
			}

			mu.Lock()
			ens.Models[l] = model
			mu.Unlock()
			return nil
		})
	}

	pool.Add(jobs)
	pool.Wait()
	return ens
}

// PredictInto writes every label's quantity for every given row into qty.
func (e *Ensemble) PredictInto(X []sparse.Vector, rows []int, qty [][]int) {
	for l, model := range e.Models {
		for _, r := range rows {
			qty[r][l] = model.Predict(X[r])
		}
	}
}

// Mode returns the most frequent value, ties to the smallest; 0 without
// values.
func Mode(vals []int) int {
	if len(vals) == 0 {
		return 0
	}
	counts := make(map[int]int)
	for _, v := range vals {
		counts[v]++
	}
	distinct := make([]int, 0, len(counts))
	for v := range counts {
		distinct = append(distinct, v)
	}
	sort.Ints(distinct)

	best := distinct[0]
	for _, v := range distinct[1:] {
		if counts[v] > counts[best] {
			best = v
		}
	}
	return best
}
