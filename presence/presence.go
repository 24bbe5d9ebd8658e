package presence

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"

	"github.com/Mathildevib/DAKI2-grp3-final/calibrate"
	"github.com/Mathildevib/DAKI2-grp3-final/labels"
	"github.com/Mathildevib/DAKI2-grp3-final/sparse"
	"github.com/Mathildevib/DAKI2-grp3-final/svm"
	"github.com/Mathildevib/DAKI2-grp3-final/workerpool"
)

// Options configure presence training.
type Options struct {
	// Base is the classifier configuration; its seed is replaced per label.
	Base svm.Options
	// CalibrationFolds is the stratified sub-fold count for calibration.
	CalibrationFolds int
	// Seed is the run seed each label's seed derives from.
	Seed int64
	// Workers bounds the training pool; zero means one per CPU.
	Workers int
}

// Ensemble holds one calibrated presence model per trainable label, keyed by
// label index. Labels skipped for want of both presence values have no entry.
type Ensemble struct {
	Models map[int]*calibrate.Model `json:"models"`
}

// Train fits a calibrated presence model for every label over the given
// training rows. Labels whose training slice holds a single presence value
// are skipped silently; their probabilities stay zero at prediction. Training
// fans out across labels on a worker pool, deterministic because every label
// seeds its own optimizer stream. A calibration failure aborts the whole
// training.
func Train(X []sparse.Vector, yBin [][]int, rows []int, space *labels.Space, numFeatures int, opts Options) (*Ensemble, error) {
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	pool := workerpool.New(workers)
	defer pool.Stop()

	ens := &Ensemble{Models: make(map[int]*calibrate.Model)}
	var mu sync.Mutex
	var firstErr error

	jobs := make([]workerpool.Job, 0, space.Len())
	for l := 0; l < space.Len(); l++ {
		l := l
		jobs = append(jobs, func() error {
			y := make([]int, len(rows))
			var pos int
			for i, r := range rows {
				y[i] = yBin[r][l]
				if y[i] == 1 {
					pos++
				}
			}
			if pos == 0 || pos == len(rows) {
				return nil
			}

			trainX := make([]sparse.Vector, len(rows))
			for i, r := range rows {
				trainX[i] = X[r]
			}

			seed := labels.Seed(opts.Seed, space.Label(l))
			base := opts.Base
			base.Seed = seed

			model, err := calibrate.Fit(trainX, y, numFeatures, base, opts.CalibrationFolds, seed)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = errors.Wrapf(err, "presence model for label %s", space.Label(l))
				}
				return err
			}
			ens.Models[l] = model
			return nil
		})
	}

	pool.Add(jobs)
	pool.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return ens, nil
}

// PredictInto writes each trained label's probability for every given row
// into proba. Rows and labels outside the call are left untouched, so fold
// writes stay within the fold's validation rows.
func (e *Ensemble) PredictInto(X []sparse.Vector, rows []int, proba [][]float64) {
	for l, model := range e.Models {
		for _, r := range rows {
			proba[r][l] = model.PredictProba(X[r])
		}
	}
}
