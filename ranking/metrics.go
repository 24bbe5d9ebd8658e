package ranking

import (
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

// Metrics holds the ranked-recommendation quality measures of one evaluation
// over a set of rows.
type Metrics struct {
	// PrecisionAtK is the mean share of the top-K that was actually used,
	// divided by K on every row.
	PrecisionAtK float64
	// RecallAtK is the mean share of used parts found in the top-K, over rows
	// that used at least one part.
	RecallAtK float64
	// F1AtK is the harmonic mean of the aggregated precision and recall.
	F1AtK float64
	// Hamming is the share of (row, part) cells where the binarized top-K
	// agrees with the truth.
	Hamming float64
	// Weighted credits a hit with its predicted probability, normalized by
	// truth size, over rows with non-empty truth.
	Weighted float64
	// PartialCoverage is hit count over max(1, truth size), averaged over all
	// rows, so rows with nothing to find count as zero instead of dropping
	// out.
	PartialCoverage float64
	// IoU is the mean intersection-over-union of truth and top-K sets.
	IoU float64
	// QuantityAccuracy is filled in separately by QuantityAccuracy.
	QuantityAccuracy float64
}

// TopK returns the indices of the k highest probabilities, ties broken by the
// lower index. This is the one selection rule shared by evaluation and the
// quantity safeguard.
func TopK(row []float64, k int) []int {
	if k <= 0 {
		return nil
	}
	idx := make([]int, len(row))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		if row[idx[a]] != row[idx[b]] {
			return row[idx[a]] > row[idx[b]]
		}
		return idx[a] < idx[b]
	})
	if k > len(idx) {
		k = len(idx)
	}
	return idx[:k]
}

// IoU returns the intersection-over-union of two index sets. Two empty sets
// are identical, so their overlap is 1.
func IoU(truth, pred []int) float64 {
	if len(truth) == 0 && len(pred) == 0 {
		return 1
	}
	in := make(map[int]bool, len(truth))
	for _, i := range truth {
		in[i] = true
	}
	var inter int
	for _, i := range pred {
		if in[i] {
			inter++
		}
	}
	union := len(truth) + len(pred) - inter
	return float64(inter) / float64(union)
}

// Evaluate scores top-K recommendations against the presence truth. Rows
// with empty truth still count against precision, Hamming, partial coverage
// and IoU, but are excluded from recall and the weighted score, where there
// is nothing to find. QuantityAccuracy is left zero.
func Evaluate(yTrue [][]int, proba [][]float64, k int) Metrics {
	if len(yTrue) == 0 {
		return Metrics{}
	}

	var precisionSum, partialSum, iouSum float64
	var recallSum, weightedSum float64
	var coverable int
	var agree, cells int

	for i, truthRow := range yTrue {
		var truth []int
		for l, v := range truthRow {
			if v == 1 {
				truth = append(truth, l)
			}
		}
		pred := TopK(proba[i], k)
		inTop := make(map[int]bool, len(pred))
		for _, l := range pred {
			inTop[l] = true
		}

		var inter int
		var hitProb float64
		for _, l := range truth {
			if inTop[l] {
				inter++
				hitProb += proba[i][l]
			}
		}

		precisionSum += float64(inter) / float64(k)
		partialSum += float64(inter) / float64(max(1, len(truth)))
		iouSum += IoU(truth, pred)
		if len(truth) > 0 {
			recallSum += float64(inter) / float64(len(truth))
			weightedSum += hitProb / float64(len(truth))
			coverable++
		}

		for l, v := range truthRow {
			if inTop[l] == (v == 1) {
				agree++
			}
		}
		cells += len(truthRow)
	}

	n := float64(len(yTrue))
	m := Metrics{
		PrecisionAtK:    precisionSum / n,
		PartialCoverage: partialSum / n,
		IoU:             iouSum / n,
	}
	if coverable > 0 {
		m.RecallAtK = recallSum / float64(coverable)
		m.Weighted = weightedSum / float64(coverable)
	}
	if cells > 0 {
		m.Hamming = float64(agree) / float64(cells)
	}
	if pr := m.PrecisionAtK + m.RecallAtK; pr > 0 {
		m.F1AtK = 2 * m.PrecisionAtK * m.RecallAtK / pr
	}
	return m
}

// QuantityAccuracy is the share of correctly predicted quantities over the
// cells where a part was actually used. Zero-truth cells say nothing about
// quantity skill and are ignored.
func QuantityAccuracy(yCnt, qty [][]int) float64 {
	var correct, total int
	for i, row := range yCnt {
		for l, truth := range row {
			if truth <= 0 {
				continue
			}
			total++
			if qty[i][l] == truth {
				correct++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// Mean averages metrics across folds, field by field.
func Mean(ms []Metrics) (Metrics, error) {
	var out Metrics
	fields := []struct {
		get func(Metrics) float64
		set *float64
	}{
		{func(m Metrics) float64 { return m.PrecisionAtK }, &out.PrecisionAtK},
		{func(m Metrics) float64 { return m.RecallAtK }, &out.RecallAtK},
		{func(m Metrics) float64 { return m.F1AtK }, &out.F1AtK},
		{func(m Metrics) float64 { return m.Hamming }, &out.Hamming},
		{func(m Metrics) float64 { return m.Weighted }, &out.Weighted},
		{func(m Metrics) float64 { return m.PartialCoverage }, &out.PartialCoverage},
		{func(m Metrics) float64 { return m.IoU }, &out.IoU},
		{func(m Metrics) float64 { return m.QuantityAccuracy }, &out.QuantityAccuracy},
	}
	for _, f := range fields {
		vals := make([]float64, len(ms))
		for i, m := range ms {
			vals[i] = f.get(m)
		}
		mean, err := stats.Mean(vals)
		if err != nil {
			return Metrics{}, errors.Wrap(err, "averaging fold metrics")
		}
		*f.set = mean
	}
	return out, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
