package crossval

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Plan assigns every row to one of k folds such that rows sharing a group
// identifier always land in the same fold. Work orders repeat across rows, so
// splitting by row would leak near-duplicate text between train and
// validation. Distinct groups are collected in first-seen order, shuffled
// with the seed, and dealt round-robin, which balances folds by group count.
// Fewer distinct groups than folds is a configuration error.
func Plan(groups []string, k int, seed int64) ([]int, error) {
	var order []string
	index := make(map[string]int)
	for _, g := range groups {
		if _, ok := index[g]; !ok {
			index[g] = len(order)
			order = append(order, g)
		}
	}
	if len(order) < k {
		return nil, errors.Errorf("grouped cross-validation needs at least %d distinct groups, have %d", k, len(order))
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	fold := make(map[string]int, len(order))
	for i, g := range order {
		fold[g] = i % k
	}

	plan := make([]int, len(groups))
	for i, g := range groups {
		plan[i] = fold[g]
	}
	return plan, nil
}

// Split returns the train and validation row indices of one fold.
func Split(plan []int, fold int) (train, val []int) {
	for i, f := range plan {
		if f == fold {
			val = append(val, i)
		} else {
			train = append(train, i)
		}
	}
	return train, val
}
