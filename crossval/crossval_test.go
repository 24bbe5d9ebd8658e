package crossval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanGroupsNeverSpanFolds(t *testing.T) {
	groups := []string{"a", "b", "a", "c", "b", "d", "e", "a"}

	plan, err := Plan(groups, 3, 42)
	require.NoError(t, err)
	require.Len(t, plan, len(groups))

	byGroup := make(map[string]int)
	for i, g := range groups {
		if f, ok := byGroup[g]; ok {
			assert.Equal(t, f, plan[i], "group %s spans folds", g)
		} else {
			byGroup[g] = plan[i]
		}
	}
}

func TestPlanCoversAllFolds(t *testing.T) {
	groups := []string{"a", "b", "c", "d", "e", "f", "g"}

	plan, err := Plan(groups, 3, 42)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, f := range plan {
		require.True(t, f >= 0 && f < 3)
		seen[f] = true
	}
	assert.Len(t, seen, 3)
}

func TestPlanBalancedByGroupCount(t *testing.T) {
	groups := []string{"a", "b", "c", "d", "e", "f"}

	plan, err := Plan(groups, 3, 7)
	require.NoError(t, err)

	counts := make(map[int]int)
	for _, f := range plan {
		counts[f]++
	}
	// six groups over three folds: exactly two groups each
	assert.Equal(t, map[int]int{0: 2, 1: 2, 2: 2}, counts)
}

func TestPlanDeterministic(t *testing.T) {
	groups := []string{"a", "b", "c", "d", "e"}

	a, err := Plan(groups, 2, 42)
	require.NoError(t, err)
	b, err := Plan(groups, 2, 42)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestPlanTooFewGroups(t *testing.T) {
	_, err := Plan([]string{"a", "a", "b"}, 3, 42)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "distinct groups")
}

func TestSplitDisjointAndComplete(t *testing.T) {
	groups := []string{"a", "b", "c", "d", "e", "a", "b"}
	plan, err := Plan(groups, 3, 42)
	require.NoError(t, err)

	covered := make([]int, len(groups))
	for f := 0; f < 3; f++ {
		train, val := Split(plan, f)
		assert.Equal(t, len(groups), len(train)+len(val))

		inTrain := make(map[int]bool)
		for _, i := range train {
			inTrain[i] = true
		}
		for _, i := range val {
			assert.False(t, inTrain[i], "row %d in both train and validation", i)
			covered[i]++
		}
	}
	for i, c := range covered {
		assert.Equal(t, 1, c, "row %d should be validated exactly once", i)
	}
}
