package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainOneHot(t *testing.T) {
	o := TrainOneHot([]string{"Pumpe", "Motor", "Pumpe", "Ventil"})
	require.Equal(t, 3, o.Len())

	assert.Equal(t, []string{"Motor", "Pumpe", "Ventil"}, o.Categories)

	i, ok := o.Index("Pumpe")
	require.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestOneHotUnknown(t *testing.T) {
	o := TrainOneHot([]string{"Pumpe"})

	_, ok := o.Index("Gear")
	assert.False(t, ok)
}
