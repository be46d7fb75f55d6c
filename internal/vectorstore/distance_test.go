package vectorstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestL2Distance(t *testing.T) {
	d, err := L2Distance([]float32{0, 0}, []float32{3, 4})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, d, 1e-9)

	d, err = L2Distance([]float32{1, 2, 3}, []float32{1, 2, 3})
	require.NoError(t, err)
	assert.Zero(t, d)
}

func TestL2DistanceDimensionMismatch(t *testing.T) {
	_, err := L2Distance([]float32{1}, []float32{1, 2})

	assert.Error(t, err)
}
