package vectorstore

import (
	"fmt"
	"math"
)

// L2Distance computes the Euclidean distance between two vectors. Lower is
// more similar. It returns an error on dimension mismatch, which is how a
// scheme mix between ingestion and query usually first shows up.
func L2Distance(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("dimension mismatch: %d vs %d", len(a), len(b))
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum), nil
}
