package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	t.Run("coincident points", func(t *testing.T) {
		assert.Equal(t, 0.0, DistanceKm(10.0, 76.0, 10.0, 76.0))
	})

	t.Run("known distance", func(t *testing.T) {
		// Kochi to Thiruvananthapuram is roughly 180 km as the crow flies
		d := DistanceKm(9.9312, 76.2673, 8.5241, 76.9366)
		assert.InDelta(t, 172, d, 10)
	})

	t.Run("short campus-scale distance", func(t *testing.T) {
		// ~0.15 km apart, the scale the proximity gate operates at
		d := DistanceKm(10.0, 76.0, 10.001, 76.001)
		assert.Greater(t, d, 0.1)
		assert.Less(t, d, 0.2)
	})

	t.Run("symmetry", func(t *testing.T) {
		cases := [][4]float64{
			{10.0, 76.0, 10.5, 76.5},
			{-33.8688, 151.2093, 51.5074, -0.1278},
			{0, 0, 0, 180},
		}
		for _, c := range cases {
			ab := DistanceKm(c[0], c[1], c[2], c[3])
			ba := DistanceKm(c[2], c[3], c[0], c[1])
			assert.InDelta(t, ab, ba, 1e-9)
		}
	})

	t.Run("never negative", func(t *testing.T) {
		d := DistanceKm(-90, -180, 90, 180)
		assert.False(t, math.IsNaN(d))
		assert.GreaterOrEqual(t, d, 0.0)
	})
}
