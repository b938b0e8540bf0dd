package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}

	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"inside", Rect{X: 2, Y: 2, W: 2, H: 2}, true},
		{"partial", Rect{X: 5, Y: 5, W: 10, H: 10}, true},
		{"touching edge", Rect{X: 10, Y: 0, W: 5, H: 5}, false},
		{"apart", Rect{X: 20, Y: 20, W: 5, H: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(a))
		})
	}
}

func TestPointSegmentDistance(t *testing.T) {
	a := Vec{0, 0}
	b := Vec{10, 0}

	assert.InDelta(t, 5.0, PointSegmentDistance(Vec{5, 5}, a, b), 1e-9)
	// Beyond the end of the segment the distance is to the endpoint
	assert.InDelta(t, 5.0, PointSegmentDistance(Vec{13, 4}, a, b), 1e-9)
	// Degenerate segment
	assert.InDelta(t, 5.0, PointSegmentDistance(Vec{3, 4}, a, a), 1e-9)
}

func TestApproachNeverOvershoots(t *testing.T) {
	v := 0.0
	for i := 0; i < 200; i++ {
		v = Approach(v, 1, 3, 1.0/60)
		assert.LessOrEqual(t, v, 1.0+1e-12)
	}
	assert.InDelta(t, 1.0, v, 0.01)
}

func TestClampAndSign(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-3, 0, 5))
	assert.Equal(t, 5.0, Clamp(9, 0, 5))
	assert.Equal(t, 2.5, Clamp(2.5, 0, 5))

	assert.Equal(t, -1.0, Sign(-0.1))
	assert.Equal(t, 0.0, Sign(0))
	assert.Equal(t, 1.0, Sign(42))
}
