package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat16RoundTrip(t *testing.T) {
	cases := []float32{0, 1, -1, 0.5, 3.14, -3.14, 100, -100, 65504}
	for _, c := range cases {
		h := Float16FromFloat32(c)
		got := h.ToFloat32()
		assert.InDelta(t, float64(c), float64(got), 0.05, "value %v", c)
	}
}

func TestFloat16Zero(t *testing.T) {
	assert.Equal(t, uint16(0), Float16FromFloat32(0).Bits())
}

func TestFloat16Inf(t *testing.T) {
	h := Float16FromFloat32(1e38) // overflows binary16 range
	assert.Equal(t, uint16(0x7c00), h.Bits())
}
