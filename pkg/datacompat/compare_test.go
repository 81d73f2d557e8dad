package datacompat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareFloat(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want int
	}{
		{"equal values", 1.0, 1.0, 0},
		{"less", 1.0, 2.0, -1},
		{"greater", 2.0, 1.0, 1},
		{"both NaN", math.NaN(), math.NaN(), 0},
		{"NaN below everything", math.NaN(), math.Inf(-1), -1},
		{"everything above NaN", 0.0, math.NaN(), 1},
		{"signed zeros equal", math.Copysign(0, -1), 0.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareFloat(tt.a, tt.b))
		})
	}
}

func TestCompareFloat_Float32(t *testing.T) {
	assert.Equal(t, 0, CompareFloat(float32(1.0), float32(1.0)))
	assert.Equal(t, -1, CompareFloat(float32(0.5), float32(1.5)))
}

func TestZeroIfNil(t *testing.T) {
	v := 3.5
	assert.Equal(t, 3.5, ZeroIfNil(&v))
	assert.Equal(t, 0.0, ZeroIfNil[float64](nil))
}

func TestEqualPtr(t *testing.T) {
	a, b := "x", "x"
	c := "y"
	assert.True(t, EqualPtr[string](nil, nil))
	assert.True(t, EqualPtr(&a, &b))
	assert.False(t, EqualPtr(&a, &c))
	assert.False(t, EqualPtr(nil, &a))
	assert.False(t, EqualPtr(&a, nil))
}

func TestFormatPtr(t *testing.T) {
	v := 7
	assert.Equal(t, "7", FormatPtr(&v))
	assert.Equal(t, "null", FormatPtr[int](nil))
}
