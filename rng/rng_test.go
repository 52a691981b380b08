package rng_test

import (
	"math"
	"testing"

	"github.com/TimothyStiles/dockcore/rng"
	"github.com/stretchr/testify/assert"
)

func TestUniform01InRange(t *testing.T) {
	s := rng.New(1)
	for i := 0; i < 1000; i++ {
		v := s.Uniform01()
		assert.True(t, v >= 0 && v < 1)
	}
}

func TestUnitVectorIsNormalized(t *testing.T) {
	s := rng.New(42)
	for i := 0; i < 100; i++ {
		v := s.UnitVector()
		norm := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
		assert.InDelta(t, 1.0, norm, 1e-9)
	}
}

func TestSameSeedReproducible(t *testing.T) {
	a := rng.New(7)
	b := rng.New(7)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Uniform01(), b.Uniform01())
	}
}

func TestUniformIntZeroIsZero(t *testing.T) {
	s := rng.New(1)
	assert.Equal(t, 0, s.UniformInt(0))
}
