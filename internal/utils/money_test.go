package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCostsEqual(t *testing.T) {
	assert.True(t, CostsEqual(10.00, 10.00))
	assert.True(t, CostsEqual(0.1+0.2, 0.3))
	assert.True(t, CostsEqual(10.005, 10.009))
	assert.False(t, CostsEqual(10.00, 10.02))
	assert.False(t, CostsEqual(100, 100.5))
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 10.57, Round2(10.567), 1e-9)
	assert.InDelta(t, 10.56, Round2(10.564), 1e-9)
	assert.InDelta(t, -2.35, Round2(-2.345), 1e-9)
	assert.InDelta(t, 0, Round2(0), 1e-9)
}
