package pan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return epoch.Add(time.Duration(ms) * time.Millisecond)
}

func TestVelocityConstantSpeed(t *testing.T) {
	var v velocityTracker
	for i := 0; i <= 8; i++ {
		// 2 units per ms right, 1 unit per ms up
		v.add(at(i*10), float64(i*20), float64(-i*10))
	}
	vx, vy := v.velocity()
	assert.InDelta(t, 2000, vx, 1e-3)
	assert.InDelta(t, -1000, vy, 1e-3)
}

func TestVelocityGrowsWithSpeed(t *testing.T) {
	prev := 0.0
	for _, step := range []float64{1, 2, 5, 10, 40} {
		var v velocityTracker
		for i := 0; i < 6; i++ {
			v.add(at(i*16), float64(i)*step, 0)
		}
		vx, _ := v.velocity()
		assert.Greater(t, vx, prev, "step %v", step)
		prev = vx
	}
}

func TestVelocityIgnoresStaleSamples(t *testing.T) {
	var v velocityTracker
	// slow for half a second, then fast
	x := 0.0
	for i := 0; i < 10; i++ {
		v.add(at(i*50), x, 0)
		x += 1
	}
	for i := 1; i <= 5; i++ {
		x += 30
		v.add(at(550+i*10), x, 0)
	}
	vx, _ := v.velocity()
	assert.InDelta(t, 3000, vx, 1e-3)
}

func TestVelocityRingIsBounded(t *testing.T) {
	var v velocityTracker
	for i := 0; i < 5*velocitySamples; i++ {
		v.add(at(i), float64(i), 0)
	}
	assert.Equal(t, velocitySamples, v.n)
	assert.Equal(t, at(5*velocitySamples-velocitySamples), v.at(0).t)
	assert.Equal(t, at(5*velocitySamples-1), v.at(velocitySamples-1).t)
}

func TestVelocityNeedsTwoSamples(t *testing.T) {
	var v velocityTracker
	vx, vy := v.velocity()
	assert.Zero(t, vx)
	assert.Zero(t, vy)

	v.add(at(0), 10, 10)
	vx, vy = v.velocity()
	assert.Zero(t, vx)
	assert.Zero(t, vy)

	// same timestamp twice has no slope
	v.add(at(0), 50, 50)
	vx, vy = v.velocity()
	assert.Zero(t, vx)
	assert.Zero(t, vy)

	v.reset()
	assert.Zero(t, v.n)
}
