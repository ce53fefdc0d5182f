package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeCommission_Percentage(t *testing.T) {
	assert.Equal(t, 300.0, ComputeCommission(1000, "PERCENTAGE", 30))
	assert.Equal(t, 0.0, ComputeCommission(1000, "PERCENTAGE", 0))
	assert.Equal(t, 1000.0, ComputeCommission(1000, "PERCENTAGE", 100))
	assert.Equal(t, 0.0, ComputeCommission(0, "PERCENTAGE", 30))
}

func TestComputeCommission_FixedIgnoresPrice(t *testing.T) {
	assert.Equal(t, 150.0, ComputeCommission(1000, "FIXED", 150))
	assert.Equal(t, 150.0, ComputeCommission(0, "FIXED", 150))
	assert.Equal(t, 150.0, ComputeCommission(99999, "FIXED", 150))
}

func TestComputeCommission_UnknownTypeEarnsNothing(t *testing.T) {
	assert.Equal(t, 0.0, ComputeCommission(1000, "", 30))
	assert.Equal(t, 0.0, ComputeCommission(1000, "percentage", 30))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(1000*3.333/100))
	assert.Equal(t, 0.1, Round2(0.1))
	assert.Equal(t, 2.68, Round2(2.675000001))
	assert.Equal(t, 300.0, Round2(300))
}
