package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPredictionStats(t *testing.T) {
	assert.Equal(t, PredictionStats{}, NewPredictionStats(0, 0, 0))
	assert.Equal(t, PredictionStats{Count: 3, AvgWeightKG: 3.4, AvgHeightCM: 49}, NewPredictionStats(3, 3.366, 49.4))
}
