package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistressLevel_Ordering(t *testing.T) {
	assert.True(t, DistressCritical > DistressHigh)
	assert.True(t, DistressHigh > DistressMedium)
	assert.True(t, DistressMedium > DistressNormal)
}

func TestDistressLevel_JSON(t *testing.T) {
	data, err := json.Marshal(DistressCritical)
	require.NoError(t, err)
	assert.Equal(t, `"CRITICAL"`, string(data))

	var level DistressLevel
	require.NoError(t, json.Unmarshal([]byte(`"HIGH"`), &level))
	assert.Equal(t, DistressHigh, level)

	assert.Error(t, json.Unmarshal([]byte(`"NONSENSE"`), &level))
}

func TestParseDistressLevel(t *testing.T) {
	level, err := ParseDistressLevel("MEDIUM")
	require.NoError(t, err)
	assert.Equal(t, DistressMedium, level)

	_, err = ParseDistressLevel("medium")
	assert.Error(t, err)
}

func TestSLAHours(t *testing.T) {
	tests := []struct {
		level DistressLevel
		want  int
	}{
		{DistressCritical, 24},
		{DistressHigh, 72},
		{DistressMedium, 168},
		{DistressNormal, 336},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SLAHours(tt.level), tt.level.String())
	}
}
