package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := map[string]time.Duration{
		"PT30S":   30 * time.Second,
		"PT5M":    5 * time.Minute,
		"PT1H30M": 90 * time.Minute,
		"P1D":     24 * time.Hour,
	}

	for value, expected := range tests {
		parsed, err := ParseDuration(value)
		require.NoError(t, err, value)
		assert.Equal(t, expected, parsed, value)
	}

	_, err := ParseDuration("30 seconds")
	assert.Error(t, err)
}

func TestTrimString(t *testing.T) {
	assert.Equal(t, "Üsküdar", TrimString("Üsküdar", 10))
	assert.Equal(t, "Üskü", TrimString("Üsküdar", 4))
}

func TestRemoveDuplicateStrings(t *testing.T) {
	assert.Equal(t, []string{"500T", "34"}, RemoveDuplicateStrings([]string{"500T", "", "34", "500T", "15F"}, []string{"15F"}))
}

func TestGetEnvironmentVariables(t *testing.T) {
	t.Setenv("BUSRADAR_TEST_VALUE", "a=b")
	t.Setenv("UNRELATED_TEST_VALUE", "c")

	env := GetEnvironmentVariables()
	assert.Equal(t, "a=b", env["BUSRADAR_TEST_VALUE"])
	assert.NotContains(t, env, "UNRELATED_TEST_VALUE")
}
