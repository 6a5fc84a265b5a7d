package updater

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		current, latest string
		want            int
	}{
		{"0.1.0", "0.1.3", -1},
		{"0.1.3", "0.2.0", -1},
		{"0.9.9", "1.0.0", -1},
		{"1.2.3", "1.2.3", 0},
		{"0.2.0", "0.1.9", 1},
		{"v0.1.0", "0.1.1", -1},
		{"0.1.0-canary.3", "0.1.0", -1},
		{"0.1.0-canary.3", "0.1.0-canary.12", -1},
	}
	for _, tt := range tests {
		t.Run(tt.current+"_vs_"+tt.latest, func(t *testing.T) {
			got, err := CompareVersions(tt.current, tt.latest)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompareVersions_Unparsable(t *testing.T) {
	for _, pair := range [][2]string{{"dev", "0.1.0"}, {"0.1.0", "latest"}, {"", "0.1.0"}} {
		_, err := CompareVersions(pair[0], pair[1])
		assert.Error(t, err, "%s vs %s", pair[0], pair[1])
	}
}

func TestIsUpdateAvailable(t *testing.T) {
	tests := []struct {
		current, latest string
		want            bool
	}{
		{"0.1.0", "0.1.1", true},
		{"0.1.1", "0.1.1", false},
		{"0.2.0", "0.1.1", false},
	}
	for _, tt := range tests {
		got, err := IsUpdateAvailable(tt.current, tt.latest)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s -> %s", tt.current, tt.latest)
	}
}
