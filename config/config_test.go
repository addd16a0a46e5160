package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earnwise/earnings-engine/earnings"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "earnwise.db", cfg.DBPath)
	assert.Equal(t, earnings.DefaultTickInterval, cfg.TickInterval)
	assert.Equal(t, earnings.DefaultCacheTTL, cfg.CacheTTL)
	assert.Equal(t, earnings.DefaultSaveDebounce, cfg.SaveDebounce)
	assert.Equal(t, earnings.DefaultOnTrackTolerance, cfg.OnTrackTolerance)
}

func TestNew_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("TICK_INTERVAL", "30s")
	t.Setenv("ON_TRACK_TOLERANCE", "1.25")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.TickInterval)
	assert.Equal(t, 1.25, cfg.OnTrackTolerance)
}

func TestNew_RejectsBadValues(t *testing.T) {
	t.Setenv("TICK_INTERVAL", "fast")
	_, err := New()
	assert.Error(t, err)
}

func TestNew_RejectsToleranceBelowOne(t *testing.T) {
	t.Setenv("ON_TRACK_TOLERANCE", "0.5")
	_, err := New()
	assert.Error(t, err)
}
