package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInternalConfig(t *testing.T) {
	t.Run("drafts do not expire by default", func(t *testing.T) {
		t.Setenv("DRAFT_TTL_IN_HOURS", "")

		assert.Zero(t, NewInternalConfig().Draft.TTLInHours)
	})

	t.Run("draft ttl can be set", func(t *testing.T) {
		t.Setenv("DRAFT_TTL_IN_HOURS", "72")

		assert.Equal(t, 72, NewInternalConfig().Draft.TTLInHours)
	})

	t.Run("reaper defaults", func(t *testing.T) {
		t.Setenv("REAPER_LEADER_LOCK_TTL_IN_SECONDS", "")
		t.Setenv("REAPER_CRON_SPEC", "")

		cfg := NewInternalConfig()
		assert.Equal(t, 300, cfg.Reaper.LeaderLockTTLInSeconds)
		assert.Equal(t, "@hourly", cfg.Reaper.CronSpec)
	})
}
