package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	coreconfig "github.com/m3rciful/filebot/core/config"
)

func validConfig() *Config {
	return &Config{
		Core: &coreconfig.Config{},
		Admins: AdminConfig{IDs: []int64{100, 200}},
		Delivery: DeliveryConfig{PaceMS: 300},
		Membership: MembershipConfig{Attempts: 3, RetryDelayMS: 2000},
	}
}

func TestValidateAccepts(t *testing.T) {
	assert.NoError(t, validate(validConfig()))
}

func TestValidateRequiresAdmins(t *testing.T) {
	cfg := validConfig()
	cfg.Admins.IDs = nil
	assert.Error(t, validate(cfg))
}

func TestValidateRejectsBadAdminID(t *testing.T) {
	cfg := validConfig()
	cfg.Admins.IDs = []int64{100, -5}
	assert.Error(t, validate(cfg))
}

func TestValidateRejectsZeroAttempts(t *testing.T) {
	cfg := validConfig()
	cfg.Membership.Attempts = 0
	assert.Error(t, validate(cfg))
}

func TestValidateRejectsNegativePace(t *testing.T) {
	cfg := validConfig()
	cfg.Delivery.PaceMS = -1
	assert.Error(t, validate(cfg))
}

func TestCoreConfigNilSafe(t *testing.T) {
	var cfg *Config
	assert.Nil(t, cfg.CoreConfig())
	assert.NotNil(t, validConfig().CoreConfig())
}
