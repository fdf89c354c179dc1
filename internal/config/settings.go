// Package config loads the process-wide Settings tree from the gocore
// configuration singleton and the environment, the way the teacher's
// services build their *settings.Settings before constructing anything
// that can fail.
package config

import (
	"github.com/ordishs/gocore"

	"github.com/icryptix/core/model"
)

// PolicySettings holds the consensus-adjacent limits the core enforces.
// None of these are re-read on a hot path; they are resolved once and
// injected into the components that need them.
type PolicySettings struct {
	// BlockSizeMax is the hard byte ceiling for one serialized block.
	BlockSizeMax uint64
}

// LoggingSettings controls the ulogger verbosity and formatting.
type LoggingSettings struct {
	Level string
}

// Settings is the root configuration tree for this module.
type Settings struct {
	Policy  PolicySettings
	Logging LoggingSettings
}

// NewSettings reads gocore.Config() (itself backed by environment
// variables and an optional settings.conf file) and falls back to a
// 2,000,000-byte block size ceiling (the same value as
// model.DefaultPolicy.BlockSizeMax) and the INFO log level when a key is
// absent.
func NewSettings() *Settings {
	blockSizeMax, _ := gocore.Config().GetInt("block_size_max", 2_000_000)
	logLevel, _ := gocore.Config().Get("log_level", "INFO")

	return &Settings{
		Policy: PolicySettings{
			BlockSizeMax: uint64(blockSizeMax),
		},
		Logging: LoggingSettings{
			Level: logLevel,
		},
	}
}

// ToPolicy projects the configured policy settings onto a model.Policy,
// keeping the compact-target bounds fixed at their consensus defaults while
// letting the operational byte ceiling be configured.
func (s *Settings) ToPolicy() model.Policy {
	policy := model.DefaultPolicy
	policy.BlockSizeMax = s.Policy.BlockSizeMax

	return policy
}
