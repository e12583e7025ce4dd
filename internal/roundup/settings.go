package roundup

import (
	"strconv"

	"roundly/config"
	"roundly/internal/domain"
)

// SettingStore reads admin-tunable system settings. The gorm setting
// repository satisfies it.
type SettingStore interface {
	Get(key string) (string, error)
}

// Settings resolves pipeline knobs from the system settings table on every
// read, falling back to startup config when a key is missing or malformed.
// Admin edits take effect on the next sync or signup without a restart.
type Settings struct {
	store SettingStore
	sync  config.SyncConfig
}

func NewSettings(store SettingStore, sync config.SyncConfig) *Settings {
	return &Settings{store: store, sync: sync}
}

// SyncBounds returns the min and max synthetic transactions per sync run,
// clamped to a sane range.
func (s *Settings) SyncBounds() (int, int) {
	min := s.intSetting(domain.SettingSyncMinTransactions, s.sync.MinTransactions)
	max := s.intSetting(domain.SettingSyncMaxTransactions, s.sync.MaxTransactions)
	if min <= 0 {
		min = 1
	}
	if max < min {
		max = min
	}
	return min, max
}

// DefaultRoundUp returns the round-up step assigned to new accounts. Only
// the allowed step amounts are honored; anything else falls back to $1.00.
func (s *Settings) DefaultRoundUp() float64 {
	if s.store != nil {
		if v, err := s.store.Get(domain.SettingDefaultRoundUp); err == nil {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				for _, a := range domain.RoundUpAmounts {
					if f == a {
						return f
					}
				}
			}
		}
	}
	return 1.00
}

func (s *Settings) intSetting(key string, fallback int) int {
	if s.store == nil {
		return fallback
	}
	v, err := s.store.Get(key)
	if err != nil {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
