package roundup

import (
	"testing"

	"roundly/config"
	"roundly/internal/domain"
)

func TestSyncBoundsFallsBackToConfig(t *testing.T) {
	tests := []struct {
		name    string
		store   SettingStore
		wantMin int
		wantMax int
	}{
		{"no store", nil, 5, 15},
		{"keys missing", &fakeSettingStore{values: map[string]string{}}, 5, 15},
		{"garbage values", &fakeSettingStore{values: map[string]string{
			domain.SettingSyncMinTransactions: "lots",
			domain.SettingSyncMaxTransactions: "-2",
		}}, 5, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSettings(tt.store, config.SyncConfig{MinTransactions: 5, MaxTransactions: 15})
			min, max := s.SyncBounds()
			if min != tt.wantMin || max != tt.wantMax {
				t.Errorf("SyncBounds() = (%d, %d), want (%d, %d)", min, max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestSyncBoundsReadsStoredOverrides(t *testing.T) {
	store := &fakeSettingStore{values: map[string]string{
		domain.SettingSyncMinTransactions: "2",
		domain.SettingSyncMaxTransactions: "3",
	}}
	s := NewSettings(store, config.SyncConfig{MinTransactions: 5, MaxTransactions: 15})
	min, max := s.SyncBounds()
	if min != 2 || max != 3 {
		t.Fatalf("SyncBounds() = (%d, %d), want stored (2, 3)", min, max)
	}

	// Edits take effect on the next read, not at construction.
	store.values[domain.SettingSyncMaxTransactions] = "8"
	if _, max = s.SyncBounds(); max != 8 {
		t.Errorf("max after edit = %d, want 8", max)
	}
}

func TestSyncBoundsClamps(t *testing.T) {
	s := NewSettings(&fakeSettingStore{values: map[string]string{
		domain.SettingSyncMinTransactions: "10",
		domain.SettingSyncMaxTransactions: "4",
	}}, config.SyncConfig{})
	min, max := s.SyncBounds()
	if min != 10 || max != 10 {
		t.Errorf("SyncBounds() = (%d, %d), want max raised to min", min, max)
	}

	s = NewSettings(nil, config.SyncConfig{MinTransactions: 0, MaxTransactions: -3})
	min, max = s.SyncBounds()
	if min != 1 || max != 1 {
		t.Errorf("SyncBounds() = (%d, %d), want clamped (1, 1)", min, max)
	}
}

func TestDefaultRoundUp(t *testing.T) {
	tests := []struct {
		name  string
		store SettingStore
		want  float64
	}{
		{"no store", nil, 1.00},
		{"key missing", &fakeSettingStore{values: map[string]string{}}, 1.00},
		{"allowed step", &fakeSettingStore{values: map[string]string{domain.SettingDefaultRoundUp: "2.00"}}, 2.00},
		{"half dollar", &fakeSettingStore{values: map[string]string{domain.SettingDefaultRoundUp: "0.50"}}, 0.50},
		{"disallowed step", &fakeSettingStore{values: map[string]string{domain.SettingDefaultRoundUp: "3.00"}}, 1.00},
		{"garbage", &fakeSettingStore{values: map[string]string{domain.SettingDefaultRoundUp: "a lot"}}, 1.00},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSettings(tt.store, config.SyncConfig{})
			if got := s.DefaultRoundUp(); got != tt.want {
				t.Errorf("DefaultRoundUp() = %v, want %v", got, tt.want)
			}
		})
	}
}
