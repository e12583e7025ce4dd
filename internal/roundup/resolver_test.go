package roundup

import (
	"errors"
	"testing"

	"roundly/config"
	"roundly/internal/domain"
	"roundly/internal/models"
)

func TestAccountNumberFormat(t *testing.T) {
	tests := []struct {
		accountType string
		id          uint
		want        string
	}{
		{domain.AccountTypeFamily, 42, "F000000042"},
		{domain.AccountTypeBusiness, 1, "B000000001"},
		{domain.AccountTypeAdmin, 7, "A000000007"},
		{domain.AccountTypeIndividual, 123456789, "I123456789"},
		{"", 5, "I000000005"},
	}
	for _, tt := range tests {
		if got := AccountNumber(tt.accountType, tt.id); got != tt.want {
			t.Errorf("AccountNumber(%q, %d) = %q, want %q", tt.accountType, tt.id, got, tt.want)
		}
	}
}

func TestEnsureAccountNumberIsIdempotent(t *testing.T) {
	users := &fakeUserStore{}
	r := NewResolver(users, config.DemoConfig{}, NewSettings(nil, config.SyncConfig{}), testLogger())

	u := &models.User{Name: "Ada", AccountType: domain.AccountTypeIndividual}
	if err := users.Create(u); err != nil {
		t.Fatal(err)
	}
	if err := r.EnsureAccountNumber(u); err != nil {
		t.Fatalf("EnsureAccountNumber: %v", err)
	}
	first := u.AccountNumber
	if first != "I000000001" {
		t.Fatalf("account number = %q, want I000000001", first)
	}
	if err := r.EnsureAccountNumber(u); err != nil {
		t.Fatalf("second EnsureAccountNumber: %v", err)
	}
	if u.AccountNumber != first {
		t.Errorf("account number changed on second call: %q", u.AccountNumber)
	}
}

func TestResolveAuthenticatedProfile(t *testing.T) {
	users := &fakeUserStore{}
	u := &models.User{Name: "Bo", AccountType: domain.AccountTypeBusiness}
	users.Create(u)
	r := NewResolver(users, config.DemoConfig{}, NewSettings(nil, config.SyncConfig{}), testLogger())

	got, err := r.Resolve(u.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("resolved user %d, want %d", got.ID, u.ID)
	}
	if got.AccountNumber != "B000000001" {
		t.Errorf("account number = %q", got.AccountNumber)
	}
}

func TestResolveConfiguredDefaultUser(t *testing.T) {
	users := &fakeUserStore{}
	users.Create(&models.User{Name: "First"})
	fallback := &models.User{Name: "Fallback", AccountType: domain.AccountTypeIndividual}
	users.Create(fallback)

	r := NewResolver(users, config.DemoConfig{Enabled: true, DefaultUserID: fallback.ID}, NewSettings(nil, config.SyncConfig{}), testLogger())
	got, err := r.Resolve(0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ID != fallback.ID {
		t.Errorf("resolved user %d, want configured default %d", got.ID, fallback.ID)
	}
}

func TestResolveDemoDisabledRejectsAnonymous(t *testing.T) {
	r := NewResolver(&fakeUserStore{}, config.DemoConfig{Enabled: false}, NewSettings(nil, config.SyncConfig{}), testLogger())
	_, err := r.Resolve(0)
	if !errors.Is(err, ErrNoAccount) {
		t.Fatalf("err = %v, want ErrNoAccount", err)
	}
}

func TestResolveDemoCreatesUserWhenTableEmpty(t *testing.T) {
	users := &fakeUserStore{}
	r := NewResolver(users, config.DemoConfig{Enabled: true}, NewSettings(nil, config.SyncConfig{}), testLogger())

	got, err := r.Resolve(0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !got.IsDemo {
		t.Errorf("created user not flagged as demo: %+v", got)
	}
	if got.AccountType != domain.AccountTypeIndividual {
		t.Errorf("account type = %q", got.AccountType)
	}
	if got.AccountNumber == "" {
		t.Error("demo user has no account number")
	}

	// A second anonymous resolve reuses the existing row.
	again, err := r.Resolve(0)
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if again.ID != got.ID {
		t.Errorf("second resolve created another user: %d vs %d", again.ID, got.ID)
	}
	if len(users.users) != 1 {
		t.Errorf("user table has %d rows, want 1", len(users.users))
	}
}

func TestResolveDemoUserGetsConfiguredRoundUp(t *testing.T) {
	store := &fakeSettingStore{values: map[string]string{
		domain.SettingDefaultRoundUp: "2.00",
	}}
	r := NewResolver(&fakeUserStore{}, config.DemoConfig{Enabled: true}, NewSettings(store, config.SyncConfig{}), testLogger())

	got, err := r.Resolve(0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.RoundUpAmount != 2.00 {
		t.Errorf("round_up_amount = %v, want stored default 2.00", got.RoundUpAmount)
	}
}
