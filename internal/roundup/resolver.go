package roundup

import (
	"errors"
	"fmt"

	"roundly/config"
	"roundly/internal/domain"
	"roundly/internal/models"

	"github.com/sirupsen/logrus"
)

var ErrNoAccount = errors.New("no account to operate on")

// Resolver turns an optional authenticated profile id into a concrete user
// to run the pipeline against. The unauthenticated fallback is explicit
// configuration: a default tenant id, or (demo mode) any existing user,
// creating one if the table is empty.
type Resolver struct {
	users    UserStore
	demo     config.DemoConfig
	settings *Settings
	log      *logrus.Logger
}

func NewResolver(users UserStore, demo config.DemoConfig, settings *Settings, log *logrus.Logger) *Resolver {
	return &Resolver{users: users, demo: demo, settings: settings, log: log}
}

// Resolve returns the user the pipeline operates on. profileID zero means no
// authenticated session. Callers must not run the pipeline when an error is
// returned.
func (r *Resolver) Resolve(profileID uint) (*models.User, error) {
	if profileID != 0 {
		u, err := r.users.GetByID(profileID)
		if err != nil {
			return nil, err
		}
		return u, r.EnsureAccountNumber(u)
	}
	if r.demo.DefaultUserID != 0 {
		u, err := r.users.GetByID(r.demo.DefaultUserID)
		if err != nil {
			return nil, err
		}
		return u, r.EnsureAccountNumber(u)
	}
	if !r.demo.Enabled {
		return nil, ErrNoAccount
	}
	u, err := r.users.First()
	if err != nil {
		return nil, err
	}
	if u == nil {
		u = &models.User{
			Name:          "Demo Account",
			Email:         "demo@roundly.local",
			AccountType:   domain.AccountTypeIndividual,
			RoundUpAmount: r.settings.DefaultRoundUp(),
			IsDemo:        true,
		}
		if err := r.users.Create(u); err != nil {
			return nil, fmt.Errorf("create demo user: %w", err)
		}
		r.log.WithFields(logrus.Fields{"user_id": u.ID}).Info("created demo user")
	}
	return u, r.EnsureAccountNumber(u)
}

// EnsureAccountNumber generates and persists the account number exactly once.
// Calling it again for a user that already has one is a no-op.
func (r *Resolver) EnsureAccountNumber(u *models.User) error {
	if u.AccountNumber != "" {
		return nil
	}
	n := AccountNumber(u.AccountType, u.ID)
	if err := r.users.SetAccountNumber(u.ID, n); err != nil {
		return err
	}
	u.AccountNumber = n
	return nil
}

// AccountNumber builds the human-readable account identifier: one-letter
// tenant prefix followed by the numeric id left-padded to 9 digits.
func AccountNumber(accountType string, id uint) string {
	return fmt.Sprintf("%s%09d", domain.AccountNumberPrefix(accountType), id)
}
