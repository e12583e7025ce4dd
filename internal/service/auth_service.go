package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"roundly/config"
	"roundly/internal/auth"
	"roundly/internal/domain"
	"roundly/internal/models"
	"roundly/internal/repository"
	"roundly/internal/roundup"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
)

type AuthService struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
	settings *roundup.Settings
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository, settings *roundup.Settings) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo, settings: settings}
}

func (s *AuthService) Register(name, email, password, accountType string) (*models.User, string, string, error) {
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", "", ErrEmailExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		Name:          name,
		Email:         email,
		PasswordHash:  string(hash),
		AccountType:   accountType,
		RoundUpAmount: s.settings.DefaultRoundUp(),
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, "", "", err
	}
	// Account number depends on the generated id, so it is assigned post-insert.
	_ = s.userRepo.SetAccountNumber(u.ID, roundup.AccountNumber(u.AccountType, u.ID))
	u.AccountNumber = roundup.AccountNumber(u.AccountType, u.ID)

	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.AccountType)
	if err != nil {
		return u, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return u, access, "", err
	}
	return u, access, refresh, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, _ := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.AccountType)
	refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	return u, access, refresh, nil
}

// LoginWithGoogle creates or finds a user by Google ID and returns user +
// tokens + isNew flag. accountType is only applied when creating a new user.
func (s *AuthService) LoginWithGoogle(googleID, email, name, avatarURL, accountType string) (*models.User, string, string, bool, error) {
	u, err := s.userRepo.GetByGoogleID(googleID)
	if err == nil {
		access, _ := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.AccountType)
		refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
		return u, access, refresh, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", false, err
	}
	existing, _ := s.userRepo.GetByEmail(email)
	if existing != nil {
		// Link Google to existing account
		gid := googleID
		existing.GoogleID = &gid
		if avatarURL != "" {
			existing.AvatarURL = avatarURL
		}
		if err := s.userRepo.Update(existing); err != nil {
			return nil, "", "", false, err
		}
		access, _ := auth.GenerateAccessToken(&s.cfg.JWT, existing.ID, existing.Email, existing.AccountType)
		refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, existing.ID)
		return existing, access, refresh, false, nil
	}
	switch accountType {
	case domain.AccountTypeFamily, domain.AccountTypeBusiness:
	default:
		accountType = domain.AccountTypeIndividual
	}
	gid := googleID
	if name == "" {
		name = strings.Split(email, "@")[0]
	}
	if name == "" {
		name = fmt.Sprintf("user%d", time.Now().UnixNano()%100000)
	}
	u = &models.User{
		Name:          name,
		Email:         email,
		GoogleID:      &gid,
		AccountType:   accountType,
		AvatarURL:     avatarURL,
		RoundUpAmount: s.settings.DefaultRoundUp(),
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, "", "", false, err
	}
	_ = s.userRepo.SetAccountNumber(u.ID, roundup.AccountNumber(u.AccountType, u.ID))
	u.AccountNumber = roundup.AccountNumber(u.AccountType, u.ID)
	access, _ := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.AccountType)
	refresh, _ := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	return u, access, refresh, true, nil
}

// ChangePassword updates the user's password. Requires current password verification.
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	u, err := s.userRepo.GetByID(userID)
	if err != nil || u == nil {
		return ErrInvalidCreds
	}
	if u.PasswordHash == "" {
		return errors.New("account uses Google sign-in; set a password first")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCreds
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.userRepo.Update(u)
}

func (s *AuthService) RefreshToken(refreshToken string) (string, string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return "", "", err
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return "", "", auth.ErrInvalidToken
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.AccountType)
	if err != nil {
		return "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
