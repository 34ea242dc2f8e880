// Package account is the portal's thin login surface. Anything beyond
// email/password with a role claim (SSO, OTP, device tracking) belongs
// to the external identity provider, not here.
package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	accountRepo "clinicport/database/repository/account"
	"clinicport/models"
	"clinicport/utils"
)

const tokenLifetime = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

// AccountService manages portal logins.
type AccountService interface {
	Register(ctx context.Context, email, name, password, role string) (*models.Account, error)
	Login(ctx context.Context, email, password string) (token string, acct *models.Account, err error)
	Logout(ctx context.Context, token string) error
}

// DefaultAccountService implements AccountService.
type DefaultAccountService struct {
	Repo accountRepo.AccountRepository
}

// Register creates an account with a bcrypt-hashed password. Only the
// patient role is open to self-registration; doctor accounts are
// provisioned out of band.
func (svc *DefaultAccountService) Register(ctx context.Context, email, name, password, role string) (*models.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 {
		return nil, ErrInvalidCredentials
	}
	if role != models.RolePatient && role != models.RoleDoctor {
		role = models.RolePatient
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	acct := &models.Account{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := svc.Repo.Insert(ctx, acct); err != nil {
		if errors.Is(err, accountRepo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return acct, nil
}

// Login verifies credentials, issues a JWT, and records the session in
// the auth cache so it can be revoked before expiry.
func (svc *DefaultAccountService) Login(ctx context.Context, email, password string) (string, *models.Account, error) {
	acct, err := svc.Repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, accountRepo.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(acct.ID, acct.Role, tokenLifetime)
	if err != nil {
		return "", nil, err
	}
	session := utils.AuthSession{
		AccountID: acct.ID,
		Role:      acct.Role,
		IssuedAt:  time.Now(),
	}
	if err := utils.SaveAuthSession(utils.GetAuthCacheClient(), utils.HashToken(token), session, tokenLifetime); err != nil {
		return "", nil, err
	}
	return token, acct, nil
}

// Logout revokes the session behind a token.
func (svc *DefaultAccountService) Logout(ctx context.Context, token string) error {
	return utils.DeleteAuthSession(utils.GetAuthCacheClient(), utils.HashToken(token))
}
