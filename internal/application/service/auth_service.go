package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/joshuadev/bigasan-pos/internal/domain/entity"
	"github.com/joshuadev/bigasan-pos/internal/infrastructure/localstore"
	"github.com/joshuadev/bigasan-pos/internal/store"
	"github.com/joshuadev/bigasan-pos/pkg/apperror"
	"github.com/joshuadev/bigasan-pos/pkg/oauth"
	"github.com/joshuadev/bigasan-pos/pkg/utils"
)

// Default first-run credentials; the owner is expected to change them.
const (
	defaultOwnerUsername = "owner"
	defaultOwnerPassword = "1234"
)

// AuthService handles the owner's session and credentials. Credentials live
// in the local file store only and never travel through cloud sync.
type AuthService struct {
	store      *store.Store
	local      *localstore.Store
	jwtManager *utils.JWTManager
	oauthSvc   *oauth.GoogleOAuthService
	log        *logrus.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(st *store.Store, local *localstore.Store, jwtManager *utils.JWTManager, oauthSvc *oauth.GoogleOAuthService, log *logrus.Logger) *AuthService {
	return &AuthService{
		store:      st,
		local:      local,
		jwtManager: jwtManager,
		oauthSvc:   oauthSvc,
		log:        log,
	}
}

// LoadOwner hydrates the owner record from local storage, falling back to
// the first-run defaults when nothing has been saved yet.
func (s *AuthService) LoadOwner() error {
	owner, ok, err := s.local.LoadOwner()
	if err != nil {
		return err
	}
	if !ok {
		hash, err := bcrypt.GenerateFromPassword([]byte(defaultOwnerPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		owner = entity.Owner{Username: defaultOwnerUsername, PasswordHash: string(hash)}
		if err := s.local.SaveOwner(owner); err != nil {
			return err
		}
		s.log.Warn("no owner credentials found, created defaults; change them immediately")
	}
	s.store.SetOwner(owner)
	return nil
}

// TokenPair is an issued session
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Login verifies the owner's password and issues a session
func (s *AuthService) Login(username, password string) (*TokenPair, error) {
	owner := s.store.Owner()
	if username != owner.Username {
		return nil, apperror.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}
	return s.issueTokens(owner.Username)
}

// Refresh exchanges a valid refresh token for a new session
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	username, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.ErrInvalidToken
	}
	if username != s.store.Owner().Username {
		return nil, apperror.ErrInvalidToken
	}
	return s.issueTokens(username)
}

func (s *AuthService) issueTokens(username string) (*TokenPair, error) {
	access, err := s.jwtManager.GenerateAccessToken(username)
	if err != nil {
		return nil, err
	}
	refresh, err := s.jwtManager.GenerateRefreshToken(username)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// ChangeCredentialsInput updates the owner's username and/or password
type ChangeCredentialsInput struct {
	CurrentPassword string
	NewUsername     string
	NewPassword     string
}

// ChangeCredentials replaces the owner's credentials after re-verifying the
// current password, and persists them locally.
func (s *AuthService) ChangeCredentials(input *ChangeCredentialsInput) error {
	owner := s.store.Owner()
	if err := bcrypt.CompareHashAndPassword([]byte(owner.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return apperror.ErrInvalidCredentials
	}

	if username := strings.TrimSpace(input.NewUsername); username != "" {
		owner.Username = username
	}
	if input.NewPassword != "" {
		if len(input.NewPassword) < 4 {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: "new_password", Message: "Password must be at least 4 characters"},
			})
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		owner.PasswordHash = string(hash)
	}

	if err := s.local.SaveOwner(owner); err != nil {
		return err
	}
	s.store.SetOwner(owner)
	return nil
}

// GoogleAuthURL returns the consent URL for an owner OAuth login
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if !s.oauthSvc.IsConfigured() {
		return "", apperror.NewBadRequestError("Google OAuth is not configured")
	}
	return s.oauthSvc.GetAuthURL(state), nil
}

// GoogleLogin finishes the OAuth flow: the Google account must be on the
// owner allow-list to receive a session.
func (s *AuthService) GoogleLogin(ctx context.Context, code string) (*TokenPair, error) {
	if !s.oauthSvc.IsConfigured() {
		return nil, apperror.NewBadRequestError("Google OAuth is not configured")
	}
	token, err := s.oauthSvc.ExchangeCode(ctx, code)
	if err != nil {
		return nil, apperror.ErrInvalidCredentials
	}
	info, err := s.oauthSvc.GetUserInfo(ctx, token)
	if err != nil {
		return nil, apperror.ErrInvalidCredentials
	}
	if !info.VerifiedEmail || !s.oauthSvc.IsOwnerEmail(info.Email) {
		s.log.WithField("email", info.Email).Warn("rejected google login for non-owner account")
		return nil, apperror.ErrForbidden
	}
	return s.issueTokens(s.store.Owner().Username)
}
