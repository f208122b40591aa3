// Package services contains server-side business logic. UserService handles
// registration, credential checks, profile lookup and game API tokens;
// HistoryService records and lists game sessions.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pitlane/internal/common"
	"github.com/dmitrijs2005/pitlane/internal/dbx"
	"github.com/dmitrijs2005/pitlane/internal/server/auth"
	"github.com/dmitrijs2005/pitlane/internal/server/config"
	"github.com/dmitrijs2005/pitlane/internal/server/models"
	"github.com/dmitrijs2005/pitlane/internal/server/repositories/repomanager"
)

// AccessToken is a signed game API token and its lifetime.
type AccessToken struct {
	Token     string
	ExpiresIn time.Duration
}

type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register validates the form and creates the account. Validation problems,
// including an already registered email, are returned as *ValidationError
// and nothing is written.
func (s *UserService) Register(ctx context.Context, r Registration) (*models.User, error) {
	r = r.Normalize()
	if err := r.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(r.Password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByEmail(ctx, r.Email)
		switch {
		case err == nil:
			return emailTaken()
		case !errors.Is(err, common.ErrorNotFound):
			return fmt.Errorf("error searching user: %w", err)
		}

		user, err = repo.Create(ctx, &models.User{Email: r.Email, PasswordHash: hash, Name: r.Name})
		if errors.Is(err, common.ErrorAlreadyExists) {
			return emailTaken()
		}
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func emailTaken() error {
	return &ValidationError{Fields: map[string]string{FieldEmail: "E-mail já cadastrado."}}
}

// Login verifies the credentials and returns the account. Unknown emails and
// wrong passwords both yield common.ErrorUnauthorized after a bcrypt
// comparison of equal cost.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		auth.BurnPasswordCheck(password)
		return nil, common.ErrorUnauthorized
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.BurnPasswordCheck(password)
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}

// GetUser resolves a session identifier to its account.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, common.ErrorNotFound
	}
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// IssueAccessToken checks the credentials like Login and mints a game API
// token for the account.
func (s *UserService) IssueAccessToken(ctx context.Context, email, password string) (*AccessToken, error) {
	user, err := s.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &AccessToken{Token: token, ExpiresIn: s.accessTokenValidityDuration}, nil
}

// Authenticate returns the user id carried by a game API token.
func (s *UserService) Authenticate(token string) (int64, error) {
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}
