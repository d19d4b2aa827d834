package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkalinin/tasklight/internal/common/clock"
	commoncrypto "github.com/mkalinin/tasklight/internal/common/crypto"
	commonerrors "github.com/mkalinin/tasklight/internal/common/errors"
	"github.com/mkalinin/tasklight/internal/common/logger"
	"github.com/mkalinin/tasklight/internal/observability/metrics"
	userdomain "github.com/mkalinin/tasklight/internal/user/domain"
	userrepo "github.com/mkalinin/tasklight/internal/user/repository"
)

type AuthService struct {
	users       userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	jwtSecret   []byte
	tokenTTL    time.Duration
	log         *logger.Logger
}

func NewAuthService(
	users userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	idGenerator commoncrypto.IDGenerator,
	clk clock.Clock,
	jwtSecret string,
	tokenTTL time.Duration,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		hasher:      hasher,
		idGenerator: idGenerator,
		clock:       clk,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
		log:         log,
	}
}

type SignupInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token string
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (userdomain.User, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "signup_attempt",
	}).Info("signup attempt")

	if err := validateSignup(input.Email, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_validation_failed",
		}).Warnf("signup validation failed: %v", err)
		return userdomain.User{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_hash_failed",
		}).Errorf("signup failed: password hash error: %v", err)
		return userdomain.User{}, commonerrors.ErrInternalError.WithCause(err)
	}

	user, err := s.users.Create(ctx, input.Email, hash)
	if err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "signup_email_exists",
			}).Warn("signup failed: email already registered")
			return userdomain.User{}, ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "signup_create_failed",
		}).Errorf("signup failed: %v", err)
		return userdomain.User{}, commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.SignupsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "signup_success",
	}).Info("signup success")

	return user, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "login_attempt",
	}).Info("login attempt")

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			metrics.LoginFailuresTotal.Inc()
			return LoginResult{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return LoginResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_invalid_password",
		}).Warn("login failed: invalid password")
		metrics.LoginFailuresTotal.Inc()
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": string(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return LoginResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.LoginsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	return LoginResult{Token: token}, nil
}

func (s *AuthService) issueToken(user userdomain.User) (string, error) {
	jti, err := s.idGenerator.NewID()
	if err != nil {
		return "", err
	}

	now := s.clock.Now()
	claims := jwt.MapClaims{
		"sub": string(user.ID),
		"eml": user.Email,
		"jti": jti,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(s.jwtSecret)
	if err != nil {
		return "", err
	}

	metrics.TokensIssuedTotal.Inc()
	return tokenString, nil
}
