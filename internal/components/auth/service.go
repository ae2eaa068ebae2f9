package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/oops"

	"github.com/andrasnagy-data/oceanpro/internal/shared/config"
)

const (
	// InvalidEmailDelay is how long a malformed email takes to be rejected.
	InvalidEmailDelay = 400 * time.Millisecond
	// RoundTripDelay stands in for the network round trip of a real login.
	RoundTripDelay = 800 * time.Millisecond

	// MockToken is issued for every successful login.
	MockToken = "mock-jwt-token"

	acceptedPassword = "password123"
)

const (
	CodeInvalidEmailFormat = "AUTH_INVALID_EMAIL_FORMAT"
	CodeLoginAborted       = "AUTH_LOGIN_ABORTED"

	MsgInvalidEmailFormat = "Invalid email format"
	MsgInvalidCredentials = "Invalid credentials"
)

var emailShape = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type (
	// Service simulates an authentication backend. Every call is independent;
	// nothing is retained between invocations.
	Service struct {
		logger   zerolog.Logger
		endpoint string
		after    func(time.Duration) <-chan time.Time
	}
)

func NewService(cfg *config.Config, logger zerolog.Logger) *Service {
	return &Service{
		logger:   logger.With().Str("component", "auth").Logger(),
		endpoint: cfg.App.BackendURL + cfg.App.APIBase + "/auth/login",
		after:    time.After,
	}
}

// Login validates the email shape, waits for the simulated round trip and
// checks the password against the fixed demo credential.
//
// A malformed email is reported through the error return after
// InvalidEmailDelay; the public message of the error is "Invalid email
// format". Otherwise the call waits RoundTripDelay and reports the outcome in
// the Result. If ctx ends while waiting, ctx's error is returned.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Result, error) {
	logger := s.logger.With().Str("email", creds.Email).Str("endpoint", s.endpoint).Logger()

	if !emailShape.MatchString(creds.Email) {
		if err := s.wait(ctx, InvalidEmailDelay); err != nil {
			return nil, err
		}
		logger.Debug().Msg("Login rejected: invalid email format")
		return nil, oops.
			Code(CodeInvalidEmailFormat).
			Public(MsgInvalidEmailFormat).
			Errorf("invalid email format")
	}

	if err := s.wait(ctx, RoundTripDelay); err != nil {
		return nil, err
	}

	if creds.Password != acceptedPassword {
		logger.Debug().Msg("Login failed: invalid credentials")
		return &Result{Success: false, Error: MsgInvalidCredentials}, nil
	}

	logger.Debug().Msg("Login successful")
	return &Result{Success: true, Token: MockToken}, nil
}

func (s *Service) wait(ctx context.Context, d time.Duration) error {
	select {
	case <-s.after(d):
		return nil
	case <-ctx.Done():
		return oops.
			Code(CodeLoginAborted).
			Wrapf(ctx.Err(), "login aborted")
	}
}
