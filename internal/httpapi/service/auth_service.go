package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"titlehub/internal/httpapi/apperr"
	"titlehub/internal/httpapi/dto"
	"titlehub/internal/httpapi/models"
	"titlehub/internal/httpapi/repository"
	"titlehub/internal/mail"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidToken = errors.New("invalid token")

// invalidCode deliberately does not say which input was wrong.
const invalidCode = "invalid or expired confirmation code"

type AuthService interface {
	// Signup validates the identity, creates-or-fetches the user, and
	// dispatches a fresh confirmation code to their email address.
	Signup(ctx context.Context, username, email string) (*models.User, error)
	// IssueToken exchanges a confirmation code for a bearer token.
	IssueToken(ctx context.Context, username, code string) (string, error)
	// ValidateToken parses a bearer token and returns the user id it names.
	ValidateToken(tokenString string) (string, error)
}

type authService struct {
	userRepo  repository.UserRepository
	codeStore ConfirmationCodeStore
	mailer    mail.Mailer
	logger    *slog.Logger

	jwtSecret    string
	tokenTTL     time.Duration
	codeTTL      time.Duration
	failSilently bool
}

type AuthConfig struct {
	JWTSecret        string
	TokenTTL         time.Duration
	CodeTTL          time.Duration
	MailFailSilently bool
}

func NewAuthService(
	userRepo repository.UserRepository,
	codeStore ConfirmationCodeStore,
	mailer mail.Mailer,
	logger *slog.Logger,
	cfg AuthConfig,
) AuthService {
	return &authService{
		userRepo:     userRepo,
		codeStore:    codeStore,
		mailer:       mailer,
		logger:       logger,
		jwtSecret:    cfg.JWTSecret,
		tokenTTL:     cfg.TokenTTL,
		codeTTL:      cfg.CodeTTL,
		failSilently: cfg.MailFailSilently,
	}
}

func (s *authService) Signup(ctx context.Context, username, email string) (*models.User, error) {
	if username == "me" {
		return nil, apperr.Validation("username", "username \"me\" is reserved")
	}
	if !dto.ValidUsername(username) {
		return nil, apperr.Validation("username", "must contain only letters, digits and @/./+/-/_ characters")
	}

	user, err := s.getOrCreateUser(ctx, username, email)
	if err != nil {
		return nil, err
	}

	code := uuid.New().String()
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash confirmation code: %w", err)
	}

	record := CodeRecord{
		CodeHash:    string(hash),
		Fingerprint: user.StateFingerprint(),
	}
	if err := s.codeStore.Save(ctx, user.Username, record, s.codeTTL); err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Hello %s,\n\nYour confirmation code: %s\n", user.Username, code)
	if err := s.mailer.Send(user.Email, "Registration confirmation", body); err != nil {
		if !s.failSilently {
			return nil, fmt.Errorf("dispatch confirmation code: %w", err)
		}
		s.logger.Error("confirmation mail failed", slog.String("username", user.Username), slog.Any("error", err))
	}

	return user, nil
}

// getOrCreateUser implements signup idempotency: an exact (username, email)
// match reissues a code for the existing user, a half-match is a field error.
func (s *authService) getOrCreateUser(ctx context.Context, username, email string) (*models.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		if existing.Email != email {
			return nil, apperr.Validation("username", "username already in use")
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Validation("email", "email already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if apperr.IsUniqueViolation(err) {
			// lost the race to a concurrent signup
			return nil, apperr.ErrConflict
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) IssueToken(ctx context.Context, username, code string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.ErrNotFound
		}
		return "", err
	}

	record, err := s.codeStore.Peek(ctx, username)
	if err != nil {
		if errors.Is(err, ErrCodeNotFound) {
			return "", apperr.Validation("confirmation_code", invalidCode)
		}
		return "", err
	}

	// Codes are bound to the user state they were issued against; any
	// mutation since then invalidates them for good.
	if record.Fingerprint != user.StateFingerprint() {
		if err := s.codeStore.Delete(ctx, username); err != nil {
			return "", err
		}
		return "", apperr.Validation("confirmation_code", invalidCode)
	}

	// A wrong guess keeps the record: the user may simply have mistyped and
	// must be able to retry with the mailed code until it expires.
	if bcrypt.CompareHashAndPassword([]byte(record.CodeHash), []byte(code)) != nil {
		return "", apperr.Validation("confirmation_code", invalidCode)
	}

	// consume before minting so the exchange stays single-use
	if err := s.codeStore.Delete(ctx, username); err != nil {
		return "", err
	}
	return s.mintToken(user)
}

// mintToken signs a bearer token carrying identity only. Role is deliberately
// absent: it is re-read from storage on every request, so stale-privilege
// tokens cannot exist.
func (s *authService) mintToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
