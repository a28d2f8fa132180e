package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// TokenService выпускает и проверяет подписанные HS256 access-токены.
// Subject хранится и возвращается как непрозрачная строка.
type TokenService struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

// TokenOption настраивает TokenService.
type TokenOption func(*TokenService)

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService создаёт сервис токенов с секретом и TTL по умолчанию.
func NewTokenService(secret string, defaultTTL time.Duration, opts ...TokenOption) *TokenService {
	s := &TokenService{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// DefaultTTL возвращает настроенное время жизни токена.
func (s *TokenService) DefaultTTL() time.Duration { return s.defaultTTL }

// IssueDefault выпускает токен с TTL из конфигурации.
func (s *TokenService) IssueDefault(subject string) (string, error) {
	return s.Issue(subject, s.defaultTTL)
}

// Issue выпускает токен {sub, exp = now + ttl}. ttl <= 0 даёт уже истёкший токен.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("empty token subject")
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify проверяет алгоритм, подпись и срок действия и возвращает subject.
func (s *TokenService) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
