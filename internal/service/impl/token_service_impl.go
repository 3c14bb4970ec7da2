package impl

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"carmeet/internal/domain"
	"carmeet/internal/observability/metrics"
	"carmeet/internal/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ====== Config ======

type TokenConfig struct {
	Issuer        string        // e.g. "carmeet-identity"
	ActivationTTL time.Duration // fixed 24h in production
	AccessTTL     time.Duration // from the ACCESS_TOKEN_TTL config string
	SigningKey    []byte        // HS256 secret; rotating it invalidates all outstanding tokens
}

const (
	DefaultActivationTTL = 24 * time.Hour
	DefaultAccessTTL     = 7 * 24 * time.Hour
)

// ParseLifetime converts a "<N><unit>" config string (unit s/m/h/d) into a
// duration. Anything unparsable falls back to the 7-day default.
func ParseLifetime(s string) time.Duration {
	if len(s) < 2 {
		return DefaultAccessTTL
	}
	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil || n <= 0 {
		return DefaultAccessTTL
	}
	switch s[len(s)-1] {
	case 's':
		return time.Duration(n) * time.Second
	case 'm':
		return time.Duration(n) * time.Minute
	case 'h':
		return time.Duration(n) * time.Hour
	case 'd':
		return time.Duration(n) * 24 * time.Hour
	default:
		return DefaultAccessTTL
	}
}

// ====== Claims ======

type tokenClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	Kind   string `json:"type"`
	jwt.RegisteredClaims
}

// ====== Service ======

type TokenServiceImpl struct {
	cfg TokenConfig
}

func NewTokenServiceHS256(cfg TokenConfig) *TokenServiceImpl {
	if cfg.ActivationTTL <= 0 {
		cfg.ActivationTTL = DefaultActivationTTL
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	return &TokenServiceImpl{cfg: cfg}
}

func (t *TokenServiceImpl) IssueActivationToken(userID domain.UserID, email string) (string, error) {
	token, err := t.sign(userID, email, "", service.TokenKindActivation, t.cfg.ActivationTTL)
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.TokensIssuedTotal.WithLabelValues(string(service.TokenKindActivation), result).Inc()
	return token, err
}

func (t *TokenServiceImpl) IssueAccessToken(userID domain.UserID, email, roleSlug string) (string, int64, error) {
	token, err := t.sign(userID, email, roleSlug, service.TokenKindAccess, t.cfg.AccessTTL)
	result := "success"
	if err != nil {
		result = "failure"
	}
	metrics.TokensIssuedTotal.WithLabelValues(string(service.TokenKindAccess), result).Inc()
	if err != nil {
		return "", 0, err
	}
	return token, int64(t.cfg.AccessTTL.Seconds()), nil
}

func (t *TokenServiceImpl) Verify(token string, expected service.TokenKind) (*service.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(tok *jwt.Token) (interface{}, error) {
		if tok.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg %q", tok.Header["alg"])
		}
		return t.cfg.SigningKey, nil
	}, jwt.WithIssuer(t.cfg.Issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Kind != string(expected) {
		return nil, domain.ErrInvalidTokenType
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	return &service.TokenClaims{
		UserID: userID,
		Email:  claims.Email,
		Role:   claims.Role,
		Kind:   expected,
	}, nil
}

func (t *TokenServiceImpl) sign(userID domain.UserID, email, role string, kind service.TokenKind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		UserID: userID.String(),
		Email:  email,
		Role:   role,
		Kind:   string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.cfg.SigningKey)
}
