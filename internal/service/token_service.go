package service

import "carmeet/internal/domain"

// TokenKind discriminates the two bearer-token categories. A token of one
// kind is never accepted where the other is expected.
type TokenKind string

const (
	TokenKindActivation TokenKind = "activation"
	TokenKindAccess     TokenKind = "access"
)

type TokenClaims struct {
	UserID domain.UserID
	Email  string
	Role   string
	Kind   TokenKind
}

type TokenService interface {
	IssueActivationToken(userID domain.UserID, email string) (string, error)
	// IssueAccessToken also returns the token lifetime in seconds for
	// client consumption.
	IssueAccessToken(userID domain.UserID, email, roleSlug string) (token string, expiresIn int64, err error)
	Verify(token string, expected TokenKind) (*TokenClaims, error)
}
