package auth

import (
	"regexp"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/quality-service/internal/domain"
)

var legacyRolePrefix = regexp.MustCompile(`^ROLE_`)

// NormalizeRole strips the legacy ROLE_ prefix carried by tokens issued by
// the previous system.
func NormalizeRole(raw string) domain.Role {
	return domain.Role(legacyRolePrefix.ReplaceAllString(strings.TrimSpace(raw), ""))
}

// Session is an explicit, read-only view over a bearer token's claims,
// decoded without signature verification. A malformed token degrades to
// "unauthenticated": every accessor returns its zero value rather than an
// error. Signature verification belongs to TokenManager.Parse on the server
// side; Session exists for contexts that only need the embedded identity,
// such as the outbound legacy client.
type Session struct {
	token  string
	claims *Claims
}

// NewSession decodes the raw token. An empty or undecodable token yields a
// logged-out session.
func NewSession(token string) Session {
	s := Session{token: token}
	if token == "" {
		return s
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil {
		s.claims = claims
	}
	return s
}

// Token returns the raw bearer token.
func (s Session) Token() string { return s.token }

// IsLoggedIn reports whether a token is held at all. Expiry is not checked
// here; the server rejects stale tokens on use.
func (s Session) IsLoggedIn() bool { return s.token != "" }

// Role returns the normalized role claim, or the empty role when the token is
// absent or undecodable.
func (s Session) Role() domain.Role {
	if s.claims == nil {
		return ""
	}
	return NormalizeRole(s.claims.Role)
}

// UserID returns the user-id claim, or "" under the same conditions as Role.
func (s Session) UserID() string {
	if s.claims == nil {
		return ""
	}
	return s.claims.UserID
}

// Email returns the subject claim, or "" under the same conditions as Role.
func (s Session) Email() string {
	if s.claims == nil {
		return ""
	}
	return s.claims.Subject
}
