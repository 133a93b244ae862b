// Package identity resolves the signed-in admin from the session cookie.
//
// The session cookie carries an HS256 JWT. A request without the cookie is
// anonymous: CurrentIdentity returns an Identity with an empty ID and no
// error, and callers decide what anonymous means for them.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/travelagency/admin/internal/platform/errors"
	"github.com/travelagency/admin/internal/platform/requestctx"
)

// CookieName is the session cookie holding the identity token.
const CookieName = "ta_session"

// DefaultIssuer is used when no issuer is configured.
const DefaultIssuer = "travel-admin"

// Identity is the current user as seen by the admin UI.
type Identity struct {
	ID    string
	Name  string
	Email string
}

// Anonymous reports whether no user is signed in.
func (i Identity) Anonymous() bool {
	return strings.TrimSpace(i.ID) == ""
}

// Config defines how session tokens are signed and verified.
type Config struct {
	Secret []byte
	Issuer string
	Now    func() time.Time
}

// TokenResolver verifies session tokens.
type TokenResolver struct {
	secret []byte
	issuer string
	now    func() time.Time
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// NewTokenResolver builds a resolver. An empty secret is rejected.
func NewTokenResolver(cfg Config) (*TokenResolver, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("session secret is required")
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		issuer = DefaultIssuer
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &TokenResolver{secret: cfg.Secret, issuer: issuer, now: now}, nil
}

// Issue mints a session token for id valid for ttl.
func (r *TokenResolver) Issue(id Identity, ttl time.Duration) (string, error) {
	if id.Anonymous() {
		return "", errors.New("identity id is required")
	}
	if ttl <= 0 {
		return "", errors.New("token ttl must be positive")
	}
	now := r.now().UTC()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    r.issuer,
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name:  id.Name,
		Email: id.Email,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Resolve verifies token. An empty token yields the anonymous identity.
func (r *TokenResolver) Resolve(token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, nil
	}
	var parsed sessionClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return r.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(r.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(r.now),
	)
	if err != nil {
		return Identity{}, mapJWTError(err)
	}
	if strings.TrimSpace(parsed.Subject) == "" {
		return Identity{}, apperrors.New(apperrors.CodeUnauthenticated, "session token subject is required")
	}
	return Identity{ID: parsed.Subject, Name: parsed.Name, Email: parsed.Email}, nil
}

// CurrentIdentity resolves the session token stored in ctx.
func (r *TokenResolver) CurrentIdentity(ctx context.Context) (Identity, error) {
	return r.Resolve(requestctx.SessionTokenFromContext(ctx))
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.Wrap(apperrors.CodeUnauthenticated, "session token is expired", err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return apperrors.WithMetadata(apperrors.CodeUnauthenticated, "session token issuer mismatch", map[string]string{"Field": "issuer"})
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return apperrors.New(apperrors.CodeUnauthenticated, "session token signature is invalid")
	default:
		return apperrors.Wrap(apperrors.CodeUnauthenticated, "session token is invalid", err)
	}
}

// Middleware copies the session cookie into the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
			r = r.WithContext(requestctx.WithSessionToken(r.Context(), cookie.Value))
		}
		next.ServeHTTP(w, r)
	})
}

// SessionCookie builds the cookie carrying token.
func SessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
