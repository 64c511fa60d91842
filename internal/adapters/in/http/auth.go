package http

import (
	"fmt"
	"net/http"
	"strings"

	"parcelhub/internal/core/domain/model/identity"
	"parcelhub/internal/core/domain/model/kernel"
	"parcelhub/internal/core/domain/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

// Claims is the payload of a parcelhub access token. The subject is the user id; the
// affiliation ids are present as far as the role has them.
type Claims struct {
	Role      string `json:"role"`
	Superuser bool   `json:"superuser,omitempty"`
	CompanyID string `json:"company_id,omitempty"`
	BranchID  string `json:"branch_id,omitempty"`
	AgentID   string `json:"agent_id,omitempty"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens and resolves them into principals.
type Authenticator struct {
	secret []byte
}

func NewAuthenticator(secret string) Authenticator {
	return Authenticator{secret: []byte(secret)}
}

// Sign issues a token for claims.
func (a Authenticator) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Principal verifies token and builds the principal it describes. An unrecognised role
// still authenticates, as a principal that is authorized for nothing.
func (a Authenticator) Principal(token string) (identity.Principal, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return identity.Principal{}, err
	}

	userID, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return identity.Principal{}, fmt.Errorf("subject: %w", err)
	}

	role, err := identity.ParseRole(claims.Role)
	if err != nil {
		role = identity.UnknownRole
	}

	var affiliation identity.Affiliation
	refs := []struct {
		name string
		raw  string
		dst  **kernel.UUID
	}{
		{"company_id", claims.CompanyID, &affiliation.CompanyID},
		{"branch_id", claims.BranchID, &affiliation.BranchID},
		{"agent_id", claims.AgentID, &affiliation.AgentID},
	}
	for _, ref := range refs {
		if ref.raw == "" {
			continue
		}
		id, parseErr := kernel.UUIDFromString(ref.raw)
		if parseErr != nil {
			return identity.Principal{}, fmt.Errorf("%s: %w", ref.name, parseErr)
		}
		*ref.dst = &id
	}

	return identity.NewPrincipal(userID, role, claims.Superuser, affiliation)
}

// Middleware rejects requests without a valid bearer token and stores the principal in
// the echo context.
func (a Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			principal, err := a.Principal(strings.TrimSpace(token))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}

			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// AgentOnly answers Forbidden to principals without the agent role. It runs ahead of
// request validation on routes only agents may call.
func AgentOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := services.RequireAgent(principalFrom(c)); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// principalFrom returns the principal stored by Middleware, or the anonymous principal.
func principalFrom(c echo.Context) identity.Principal {
	if p, ok := c.Get(principalKey).(identity.Principal); ok {
		return p
	}
	return identity.Anonymous()
}
