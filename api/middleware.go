package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shaj13/go-guardian/auth"
	"github.com/shaj13/go-guardian/auth/strategies/basic"
	"github.com/shaj13/go-guardian/auth/strategies/bearer"
	"github.com/shaj13/go-guardian/store"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/lifeline-api/databases"
	"github.com/linesmerrill/lifeline-api/policy"
)

// MiddlewareDB authenticates requests against the profiles collection
type MiddlewareDB struct {
	DB     databases.ProfileDatabase
	Secret []byte
	TTL    time.Duration

	authenticator auth.Authenticator
	// revoked holds the jti of every logged out token until it expires
	revoked store.Cache
}

// ErrTokenRevoked is returned for a token that was logged out
var ErrTokenRevoked = errors.New("token revoked")

// SetupGoGuardian sets up the go-guardian strategies: basic auth for token
// issuance and a cached bearer strategy that verifies access tokens.
func (m *MiddlewareDB) SetupGoGuardian() {
	ttl := m.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	m.authenticator = auth.New()
	basicCache := store.NewFIFO(context.Background(), 5*time.Minute)
	tokenCache := store.NewFIFO(context.Background(), ttl)
	m.revoked = store.NewFIFO(context.Background(), ttl)
	basicStrategy := basic.New(m.ValidateUser, basicCache)
	tokenStrategy := bearer.New(m.VerifyToken, tokenCache)

	m.authenticator.EnableStrategy(basic.StrategyKey, basicStrategy)
	m.authenticator.EnableStrategy(bearer.CachedStrategyKey, tokenStrategy)
}

// Middleware authenticates the request and stores the principal on its
// context. Browsers cannot set headers on a websocket handshake, so the
// token may also arrive as the access_token query parameter.
func (m *MiddlewareDB) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") == "" {
			if token := r.URL.Query().Get("access_token"); token != "" {
				r.Header.Set("Authorization", "Bearer "+token)
			}
		}
		user, err := m.authenticator.Authenticate(r)
		if err != nil {
			zap.S().Errorw("unauthorized",
				"url", r.URL.Path)
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "unauthorized"}`))
			return
		}
		p := principalOf(user)
		zap.S().Debugf("User %s Authenticated as %s\n", user.UserName(), p.Role)
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

// ValidateUser checks an email and password against the stored bcrypt hash
func (m *MiddlewareDB) ValidateUser(ctx context.Context, r *http.Request, email, password string) (auth.Info, error) {
	profile, err := m.DB.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, databases.ErrNotFound) {
			return nil, fmt.Errorf("no matching email found")
		}
		return nil, fmt.Errorf("failed to get user by email")
	}
	if err = bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	role := policy.ParseRole(profile.Role)
	return auth.NewDefaultUser(profile.Email, profile.ID, []string{string(role)}, nil), nil
}

// VerifyToken resolves a bearer token that is not cached yet
func (m *MiddlewareDB) VerifyToken(ctx context.Context, r *http.Request, token string) (auth.Info, error) {
	claims, err := ParseToken(m.Secret, token)
	if err != nil {
		return nil, err
	}
	if _, ok, _ := m.revoked.Load(claims.ID, r); ok {
		return nil, ErrTokenRevoked
	}
	p := claims.Principal()
	return auth.NewDefaultUser(p.Email, p.ID, []string{string(p.Role)}, nil), nil
}

func principalOf(info auth.Info) policy.Principal {
	role := ""
	if groups := info.Groups(); len(groups) > 0 {
		role = groups[0]
	}
	return policy.NewPrincipal(info.ID(), info.UserName(), role)
}

type tokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        struct {
		ID    string      `json:"id"`
		Email string      `json:"email"`
		Role  policy.Role `json:"role"`
	} `json:"user"`
}

// CreateToken returns a signed access token for the basic-auth principal
func (m *MiddlewareDB) CreateToken(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	p, ok := PrincipalFrom(r.Context())
	if _, _, basicAuth := r.BasicAuth(); !ok || !basicAuth {
		http.Error(w, "basic auth failed", http.StatusUnauthorized)
		return
	}

	token, expires, err := IssueToken(m.Secret, p, m.TTL)
	if err != nil {
		zap.S().With(err).Error("failed to sign token")
		http.Error(w, "failed to create token", http.StatusInternalServerError)
		return
	}

	info := auth.NewDefaultUser(p.Email, p.ID, []string{string(p.Role)}, nil)
	tokenStrategy := m.authenticator.Strategy(bearer.CachedStrategyKey)
	if err = auth.Append(tokenStrategy, token, info, r); err != nil {
		zap.S().With(err).Warn("failed to cache token")
	}

	resp := tokenResponse{AccessToken: token, TokenType: "bearer", ExpiresAt: expires}
	resp.User.ID = p.ID
	resp.User.Email = p.Email
	resp.User.Role = p.Role

	responseBody, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "failed to marshal response", http.StatusInternalServerError)
		return
	}
	w.Write(responseBody)
}

// RevokeToken revokes the bearer token of the request. The token is
// dropped from the bearer cache and its jti is kept until expiry so the
// token cannot be verified again.
func (m *MiddlewareDB) RevokeToken(w http.ResponseWriter, r *http.Request) {
	reqToken := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if reqToken == "" || reqToken == r.Header.Get("Authorization") {
		http.Error(w, "bearer token required", http.StatusBadRequest)
		return
	}

	if claims, err := ParseToken(m.Secret, reqToken); err == nil && claims.ID != "" {
		if err = m.revoked.Store(claims.ID, true, r); err != nil {
			zap.S().With(err).Error("failed to record revoked token")
			http.Error(w, "failed to revoke token", http.StatusInternalServerError)
			return
		}
	}
	tokenStrategy := m.authenticator.Strategy(bearer.CachedStrategyKey)
	if err := auth.Revoke(tokenStrategy, reqToken, r); err != nil {
		zap.S().With(err).Warn("failed to revoke token")
	}
	w.Write([]byte(`{"revoked": true}`))
}
