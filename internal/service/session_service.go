package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"account_ledger/internal/logger"
	"account_ledger/internal/models"
	"account_ledger/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultSessionTTL is the absolute lifetime of a session.
const DefaultSessionTTL = 24 * time.Hour

// SessionService binds opaque tokens to user ids held in a session.Store.
//
// The token handed to clients is an HS256-signed JWT whose only claims are
// the session id (jti), iat and exp. It carries no identity: the registry is
// the single source of truth, and the signature only lets forged or mangled
// cookies be dropped without a store lookup.
type SessionService struct {
	store  session.Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    *logger.Logger
}

func NewSessionService(store session.Store, secret []byte, ttl time.Duration, log *logger.Logger) *SessionService {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	if len(secret) == 0 {
		secret = RandomSecret()
	}
	return &SessionService{store: store, secret: secret, ttl: ttl, now: time.Now, log: log}
}

// RandomSecret returns 32 random bytes for signing session tokens.
func RandomSecret() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand.Read does not fail on supported platforms
		panic(fmt.Sprintf("read random secret: %v", err))
	}
	return b
}

// CreateSession starts a session for userID that expires ttl from now.
func (s *SessionService) CreateSession(ctx context.Context, userID int64) (string, time.Time, error) {
	now := s.now().UTC()
	sess := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return "", time.Time{}, fmt.Errorf("save session for user %d: %w", userID, err)
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		ID:        sess.ID,
		IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
	}).SignedString(s.secret)
	if err != nil {
		_, _ = s.store.Delete(ctx, sess.ID)
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, sess.ExpiresAt, nil
}

// ResolveSession returns the user bound to token. Missing, malformed,
// unknown and expired tokens, as well as store failures, all resolve to
// (0, false).
func (s *SessionService) ResolveSession(ctx context.Context, token string) (int64, bool) {
	id, ok := s.sessionID(token)
	if !ok {
		return 0, false
	}
	sess, found, err := s.store.Get(ctx, id)
	if err != nil {
		s.log.Errorw("session_resolve_failed", "err", err)
		return 0, false
	}
	if !found {
		return 0, false
	}
	if sess.Expired(s.now()) {
		if _, err := s.store.Delete(ctx, id); err != nil {
			s.log.Warnw("session_expired_delete_failed", "err", err)
		}
		return 0, false
	}
	return sess.UserID, true
}

// DestroySession ends the session behind token. It returns
// ErrSessionNotFound when there was nothing to destroy.
func (s *SessionService) DestroySession(ctx context.Context, token string) error {
	id, ok := s.sessionID(token)
	if !ok {
		return ErrSessionNotFound
	}
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if !removed {
		return ErrSessionNotFound
	}
	return nil
}

// Run removes expired sessions every interval until ctx is cancelled.
func (s *SessionService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionService) sweep(ctx context.Context) {
	n, err := s.store.DeleteExpired(ctx, s.now())
	if err != nil {
		s.log.Errorw("session_sweep_failed", "err", err)
		return
	}
	if n > 0 {
		s.log.Infow("session_sweep", "removed", n)
	}
}

// sessionID checks the token signature and extracts the session id.
// Expiry is judged by the registry, not by the token's exp claim.
func (s *SessionService) sessionID(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil || claims.ID == "" {
		return "", false
	}
	return claims.ID, true
}
