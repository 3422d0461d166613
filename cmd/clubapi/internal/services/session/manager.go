// Package session is the Session Manager: it issues opaque session tokens
// at login, resolves them to user ids, and expires them.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/bunx"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/db/models"
	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/repository"
)

// touchInterval throttles last_used_at writes during Resolve.
const touchInterval = time.Minute

// CredentialVerifier checks login credentials against the Identity Store.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, username, password string) (*models.User, error)
	RecordLogin(ctx context.Context, id int64)
}

// Recorder receives session metrics. telemetry.Metrics implements it.
type Recorder interface {
	RecordLogin(outcome string)
	RecordPruned(n int64)
}

// ClientInfo describes the client that logged in.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// Options configures a Manager.
type Options struct {
	// TTL is the absolute session lifetime; defaults to auth.SessionDuration.
	TTL time.Duration
	// Now overrides the clock in tests.
	Now func() time.Time
	// Metrics is optional.
	Metrics Recorder
}

// Manager issues and resolves sessions. It is safe for concurrent use;
// all state lives in the session store.
type Manager struct {
	creds   CredentialVerifier
	store   repository.SessionRepository
	ttl     time.Duration
	now     func() time.Time
	metrics Recorder
	log     logrus.FieldLogger
}

// NewManager creates a session manager.
func NewManager(creds CredentialVerifier, store repository.SessionRepository, log logrus.FieldLogger, opts Options) *Manager {
	if opts.TTL <= 0 {
		opts.TTL = auth.SessionDuration
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		creds:   creds,
		store:   store,
		ttl:     opts.TTL,
		now:     func() time.Time { return opts.Now().UTC() },
		metrics: opts.Metrics,
		log:     log,
	}
}

// TTL returns the absolute session lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Login verifies credentials and opens a session. Unknown usernames and
// wrong passwords both fail with auth.ErrInvalidCredentials.
// The returned token is shown to the client once; only its hash is stored.
func (m *Manager) Login(ctx context.Context, username, password string, client ClientInfo) (string, *models.Session, *models.User, error) {
	user, err := m.creds.VerifyCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			m.record("invalid")
			return "", nil, nil, auth.ErrInvalidCredentials
		}
		m.record("error")
		return "", nil, nil, err
	}

	token, tokenHash, err := auth.GenerateBearerToken()
	if err != nil {
		m.record("error")
		return "", nil, nil, err
	}

	now := m.now()
	sess := &models.Session{
		ID:         bunx.NewUUIDv7(),
		UserID:     user.ID,
		TokenHash:  tokenHash,
		CreatedAt:  now,
		LastUsedAt: now,
		ExpiresAt:  auth.CalculateExpiry(now, m.ttl),
	}
	if client.UserAgent != "" {
		sess.UserAgent = &client.UserAgent
	}
	if client.IPAddress != "" {
		sess.IPAddress = &client.IPAddress
	}

	if err := m.store.Create(ctx, sess); err != nil {
		m.record("error")
		return "", nil, nil, fmt.Errorf("create session: %w", err)
	}

	m.creds.RecordLogin(ctx, user.ID)
	m.record("success")
	m.log.Infof("[Session] User %q logged in (session=%s)", user.Username, sess.ID)
	return token, sess, user, nil
}

// Resolve maps a token to the user id it was issued for. Empty, unknown,
// destroyed and expired tokens all fail with auth.ErrUnauthenticated.
func (m *Manager) Resolve(ctx context.Context, token string) (int64, error) {
	sess, err := m.lookup(ctx, token)
	if err != nil {
		return 0, err
	}
	return sess.UserID, nil
}

func (m *Manager) lookup(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, auth.ErrUnauthenticated
	}

	tokenHash := auth.HashBearerToken(token)
	sess, err := m.store.GetByTokenHash(ctx, tokenHash)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, auth.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	now := m.now()
	if sess.Expired(now) {
		if err := m.store.DeleteByTokenHash(ctx, tokenHash); err != nil {
			m.log.Warnf("[Session] Failed to delete expired session %s: %v", sess.ID, err)
		}
		return nil, auth.ErrUnauthenticated
	}

	if now.Sub(sess.LastUsedAt) > touchInterval {
		if err := m.store.UpdateLastUsed(ctx, sess.ID, now); err != nil {
			m.log.Warnf("[Session] Failed to update last use of session %s: %v", sess.ID, err)
		}
	}
	return sess, nil
}

// Destroy ends the session of token. Destroying an unknown or already
// destroyed token succeeds.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.DeleteByTokenHash(ctx, auth.HashBearerToken(token)); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

// DestroyAllForUser ends every session of a user and returns how many ended.
func (m *Manager) DestroyAllForUser(ctx context.Context, userID int64) (int64, error) {
	n, err := m.store.DeleteByUserID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("destroy user sessions: %w", err)
	}
	if n > 0 {
		m.log.Infof("[Session] Ended %d session(s) of user %d", n, userID)
	}
	return n, nil
}

// Prune deletes every expired session.
func (m *Manager) Prune(ctx context.Context) (int64, error) {
	n, err := m.store.DeleteExpired(ctx, m.now())
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	if m.metrics != nil {
		m.metrics.RecordPruned(n)
	}
	return n, nil
}

// RunPruner calls Prune every interval until ctx is cancelled.
func (m *Manager) RunPruner(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.log.Infof("[Session] Pruning expired sessions every %s", interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := m.Prune(ctx)
			if err != nil {
				m.log.Errorf("[Session] Prune failed: %v", err)
				continue
			}
			if n > 0 {
				m.log.Infof("[Session] Pruned %d expired session(s)", n)
			}
		}
	}
}

func (m *Manager) record(outcome string) {
	if m.metrics != nil {
		m.metrics.RecordLogin(outcome)
	}
}
