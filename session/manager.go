// Package session owns "who is logged in": it persists the bearer token, keeps the
// in-memory identity in step with it, and reconciles both against the backend.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bothellselect/select-client/models"
	otellogger "github.com/bothellselect/select-client/otel/logger"
	"github.com/bothellselect/select-client/otel/metrics"
	"github.com/bothellselect/select-client/storage"
	"github.com/bothellselect/select-client/utils/logger"
	"go.uber.org/zap"
)

const (
	DefaultDebounce      = time.Second
	DefaultCheckInterval = 5 * time.Minute

	PathDashboard = "/dashboard"
	PathLogin     = "/login"

	genericLoginFailure = "Login failed. Please check your credentials and try again."
)

// Backend is the slice of the league API the session needs.
type Backend interface {
	Login(ctx context.Context, email, password string) (*models.LoginResponse, error)
	GetParent(ctx context.Context, id string) (*models.Parent, error)
}

// Navigator redirects the user after login and logout.
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

type NavigatorFunc func(ctx context.Context, path string)

func (f NavigatorFunc) Navigate(ctx context.Context, path string) { f(ctx, path) }

// State is a snapshot of the session. Identity is non-nil iff IsAuthenticated.
type State struct {
	IsAuthenticated bool             `json:"isAuthenticated"`
	Identity        *models.Identity `json:"identity"`
	Loading         bool             `json:"loading"`
}

// LoginError carries the message shown to the user on a failed login.
type LoginError struct {
	Message string
	Err     error
}

func (e *LoginError) Error() string { return e.Message }

func (e *LoginError) Unwrap() error { return e.Err }

type Option func(*Manager)

func WithNavigator(n Navigator) Option {
	return func(m *Manager) { m.navigator = n }
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithDebounce(d time.Duration) Option {
	return func(m *Manager) { m.debounce = d }
}

func WithCheckInterval(d time.Duration) Option {
	return func(m *Manager) { m.interval = d }
}

type Manager struct {
	backend   Backend
	store     storage.Store
	navigator Navigator
	now       func() time.Time
	debounce  time.Duration
	interval  time.Duration

	// inFlight makes reconciliation single-flight; lastRun is the start of the
	// previous accepted run in unix nanoseconds.
	inFlight atomic.Bool
	lastRun  atomic.Int64

	mu    sync.RWMutex
	state State
	// fetched is set when state.Identity came from a successful profile fetch;
	// only such identities take the known-identity shortcut.
	fetched     bool
	subscribers map[int]func(State)
	nextSubID   int
}

func NewManager(backend Backend, store storage.Store, opts ...Option) *Manager {
	m := &Manager{
		backend:     backend,
		store:       store,
		navigator:   NavigatorFunc(func(context.Context, string) {}),
		now:         time.Now,
		debounce:    DefaultDebounce,
		interval:    DefaultCheckInterval,
		state:       State{Loading: true},
		subscribers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns a copy of the current session state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return State{
		IsAuthenticated: m.state.IsAuthenticated,
		Identity:        cloneIdentity(m.state.Identity),
		Loading:         m.state.Loading,
	}
}

// Subscribe registers fn for every state change. The returned func unsubscribes.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.mu.Lock()
	id := m.nextSubID
	m.nextSubID++
	m.subscribers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subscribers, id)
		m.mu.Unlock()
	}
}

// Login exchanges credentials for a token. On failure nothing is persisted and the
// state is untouched.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return &LoginError{Message: "Email and password are required."}
	}

	resp, err := m.backend.Login(ctx, email, password)
	if err != nil {
		logger.AuthEvent("login_failed", zap.String("email", email), zap.Error(err))
		return &LoginError{Message: backendMessage(err), Err: err}
	}
	if resp == nil || resp.Token == "" {
		logger.AuthEvent("login_failed", zap.String("email", email), zap.String("reason", "empty token"))
		return &LoginError{Message: genericLoginFailure}
	}

	claims, err := DecodeToken(resp.Token)
	if err != nil {
		logger.AuthEvent("login_failed", zap.String("email", email), zap.Error(err))
		return &LoginError{Message: genericLoginFailure, Err: err}
	}

	var identity *models.Identity
	if claims.Role.IsAdmin() {
		identity = AdminIdentity(claims)
	} else {
		identity = MergeIdentity(resp.Parent, claims)
	}

	previous, err := m.snapshot(ctx)
	if err != nil {
		return &LoginError{Message: genericLoginFailure, Err: err}
	}
	if err := m.persistLogin(ctx, resp, identity); err != nil {
		m.restore(ctx, previous)
		return &LoginError{Message: genericLoginFailure, Err: err}
	}

	m.lastRun.Store(m.now().UnixNano())
	m.publish(State{IsAuthenticated: true, Identity: identity}, resp.Parent != nil && !identity.IsAdmin())
	logger.AuthEvent("login_success", zap.String("parent_id", identity.ID), zap.String("kind", string(identity.Kind)))
	m.navigator.Navigate(ctx, PathDashboard)
	return nil
}

func (m *Manager) persistLogin(ctx context.Context, resp *models.LoginResponse, identity *models.Identity) error {
	if err := m.store.Set(ctx, storage.KeyToken, resp.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	if resp.Parent != nil {
		parent := *resp.Parent
		if parent.ID == "" {
			parent.ID = identity.ID
		}
		if err := storage.SaveParent(ctx, m.store, &parent); err != nil {
			return fmt.Errorf("persist parent: %w", err)
		}
		return nil
	}
	if err := m.store.Set(ctx, storage.KeyParentID, identity.ID); err != nil {
		return fmt.Errorf("persist parent id: %w", err)
	}
	return nil
}

var sessionKeys = []string{storage.KeyToken, storage.KeyParentID, storage.KeyParent}

// snapshot reads the persisted session keys; a nil entry marks a missing key.
func (m *Manager) snapshot(ctx context.Context) (map[string]*string, error) {
	values := make(map[string]*string, len(sessionKeys))
	for _, key := range sessionKeys {
		v, err := m.store.Get(ctx, key)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			values[key] = nil
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", key, err)
		default:
			values[key] = &v
		}
	}
	return values, nil
}

// restore writes back a snapshot. It is best effort: a key whose write failed
// still holds its old value.
func (m *Manager) restore(ctx context.Context, values map[string]*string) {
	for key, v := range values {
		var err error
		if v == nil {
			err = m.store.Del(ctx, key)
		} else {
			err = m.store.Set(ctx, key, *v)
		}
		if err != nil {
			logger.LogWarn("restore session key failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// Logout removes the persisted session and clears the state. Calling it when no
// one is logged in only repeats the redirect.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.store.Del(ctx, sessionKeys...)
	m.setState(State{})
	logger.AuthEvent("logout")
	m.navigator.Navigate(ctx, PathLogin)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CheckSession reconciles the in-memory state with the persisted token. Calls made
// while another check runs, or within the debounce window of the last one, return
// immediately.
func (m *Manager) CheckSession(ctx context.Context) error {
	return m.reconcile(ctx, false)
}

// RefreshSession is CheckSession without the debounce window and without keeping
// an already known parent identity, so the profile is always refetched.
func (m *Manager) RefreshSession(ctx context.Context) error {
	return m.reconcile(ctx, true)
}

// Run checks the session now and then on every interval tick until ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	if err := m.CheckSession(ctx); err != nil {
		otellogger.ErrorCtx(ctx, "session check failed", err)
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := m.CheckSession(ctx); err != nil {
				otellogger.ErrorCtx(ctx, "session check failed", err)
			}
		}
	}
}

func (m *Manager) reconcile(ctx context.Context, force bool) error {
	if !m.inFlight.CompareAndSwap(false, true) {
		return nil
	}
	defer m.inFlight.Store(false)

	now := m.now()
	if !force {
		if last := m.lastRun.Load(); last != 0 && now.Sub(time.Unix(0, last)) < m.debounce {
			return nil
		}
	}
	m.lastRun.Store(now.UnixNano())

	outcome, err := m.runCheck(ctx, now, force)
	metrics.RecordSessionCheck(ctx, outcome, force)
	return err
}

func (m *Manager) runCheck(ctx context.Context, now time.Time, force bool) (string, error) {
	token, err := m.store.Get(ctx, storage.KeyToken)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && token == "") {
		m.setState(State{})
		return metrics.OutcomeAnonymous, nil
	}
	if err != nil {
		return m.failClosed(ctx, fmt.Errorf("read token: %w", err))
	}

	claims, err := ValidateToken(token, now)
	if err != nil {
		logger.AuthEvent("session_expired", zap.Error(err))
		_ = m.Logout(ctx)
		return metrics.OutcomeExpired, nil
	}

	if claims.Role.IsAdmin() {
		m.setState(State{IsAuthenticated: true, Identity: AdminIdentity(claims)})
		return metrics.OutcomeAdmin, nil
	}

	parentID := claims.ParentID()
	if !force {
		if known := m.fetchedParent(parentID); known != nil {
			m.publish(State{IsAuthenticated: true, Identity: known}, true)
			return metrics.OutcomeKnown, nil
		}
	}

	if parentID == "" {
		otellogger.WarnCtx(ctx, "token carries no account id, using claims only")
		m.setState(State{IsAuthenticated: true, Identity: MergeIdentity(nil, claims)})
		return metrics.OutcomeClaimsOnly, nil
	}

	parent, err := m.backend.GetParent(ctx, parentID)
	if err == nil && parent == nil {
		err = errors.New("empty parent response")
	}
	if err != nil {
		otellogger.WarnCtx(ctx, "parent fetch failed, using token claims", zap.String("parent_id", parentID), zap.Error(err))
		m.setState(State{IsAuthenticated: true, Identity: MergeIdentity(nil, claims)})
		return metrics.OutcomeClaimsOnly, nil
	}

	identity := MergeIdentity(parent, claims)
	cached := *parent
	cached.ID = identity.ID
	if err := storage.SaveParent(ctx, m.store, &cached); err != nil {
		return m.failClosed(ctx, fmt.Errorf("cache parent: %w", err))
	}

	m.publish(State{IsAuthenticated: true, Identity: identity}, true)
	return metrics.OutcomeParent, nil
}

func (m *Manager) failClosed(ctx context.Context, err error) (string, error) {
	otellogger.ErrorCtx(ctx, "session check failed, logging out", err)
	_ = m.Logout(ctx)
	return metrics.OutcomeStorageFailed, err
}

// fetchedParent returns a copy of the current identity when it is parentID's
// backend profile.
func (m *Manager) fetchedParent(parentID string) *models.Identity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id := m.state.Identity
	if !m.fetched || id == nil || id.Kind != models.IdentityParent || id.ID != parentID {
		return nil
	}
	return cloneIdentity(id)
}

func (m *Manager) setState(s State) {
	m.publish(s, false)
}

func (m *Manager) publish(s State, fetched bool) {
	s.Loading = false
	if !s.IsAuthenticated {
		s.Identity = nil
		fetched = false
	}

	m.mu.Lock()
	m.state = s
	m.fetched = fetched
	subs := make([]func(State), 0, len(m.subscribers))
	for _, fn := range m.subscribers {
		subs = append(subs, fn)
	}
	m.mu.Unlock()

	for _, fn := range subs {
		fn(State{IsAuthenticated: s.IsAuthenticated, Identity: cloneIdentity(s.Identity)})
	}
}

// backendMessage returns the user-facing message of a backend error, or the
// generic login failure text.
func backendMessage(err error) string {
	var withMessage interface{ BackendMessage() string }
	if errors.As(err, &withMessage) {
		if msg := withMessage.BackendMessage(); msg != "" {
			return msg
		}
	}
	return genericLoginFailure
}
