package handlers

import (
	"context"
	"sync"

	"github.com/bothellselect/select-client/api"
	"github.com/bothellselect/select-client/otel/metrics"
	"github.com/bothellselect/select-client/session"
	"github.com/bothellselect/select-client/storage"
	"github.com/google/uuid"
)

// Session is one browser session: its manager, its slice of the store and an API
// client authenticating with the session's own token.
type Session struct {
	ID      string
	Manager *session.Manager
	Store   storage.Store
	API     *api.Client
}

// Registry maps Session cookie ids to sessions. Sessions are rebuilt lazily from
// the backing store, so a restart keeps users logged in with a persistent store.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	store    storage.Store
	api      *api.Client
	opts     []session.Option
}

func NewRegistry(store storage.Store, apiClient *api.Client, opts ...session.Option) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		store:    store,
		api:      apiClient,
		opts:     opts,
	}
}

// Get returns the session for id. An id missing from memory is rebuilt only
// when the backing store still holds a token for it; ids that are not uuids are
// rejected.
func (r *Registry) Get(ctx context.Context, id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if ok {
		return s, true
	}

	store := storage.Namespace(r.store, "session:"+id)
	if token, err := store.Get(ctx, storage.KeyToken); err != nil || token == "" {
		return nil, false
	}
	return r.register(ctx, id, store), true
}

// Create starts a new browser session.
func (r *Registry) Create(ctx context.Context) *Session {
	id := uuid.NewString()
	return r.register(ctx, id, storage.Namespace(r.store, "session:"+id))
}

func (r *Registry) register(ctx context.Context, id string, store storage.Store) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		return s
	}
	s := r.build(id, store)
	r.sessions[id] = s
	metrics.SessionOpened(ctx)
	return s
}

// Remove forgets the in-memory session; persisted keys are left to Logout.
func (r *Registry) Remove(ctx context.Context, id string) {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if ok {
		metrics.SessionClosed(ctx)
	}
}

// Ephemeral builds an unregistered in-memory session seeded with token, for
// callers that only send a bearer header.
func (r *Registry) Ephemeral(ctx context.Context, token string) (*Session, error) {
	store := storage.NewMemoryStore()
	if err := store.Set(ctx, storage.KeyToken, token); err != nil {
		return nil, err
	}
	return r.build("", store), nil
}

// CheckAll reconciles every registered session, dropping the ones that ended up
// logged out.
func (r *Registry) CheckAll(ctx context.Context) {
	r.mu.Lock()
	all := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	r.mu.Unlock()

	for _, s := range all {
		_ = s.Manager.CheckSession(ctx)
		if !s.Manager.State().IsAuthenticated {
			r.Remove(ctx, s.ID)
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) build(id string, store storage.Store) *Session {
	client := r.api.WithTokenSource(storage.TokenSource(store))
	return &Session{
		ID:      id,
		Manager: session.NewManager(client, store, r.opts...),
		Store:   store,
		API:     client,
	}
}
