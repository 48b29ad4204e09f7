// Package storage holds the client's persisted key/value state: the bearer token,
// the cached parent profile and small per-user preference lists.
package storage

import (
	"context"
	"errors"
)

// Keys of persisted client state.
const (
	KeyToken                  = "token"
	KeyParentID               = "parentId"
	KeyParent                 = "parent"
	KeyDismissedNotifications = "dismissedNotifications"
	KeyRecentlyViewedPrefix   = "recentlyViewed"
)

var ErrNotFound = errors.New("storage: key not found")

// Store is a string key/value store. Get returns ErrNotFound for missing keys and
// Del ignores keys that do not exist.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

// Namespace prefixes every key with prefix + ":", letting several sessions share
// one backing store.
func Namespace(store Store, prefix string) Store {
	return &namespaced{store: store, prefix: prefix + ":"}
}

type namespaced struct {
	store  Store
	prefix string
}

func (n *namespaced) Get(ctx context.Context, key string) (string, error) {
	return n.store.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.store.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Del(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = n.prefix + k
	}
	return n.store.Del(ctx, prefixed...)
}

// TokenSource reads the bearer token from store on every call, returning "" when
// no one is logged in.
func TokenSource(store Store) func(ctx context.Context) (string, error) {
	return func(ctx context.Context) (string, error) {
		token, err := store.Get(ctx, KeyToken)
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return token, err
	}
}
