package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/bothellselect/select-client/enums"
	"github.com/bothellselect/select-client/models"
	"github.com/bothellselect/select-client/utils"
)

// MaxRecentlyViewed caps each recently-viewed list.
const MaxRecentlyViewed = 5

func RecentlyViewedKey(kind enums.RecentKind) string {
	return KeyRecentlyViewedPrefix + string(kind)
}

// DismissedNotifications returns the ids the user has dismissed, oldest first.
func DismissedNotifications(ctx context.Context, store Store) ([]string, error) {
	return loadIDs(ctx, store, KeyDismissedNotifications)
}

// DismissNotification records id as dismissed. Dismissing twice is a no-op.
func DismissNotification(ctx context.Context, store Store, id string) error {
	ids, err := DismissedNotifications(ctx, store)
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}
	return saveIDs(ctx, store, KeyDismissedNotifications, append(ids, id))
}

// RecentlyViewed returns the ids of kind, most recent first.
func RecentlyViewed(ctx context.Context, store Store, kind enums.RecentKind) ([]string, error) {
	return loadIDs(ctx, store, RecentlyViewedKey(kind))
}

// RecordRecentlyViewed moves id to the front of the kind's list, dropping the
// oldest entries past MaxRecentlyViewed.
func RecordRecentlyViewed(ctx context.Context, store Store, kind enums.RecentKind, id string) error {
	key := RecentlyViewedKey(kind)
	ids, err := loadIDs(ctx, store, key)
	if err != nil {
		return err
	}

	next := make([]string, 0, MaxRecentlyViewed)
	next = append(next, id)
	for _, existing := range ids {
		if existing == id {
			continue
		}
		if len(next) == MaxRecentlyViewed {
			break
		}
		next = append(next, existing)
	}
	return saveIDs(ctx, store, key, next)
}

// SaveParent caches the parent profile and its id.
func SaveParent(ctx context.Context, store Store, parent *models.Parent) error {
	data, err := utils.StructToBytes(parent)
	if err != nil {
		return fmt.Errorf("encode parent: %w", err)
	}
	if err := store.Set(ctx, KeyParent, string(data)); err != nil {
		return err
	}
	return store.Set(ctx, KeyParentID, parent.ID)
}

// LoadParent returns the cached parent profile, or ErrNotFound.
func LoadParent(ctx context.Context, store Store) (*models.Parent, error) {
	raw, err := store.Get(ctx, KeyParent)
	if err != nil {
		return nil, err
	}
	var parent models.Parent
	if err := utils.BytesToStruct([]byte(raw), &parent); err != nil {
		return nil, fmt.Errorf("decode parent: %w", err)
	}
	return &parent, nil
}

func loadIDs(ctx context.Context, store Store, key string) ([]string, error) {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := utils.BytesToStruct([]byte(raw), &ids); err != nil {
		// A corrupt list is treated as empty; the next write replaces it.
		return nil, nil
	}
	return ids, nil
}

func saveIDs(ctx context.Context, store Store, key string, ids []string) error {
	data, err := utils.StructToBytes(ids)
	if err != nil {
		return err
	}
	return store.Set(ctx, key, string(data))
}
