// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package culinarydb

import "context"

const (
	keyUserFeedItems = "feed-user-recipes"
	keyLikedIDs      = "feed-liked-ids"
	keyFeedCache     = "feed-cache"
)

// NewFeedStore returns a FeedStore over store.
func NewFeedStore(store *Store) *FeedStore {
	return &FeedStore{store: store}
}

// FeedStore persists a user's generated feed items, liked-item set, and
// cached feed.
type FeedStore struct {
	store *Store
}

// UserItems returns the user's generated feed items, in insertion order.
func (s *FeedStore) UserItems(ctx context.Context, userID string) ([]FeedItem, error) {
	var items []FeedItem
	if _, err := s.store.get(ctx, userScope(userID), keyUserFeedItems, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddUserItem appends a generated feed item for the user.
func (s *FeedStore) AddUserItem(ctx context.Context, userID string, item FeedItem) error {
	items, err := s.UserItems(ctx, userID)
	if err != nil {
		return err
	}
	items = append(items, item)
	return s.store.put(ctx, userScope(userID), keyUserFeedItems, verFeedItems, items)
}

// LikedIDs returns the set of feed item IDs the user has liked.
func (s *FeedStore) LikedIDs(ctx context.Context, userID string) (map[string]bool, error) {
	var ids []string
	if _, err := s.store.get(ctx, userScope(userID), keyLikedIDs, &ids); err != nil {
		return nil, err
	}
	liked := make(map[string]bool, len(ids))
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}

// SaveLikedIDs replaces the set of feed item IDs the user has liked.
func (s *FeedStore) SaveLikedIDs(ctx context.Context, userID string, liked map[string]bool) error {
	ids := make([]string, 0, len(liked))
	for id, ok := range liked {
		if ok {
			ids = append(ids, id)
		}
	}
	return s.store.put(ctx, userScope(userID), keyLikedIDs, verLikedIDs, ids)
}

// Cache returns the user's cached feed, or nil if none is stored.
func (s *FeedStore) Cache(ctx context.Context, userID string) (*FeedCache, error) {
	var cache FeedCache
	ok, err := s.store.get(ctx, userScope(userID), keyFeedCache, &cache)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &cache, nil
}

// SaveCache replaces the user's cached feed.
func (s *FeedStore) SaveCache(ctx context.Context, userID string, cache FeedCache) error {
	return s.store.put(ctx, userScope(userID), keyFeedCache, verFeedCache, cache)
}

// InvalidateCache deletes the user's cached feed, forcing the next read to
// rebuild.
func (s *FeedStore) InvalidateCache(ctx context.Context, userID string) error {
	return s.store.delete(ctx, userScope(userID), keyFeedCache)
}
