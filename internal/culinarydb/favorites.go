// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package culinarydb

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"
)

const keyFavorites = "favorites"

// NewFavoriteStore returns a FavoriteStore over store.
func NewFavoriteStore(store *Store) *FavoriteStore {
	return &FavoriteStore{store: store}
}

// FavoriteStore persists a user's favorite recipes.
type FavoriteStore struct {
	store *Store
}

// Favorites returns all favorites of the user, in insertion order.
func (s *FavoriteStore) Favorites(ctx context.Context, userID string) ([]FavoriteRecipe, error) {
	var favorites []FavoriteRecipe
	if _, err := s.store.get(ctx, userScope(userID), keyFavorites, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// Put saves a favorite. A favorite with the same (title, ingredients) key as
// an existing one replaces it in place rather than appending.
func (s *FavoriteStore) Put(ctx context.Context, userID string, favorite FavoriteRecipe) (FavoriteRecipe, error) {
	favorites, err := s.Favorites(ctx, userID)
	if err != nil {
		return FavoriteRecipe{}, err
	}

	if favorite.ID == "" {
		favorite.ID = "fav-" + uuid.NewString()
	}
	if favorite.CreatedAt.IsZero() {
		favorite.CreatedAt = time.Now()
	}

	replaced := false
	for i, f := range favorites {
		if sameFavoriteKey(f, favorite.Recipe.Title, favorite.Ingredients) {
			favorites[i] = favorite
			replaced = true
			break
		}
	}
	if !replaced {
		favorites = append(favorites, favorite)
	}

	if err := s.store.put(ctx, userScope(userID), keyFavorites, verFavorites, favorites); err != nil {
		return FavoriteRecipe{}, err
	}
	return favorite, nil
}

// IsFavorite reports whether the user has a favorite with the given key.
func (s *FavoriteStore) IsFavorite(ctx context.Context, userID string, title string, ingredients []string) (bool, error) {
	favorites, err := s.Favorites(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, f := range favorites {
		if sameFavoriteKey(f, title, ingredients) {
			return true, nil
		}
	}
	return false, nil
}

// Remove deletes the favorite with the given key, reporting whether one was
// removed.
func (s *FavoriteStore) Remove(ctx context.Context, userID string, title string, ingredients []string) (bool, error) {
	favorites, err := s.Favorites(ctx, userID)
	if err != nil {
		return false, err
	}
	kept := slices.DeleteFunc(favorites, func(f FavoriteRecipe) bool {
		return sameFavoriteKey(f, title, ingredients)
	})
	if len(kept) == len(favorites) {
		return false, nil
	}
	if err := s.store.put(ctx, userScope(userID), keyFavorites, verFavorites, kept); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveByID deletes the favorite with the given ID, reporting whether one
// was removed.
func (s *FavoriteStore) RemoveByID(ctx context.Context, userID string, id string) (bool, error) {
	favorites, err := s.Favorites(ctx, userID)
	if err != nil {
		return false, err
	}
	kept := slices.DeleteFunc(favorites, func(f FavoriteRecipe) bool {
		return f.ID == id
	})
	if len(kept) == len(favorites) {
		return false, nil
	}
	if err := s.store.put(ctx, userScope(userID), keyFavorites, verFavorites, kept); err != nil {
		return false, err
	}
	return true, nil
}

func sameFavoriteKey(f FavoriteRecipe, title string, ingredients []string) bool {
	return f.Recipe.Title == title && slices.Equal(f.Ingredients, ingredients)
}
