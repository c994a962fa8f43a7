// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package removefavorite

import (
	"context"
	"fmt"

	"github.com/curioswitch/culinaryvision/internal/auth"
	"github.com/curioswitch/culinaryvision/internal/culinarydb"
)

// Request identifies the favorite either by id or by its
// (title, ingredients) key.
type Request struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
}

type Response struct {
	Removed bool `json:"removed"`
}

// NewHandler returns a Handler.
func NewHandler(favorites *culinarydb.FavoriteStore) *Handler {
	return &Handler{favorites: favorites}
}

// Handler removes a favorite.
type Handler struct {
	favorites *culinarydb.FavoriteStore
}

func (h *Handler) RemoveFavorite(ctx context.Context, req *Request) (*Response, error) {
	userID := auth.UserIDFromContext(ctx)

	var (
		removed bool
		err     error
	)
	if req.ID != "" {
		removed, err = h.favorites.RemoveByID(ctx, userID, req.ID)
	} else {
		removed, err = h.favorites.Remove(ctx, userID, req.Title, req.Ingredients)
	}
	if err != nil {
		return nil, fmt.Errorf("removefavorite: removing favorite: %w", err)
	}
	return &Response{Removed: removed}, nil
}
