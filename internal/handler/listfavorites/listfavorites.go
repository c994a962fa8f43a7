// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package listfavorites

import (
	"context"
	"fmt"

	"github.com/curioswitch/culinaryvision/internal/auth"
	"github.com/curioswitch/culinaryvision/internal/culinarydb"
)

type Request struct{}

type Response struct {
	Favorites []culinarydb.FavoriteRecipe `json:"favorites"`
}

// NewHandler returns a Handler.
func NewHandler(favorites *culinarydb.FavoriteStore) *Handler {
	return &Handler{favorites: favorites}
}

// Handler lists the user's favorites.
type Handler struct {
	favorites *culinarydb.FavoriteStore
}

func (h *Handler) ListFavorites(ctx context.Context, _ *Request) (*Response, error) {
	favorites, err := h.favorites.Favorites(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("listfavorites: listing favorites: %w", err)
	}
	return &Response{Favorites: favorites}, nil
}
