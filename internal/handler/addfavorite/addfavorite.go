// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package addfavorite

import (
	"context"
	"fmt"

	"github.com/curioswitch/culinaryvision/internal/auth"
	"github.com/curioswitch/culinaryvision/internal/culinarydb"
)

type Request struct {
	Recipe       culinarydb.Recipe      `json:"recipe"`
	Storyboard   *culinarydb.Storyboard `json:"storyboard,omitempty"`
	VideoURLs    []string               `json:"videoUrls,omitempty"`
	VoiceoverURL string                 `json:"voiceoverUrl,omitempty"`
	Ingredients  []string               `json:"ingredients"`
}

type Response struct {
	Favorite culinarydb.FavoriteRecipe `json:"favorite"`
}

// NewHandler returns a Handler.
func NewHandler(favorites *culinarydb.FavoriteStore) *Handler {
	return &Handler{favorites: favorites}
}

// Handler saves a favorite. A favorite with the same title and ingredients
// replaces the existing one.
type Handler struct {
	favorites *culinarydb.FavoriteStore
}

func (h *Handler) AddFavorite(ctx context.Context, req *Request) (*Response, error) {
	favorite, err := h.favorites.Put(ctx, auth.UserIDFromContext(ctx), culinarydb.FavoriteRecipe{
		Recipe:       req.Recipe,
		Storyboard:   req.Storyboard,
		VideoURLs:    req.VideoURLs,
		VoiceoverURL: req.VoiceoverURL,
		Ingredients:  req.Ingredients,
	})
	if err != nil {
		return nil, fmt.Errorf("addfavorite: saving favorite: %w", err)
	}
	return &Response{Favorite: favorite}, nil
}
