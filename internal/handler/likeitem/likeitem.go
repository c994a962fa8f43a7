// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package likeitem

import (
	"context"
	"fmt"

	"github.com/curioswitch/culinaryvision/internal/auth"
	"github.com/curioswitch/culinaryvision/internal/feed"
)

type Request struct {
	ItemID string `json:"itemId"`
}

// Response reports the item's new liked state.
type Response struct {
	Liked bool `json:"liked"`
}

// NewHandler returns a Handler.
func NewHandler(engine *feed.Engine) *Handler {
	return &Handler{engine: engine}
}

// Handler toggles a like on a feed item.
type Handler struct {
	engine *feed.Engine
}

func (h *Handler) LikeItem(ctx context.Context, req *Request) (*Response, error) {
	liked, err := h.engine.ToggleLike(ctx, auth.UserIDFromContext(ctx), req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("likeitem: toggling like: %w", err)
	}
	return &Response{Liked: liked}, nil
}
