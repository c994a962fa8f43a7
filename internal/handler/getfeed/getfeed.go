// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getfeed

import (
	"context"
	"fmt"

	"github.com/curioswitch/culinaryvision/internal/auth"
	"github.com/curioswitch/culinaryvision/internal/culinarydb"
	"github.com/curioswitch/culinaryvision/internal/feed"
)

const defaultMaxItems = 10

// Request asks for the viewing user's feed. Refresh forces a rebuild.
type Request struct {
	MaxItems int  `json:"maxItems,omitempty"`
	Refresh  bool `json:"refresh,omitempty"`
}

type Response struct {
	Items []culinarydb.FeedItem `json:"items"`
}

// NewHandler returns a Handler.
func NewHandler(engine *feed.Engine) *Handler {
	return &Handler{engine: engine}
}

// Handler returns the personalized feed.
type Handler struct {
	engine *feed.Engine
}

func (h *Handler) GetFeed(ctx context.Context, req *Request) (*Response, error) {
	maxItems := req.MaxItems
	if maxItems <= 0 {
		maxItems = defaultMaxItems
	}
	userID := auth.UserIDFromContext(ctx)

	var (
		items []culinarydb.FeedItem
		err   error
	)
	if req.Refresh {
		items, err = h.engine.Refresh(ctx, userID, maxItems)
	} else {
		items, err = h.engine.Feed(ctx, userID, maxItems)
	}
	if err != nil {
		return nil, fmt.Errorf("getfeed: building feed: %w", err)
	}
	return &Response{Items: items}, nil
}
