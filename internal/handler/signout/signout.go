// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package signout

import (
	"context"
	"fmt"

	"github.com/curioswitch/culinaryvision/internal/auth"
)

type Request struct{}

type Response struct{}

// NewHandler returns a Handler.
func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

// Handler deletes the stored session.
type Handler struct {
	service *auth.Service
}

func (h *Handler) SignOut(ctx context.Context, _ *Request) (*Response, error) {
	if err := h.service.SignOut(ctx); err != nil {
		return nil, fmt.Errorf("signout: signing out: %w", err)
	}
	return &Response{}, nil
}
