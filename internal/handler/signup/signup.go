// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package signup

import (
	"context"
	"fmt"

	"github.com/curioswitch/culinaryvision/internal/auth"
	"github.com/curioswitch/culinaryvision/internal/culinarydb"
)

type Request struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Response struct {
	User  culinarydb.User `json:"user"`
	Token string          `json:"token"`
}

// NewHandler returns a Handler.
func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

// Handler registers a new user profile.
type Handler struct {
	service *auth.Service
}

func (h *Handler) SignUp(ctx context.Context, req *Request) (*Response, error) {
	user, token, err := h.service.SignUp(ctx, req.Email, req.Name)
	if err != nil {
		return nil, fmt.Errorf("signup: signing up: %w", err)
	}
	return &Response{User: user, Token: token}, nil
}
