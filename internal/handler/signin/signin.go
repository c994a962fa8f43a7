// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package signin

import (
	"context"

	"github.com/curioswitch/culinaryvision/internal/auth"
	"github.com/curioswitch/culinaryvision/internal/culinarydb"
)

type Request struct {
	Email string `json:"email"`
}

type Response struct {
	User  culinarydb.User `json:"user"`
	Token string          `json:"token"`
}

// NewHandler returns a Handler.
func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

// Handler signs in against the stored profile.
type Handler struct {
	service *auth.Service
}

func (h *Handler) SignIn(ctx context.Context, req *Request) (*Response, error) {
	user, token, err := h.service.SignIn(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	return &Response{User: user, Token: token}, nil
}
