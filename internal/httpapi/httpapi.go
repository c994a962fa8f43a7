// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package httpapi provides JSON unary endpoint plumbing and the mapping
// from classified failures to HTTP statuses.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curioswitch/culinaryvision/internal/auth"
	"github.com/curioswitch/culinaryvision/internal/failure"
)

// Handle mounts fn as a POST JSON endpoint at path.
func Handle[Req any, Res any](mux chi.Router, path string, fn func(ctx context.Context, req *Req) (*Res, error)) {
	mux.Post(path, func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req Req
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(ctx, w, http.StatusBadRequest, "invalid request body", "")
			return
		}

		res, err := fn(ctx, &req)
		if err != nil {
			status, message, hint := classifyError(err)
			if status >= http.StatusInternalServerError {
				slog.ErrorContext(ctx, "httpapi: handler failed", "path", path, "error", err)
			} else {
				slog.WarnContext(ctx, "httpapi: request rejected", "path", path, "error", err)
			}
			writeError(ctx, w, status, message, hint)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(res); err != nil {
			slog.ErrorContext(ctx, "httpapi: encoding response", "path", path, "error", err)
		}
	})
}

type errorBody struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, message string, hint string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorBody{Error: message, Hint: hint}); err != nil {
		slog.ErrorContext(ctx, "httpapi: encoding error response", "error", err)
	}
}

func classifyError(err error) (int, string, string) {
	if errors.Is(err, auth.ErrInvalidLogin) {
		return http.StatusUnauthorized, "no matching user", ""
	}

	var fe *failure.Error
	if errors.As(err, &fe) {
		hint := failure.Hint(fe.Kind)
		switch fe.Kind {
		case failure.KindInvalidCredentials:
			return http.StatusUnauthorized, fe.Message, hint
		case failure.KindPermissionDenied:
			return http.StatusForbidden, fe.Message, hint
		case failure.KindInvalidResponse:
			return http.StatusBadGateway, fe.Message, ""
		case failure.KindTimeout:
			return http.StatusGatewayTimeout, fe.Message, ""
		default:
			return http.StatusInternalServerError, fe.Message, ""
		}
	}

	return http.StatusInternalServerError, "internal error", ""
}
