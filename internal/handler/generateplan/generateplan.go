// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package generateplan

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/curioswitch/culinaryvision/internal/auth"
	"github.com/curioswitch/culinaryvision/internal/culinarydb"
	"github.com/curioswitch/culinaryvision/internal/pipeline"
)

const quotaNotice = "Video generation quota exceeded. Recipes are still available without videos. Check your Google Cloud billing and quota limits."

// Request carries the uploaded ingredient photo as a base64 data URL.
type Request struct {
	ImageDataURL string `json:"imageDataUrl"`
}

// Response is the fully populated plan. Notice is set when videos were cut
// short by quota.
type Response struct {
	Plan          *culinarydb.CulinaryPlan `json:"plan"`
	QuotaExceeded bool                     `json:"quotaExceeded"`
	Notice        string                   `json:"notice,omitempty"`
}

// NewHandler returns a Handler.
func NewHandler(pipeline *pipeline.Pipeline) *Handler {
	return &Handler{pipeline: pipeline}
}

// Handler runs the generation pipeline on an uploaded image.
type Handler struct {
	pipeline *pipeline.Pipeline
}

func (h *Handler) GeneratePlan(ctx context.Context, req *Request) (*Response, error) {
	image, mimeType, err := decodeImageDataURL(req.ImageDataURL)
	if err != nil {
		return nil, err
	}

	userID := auth.UserIDFromContext(ctx)
	result, err := h.pipeline.Run(ctx, userID, image, mimeType, func(message string, current int, total int) {
		slog.InfoContext(ctx, "generateplan: progress", "message", message, "current", current, "total", total)
	})
	if err != nil {
		return nil, fmt.Errorf("generateplan: running pipeline: %w", err)
	}

	res := &Response{
		Plan:          result.Plan,
		QuotaExceeded: result.QuotaExceeded,
	}
	if result.QuotaExceeded {
		res.Notice = quotaNotice
	}
	return res, nil
}

func decodeImageDataURL(dataURL string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, "", fmt.Errorf("generateplan: invalid data URL %q", dataURL) //nolint:err113
	}
	ct, contents, ok := strings.Cut(rest, ";")
	if !ok {
		return nil, "", fmt.Errorf("generateplan: invalid data URL %q", dataURL) //nolint:err113
	}
	if !strings.HasPrefix(ct, "image/") {
		return nil, "", fmt.Errorf("generateplan: only image data URLs supported, got %q", ct) //nolint:err113
	}
	b64, ok := strings.CutPrefix(contents, "base64,")
	if !ok {
		return nil, "", fmt.Errorf("generateplan: only base64 data URLs supported") //nolint:err113
	}
	image, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, "", fmt.Errorf("generateplan: decoding base64 data URL: %w", err)
	}
	return image, ct, nil
}
