// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package videogen generates short vertical recipe videos with Veo.
package videogen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"google.golang.org/genai"

	"github.com/curioswitch/culinaryvision/internal/culinarydb"
	"github.com/curioswitch/culinaryvision/internal/failure"
)

// Config controls video generation.
type Config struct {
	// Model is the Veo model name.
	Model string

	// AspectRatio of generated videos.
	AspectRatio string

	// Resolution of generated videos.
	Resolution string

	// PollInterval is the wait between long-running operation polls.
	PollInterval time.Duration

	// MaxPolls caps polling of a single operation. An operation still
	// running after MaxPolls polls is a timeout failure.
	MaxPolls int

	// MaxAttempts is the total number of generation attempts, counting
	// the first. Only transient failures consume extra attempts.
	MaxAttempts int

	// APIKey is appended to returned video URIs as the key query
	// parameter, matching how the download endpoint authenticates.
	APIKey string
}

// DefaultConfig returns the standard video generation settings.
func DefaultConfig(apiKey string) Config {
	return Config{
		Model:        "veo-3.1-fast-generate-preview",
		AspectRatio:  "9:16",
		Resolution:   "720p",
		PollInterval: 10 * time.Second,
		MaxPolls:     60,
		MaxAttempts:  3,
		APIKey:       apiKey,
	}
}

// ProgressFunc receives display-only status updates during generation.
type ProgressFunc func(message string)

// videoAPI is the slice of the genai client the generator uses.
type videoAPI interface {
	generateVideos(ctx context.Context, model string, prompt string, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error)
	getVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error)
}

type genaiVideoAPI struct {
	client *genai.Client
}

func (a genaiVideoAPI) generateVideos(ctx context.Context, model string, prompt string, config *genai.GenerateVideosConfig) (*genai.GenerateVideosOperation, error) {
	return a.client.Models.GenerateVideos(ctx, model, prompt, nil, config)
}

func (a genaiVideoAPI) getVideosOperation(ctx context.Context, op *genai.GenerateVideosOperation) (*genai.GenerateVideosOperation, error) {
	return a.client.Operations.GetVideosOperation(ctx, op, nil)
}

// NewGenerator returns a Generator using genAI with the given config.
func NewGenerator(genAI *genai.Client, config Config) *Generator {
	return &Generator{
		api:    genaiVideoAPI{client: genAI},
		config: config,
	}
}

// Generator submits video generation and polls it to completion.
type Generator struct {
	api    videoAPI
	config Config
}

// Generate creates one video for the recipe's storyboard and returns its
// URIs. Transient failures are retried with exponential backoff up to the
// configured attempt cap; every other failure kind is terminal.
func (g *Generator) Generate(ctx context.Context, recipe culinarydb.Recipe, storyboard culinarydb.Storyboard, progress ProgressFunc) ([]string, error) {
	if progress == nil {
		progress = func(string) {}
	}
	prompt := videoPrompt(recipe, storyboard)

	urls, err := backoff.Retry(ctx, func() ([]string, error) {
		urls, err := g.generateOnce(ctx, recipe, prompt, progress)
		if err != nil {
			if failure.KindOf(err) == failure.KindTransient {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		return urls, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(uint(g.config.MaxAttempts)))
	if err != nil {
		return nil, err
	}
	progress("Your video is ready!")
	return urls, nil
}

func (g *Generator) generateOnce(ctx context.Context, recipe culinarydb.Recipe, prompt string, progress ProgressFunc) ([]string, error) {
	progress(fmt.Sprintf("Creating video for: %q", recipe.Title))

	op, err := g.api.generateVideos(ctx, g.config.Model, prompt, &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     g.config.Resolution,
		AspectRatio:    g.config.AspectRatio,
	})
	if err != nil {
		return nil, failure.Classify(fmt.Errorf("videogen: submitting generation: %w", err))
	}
	if ferr := failure.FromOperation(op.Error); ferr != nil {
		return nil, ferr
	}

	polls := 0
	for !op.Done {
		if polls >= g.config.MaxPolls {
			return nil, failure.New(failure.KindTimeout, "videogen: video generation did not finish in time")
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.config.PollInterval):
		}
		polls++

		op, err = g.api.getVideosOperation(ctx, op)
		if err != nil {
			return nil, failure.Classify(fmt.Errorf("videogen: polling operation: %w", err))
		}
		if ferr := failure.FromOperation(op.Error); ferr != nil {
			return nil, ferr
		}
		progress(fmt.Sprintf("Video is rendering... (%ds elapsed)", int(time.Duration(polls)*g.config.PollInterval/time.Second)))
	}

	if op.Response == nil || len(op.Response.GeneratedVideos) == 0 ||
		op.Response.GeneratedVideos[0].Video == nil || op.Response.GeneratedVideos[0].Video.URI == "" {
		return nil, failure.New(failure.KindUnknown, "videogen: no video URI in response")
	}
	return []string{g.signURI(op.Response.GeneratedVideos[0].Video.URI)}, nil
}

// signURI appends the API key the download endpoint expects.
func (g *Generator) signURI(uri string) string {
	if g.config.APIKey == "" {
		return uri
	}
	separator := "?"
	if strings.Contains(uri, "?") {
		separator = "&"
	}
	return uri + separator + "key=" + g.config.APIKey
}
