// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package pipeline sequences plan generation, storyboards, videos, and
// narration into one displayable result.
//
// Only plan generation is fatal. Every later stage failure is logged and
// becomes an absent optional feature on the affected recipe.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/curioswitch/culinaryvision/internal/culinarydb"
	"github.com/curioswitch/culinaryvision/internal/failure"
	"github.com/curioswitch/culinaryvision/internal/plangen"
	"github.com/curioswitch/culinaryvision/internal/speech"
	"github.com/curioswitch/culinaryvision/internal/videogen"
)

// PlanGenerator creates culinary plans and per-recipe storyboards.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, image []byte, mimeType string) (*culinarydb.CulinaryPlan, error)
	GenerateStoryboard(ctx context.Context, recipe culinarydb.Recipe) (*culinarydb.Storyboard, error)
}

// VideoGenerator creates videos for a recipe's storyboard.
type VideoGenerator interface {
	Generate(ctx context.Context, recipe culinarydb.Recipe, storyboard culinarydb.Storyboard, progress videogen.ProgressFunc) ([]string, error)
}

// SpeechSynthesizer converts narration text to audio bytes.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string, profile speech.Profile) ([]byte, error)
}

// AudioSink stores audio bytes and returns a servable URL.
type AudioSink interface {
	Write(ctx context.Context, name string, data []byte) (string, error)
}

// FeedUpdater receives completed recipes and refreshes the user's feed.
type FeedUpdater interface {
	AddUserRecipe(ctx context.Context, userID string, recipe culinarydb.Recipe, storyboard *culinarydb.Storyboard, videoURL string, voiceoverURL string, tags []string) (culinarydb.FeedItem, error)
	Refresh(ctx context.Context, userID string, maxItems int) ([]culinarydb.FeedItem, error)
}

// Config controls pipeline behavior.
type Config struct {
	// SkipVideo skips all video calls and substitutes deterministic
	// template storyboards, exercising the rest of the pipeline without
	// video cost or latency.
	SkipVideo bool

	// InterRequestDelay is the pause between consecutive video attempts.
	InterRequestDelay time.Duration

	// FeedMaxItems is the feed length rebuilt after insertion.
	FeedMaxItems int
}

// DefaultConfig returns the standard pipeline settings.
func DefaultConfig() Config {
	return Config{
		InterRequestDelay: 3 * time.Second,
		FeedMaxItems:      10,
	}
}

// ProgressFunc receives display-only status updates with the index of the
// recipe being processed and the recipe total.
type ProgressFunc func(message string, current int, total int)

// Result is the outcome of one generation batch. The plan is always
// displayable; QuotaExceeded signals that videos were cut short so callers
// can render a notice.
type Result struct {
	Plan          *culinarydb.CulinaryPlan
	QuotaExceeded bool
}

// New returns a Pipeline over the given stages.
func New(plans PlanGenerator, videos VideoGenerator, tts SpeechSynthesizer, audio AudioSink, feed FeedUpdater, config Config) *Pipeline {
	return &Pipeline{
		plans:  plans,
		videos: videos,
		tts:    tts,
		audio:  audio,
		feed:   feed,
		config: config,
	}
}

// Pipeline runs the generation flow for one uploaded image.
type Pipeline struct {
	plans  PlanGenerator
	videos VideoGenerator
	tts    SpeechSynthesizer
	audio  AudioSink
	feed   FeedUpdater
	config Config
}

// Run generates a culinary plan from the image and enriches each recipe
// with a storyboard, a video, and a voiceover where possible.
func (p *Pipeline) Run(ctx context.Context, userID string, image []byte, mimeType string, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(string, int, int) {}
	}

	progress("Analyzing ingredients and crafting your recipes...", 0, 0)
	plan, err := p.plans.GeneratePlan(ctx, image, mimeType)
	if err != nil {
		return nil, fmt.Errorf("pipeline: generating plan: %w", err)
	}

	plan.RecipeStoryboards = make(map[int]*culinarydb.Storyboard)
	plan.RecipeVideos = make(map[int][]string)
	plan.RecipeVoiceovers = make(map[int]string)

	total := len(plan.Recipes)
	quotaExceeded := false

	for i, recipe := range plan.Recipes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		progress(fmt.Sprintf("Generating video for: %s", recipe.Title), i+1, total)

		storyboard := p.storyboard(ctx, plan, i, recipe)
		if storyboard == nil {
			continue
		}
		plan.RecipeStoryboards[i] = storyboard

		if !p.config.SkipVideo && !quotaExceeded {
			urls, err := p.videos.Generate(ctx, recipe, *storyboard, func(message string) {
				progress(message, i+1, total)
			})
			switch {
			case err == nil:
				plan.RecipeVideos[i] = urls
				progress(fmt.Sprintf("Video generated for %s", recipe.Title), i+1, total)
			case failure.KindOf(err) == failure.KindQuota:
				quotaExceeded = true
				progress("Quota limit reached. Skipping remaining videos.", i+1, total)
				slog.WarnContext(ctx, "pipeline: video quota exceeded", "recipe", recipe.Title)
			default:
				slog.WarnContext(ctx, "pipeline: generating video", "recipe", recipe.Title, "error", err)
			}
		}

		if storyboard.VoiceoverScript != "" {
			p.voiceover(ctx, plan, i, recipe, storyboard.VoiceoverScript)
		}

		if !p.config.SkipVideo && !quotaExceeded && i < total-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.config.InterRequestDelay):
			}
		}
	}

	p.insertIntoFeed(ctx, userID, plan)

	return &Result{
		Plan:          plan,
		QuotaExceeded: quotaExceeded,
	}, nil
}

// storyboard resolves a recipe's storyboard: the plan's own for the first
// recipe, a template in video-skip mode, a vendor call otherwise. A vendor
// failure leaves the recipe bare.
func (p *Pipeline) storyboard(ctx context.Context, plan *culinarydb.CulinaryPlan, i int, recipe culinarydb.Recipe) *culinarydb.Storyboard {
	if i == 0 && plan.Storyboard != nil {
		return plan.Storyboard
	}
	if p.config.SkipVideo {
		return plangen.TemplateStoryboard(recipe)
	}
	storyboard, err := p.plans.GenerateStoryboard(ctx, recipe)
	if err != nil {
		slog.WarnContext(ctx, "pipeline: generating storyboard", "recipe", recipe.Title, "error", err)
		return nil
	}
	return storyboard
}

func (p *Pipeline) voiceover(ctx context.Context, plan *culinarydb.CulinaryPlan, i int, recipe culinarydb.Recipe, script string) {
	audio, err := p.tts.Synthesize(ctx, script, speech.NarrationProfile())
	if err != nil {
		slog.WarnContext(ctx, "pipeline: synthesizing voiceover", "recipe", recipe.Title, "error", err)
		return
	}
	url, err := p.audio.Write(ctx, "voiceovers/"+uuid.NewString()+".mp3", audio)
	if err != nil {
		slog.WarnContext(ctx, "pipeline: storing voiceover", "recipe", recipe.Title, "error", err)
		return
	}
	plan.RecipeVoiceovers[i] = url
}

// insertIntoFeed adds every recipe of the batch to the user's feed and
// refreshes the cached feed. Failures never affect the returned plan.
func (p *Pipeline) insertIntoFeed(ctx context.Context, userID string, plan *culinarydb.CulinaryPlan) {
	for i, recipe := range plan.Recipes {
		videoURL := ""
		if urls := plan.RecipeVideos[i]; len(urls) > 0 {
			videoURL = urls[0]
		}
		if _, err := p.feed.AddUserRecipe(ctx, userID, recipe, plan.RecipeStoryboards[i], videoURL, plan.RecipeVoiceovers[i], nil); err != nil {
			slog.WarnContext(ctx, "pipeline: adding recipe to feed", "recipe", recipe.Title, "error", err)
		}
	}
	if _, err := p.feed.Refresh(ctx, userID, p.config.FeedMaxItems); err != nil {
		slog.WarnContext(ctx, "pipeline: refreshing feed", "error", err)
	}
}
