// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
	"google.golang.org/genai"

	"github.com/curioswitch/culinaryvision/internal/agent"
	"github.com/curioswitch/culinaryvision/internal/auth"
	"github.com/curioswitch/culinaryvision/internal/config"
	"github.com/curioswitch/culinaryvision/internal/culinarydb"
	"github.com/curioswitch/culinaryvision/internal/feed"
	"github.com/curioswitch/culinaryvision/internal/handler/addfavorite"
	"github.com/curioswitch/culinaryvision/internal/handler/agentchat"
	"github.com/curioswitch/culinaryvision/internal/handler/generateplan"
	"github.com/curioswitch/culinaryvision/internal/handler/getfeed"
	"github.com/curioswitch/culinaryvision/internal/handler/likeitem"
	"github.com/curioswitch/culinaryvision/internal/handler/listfavorites"
	"github.com/curioswitch/culinaryvision/internal/handler/removefavorite"
	"github.com/curioswitch/culinaryvision/internal/handler/signin"
	"github.com/curioswitch/culinaryvision/internal/handler/signout"
	"github.com/curioswitch/culinaryvision/internal/handler/signup"
	"github.com/curioswitch/culinaryvision/internal/httpapi"
	"github.com/curioswitch/culinaryvision/internal/media"
	"github.com/curioswitch/culinaryvision/internal/pipeline"
	"github.com/curioswitch/culinaryvision/internal/plangen"
	"github.com/curioswitch/culinaryvision/internal/speech"
	"github.com/curioswitch/culinaryvision/internal/videogen"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.ErrorContext(ctx, "main: server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	conf, err := config.Load()
	if err != nil {
		return fmt.Errorf("main: loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	db, err := culinarydb.OpenSQLite(conf.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("main: opening database: %w", err)
	}
	store := culinarydb.NewStore(db)
	favorites := culinarydb.NewFavoriteStore(store)
	feedStore := culinarydb.NewFeedStore(store)
	users := culinarydb.NewUserStore(store)

	genAI, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  conf.Google.APIKey,
	})
	if err != nil {
		return fmt.Errorf("main: creating genai client: %w", err)
	}

	tts := speech.NewClient(conf.ElevenLabs.APIKey, nil)
	mediaStore := media.NewStore(conf.Storage.MediaRoot, "/media")
	engine := feed.NewEngine(feedStore, feed.DefaultPolicy())

	pipelineConfig := pipeline.DefaultConfig()
	pipelineConfig.SkipVideo = conf.Pipeline.SkipVideo
	pipe := pipeline.New(
		plangen.NewGenerator(genAI),
		videogen.NewGenerator(genAI, videogen.DefaultConfig(conf.Google.APIKey)),
		tts,
		mediaStore,
		engine,
		pipelineConfig,
	)

	assistant := agent.NewAgent(genAI)
	authService := auth.NewService(users)

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Recoverer)
	mux.Use(authService.Middleware)

	mux.Route("/api", func(api chi.Router) {
		httpapi.Handle(api, "/generate-plan", generateplan.NewHandler(pipe).GeneratePlan)
		httpapi.Handle(api, "/get-feed", getfeed.NewHandler(engine).GetFeed)
		httpapi.Handle(api, "/like-item", likeitem.NewHandler(engine).LikeItem)
		httpapi.Handle(api, "/add-favorite", addfavorite.NewHandler(favorites).AddFavorite)
		httpapi.Handle(api, "/remove-favorite", removefavorite.NewHandler(favorites).RemoveFavorite)
		httpapi.Handle(api, "/list-favorites", listfavorites.NewHandler(favorites).ListFavorites)
		httpapi.Handle(api, "/agent-chat", agentchat.NewHandler(assistant, tts, mediaStore).AgentChat)
		httpapi.Handle(api, "/sign-up", signup.NewHandler(authService).SignUp)
		httpapi.Handle(api, "/sign-in", signin.NewHandler(authService).SignIn)
		httpapi.Handle(api, "/sign-out", signout.NewHandler(authService).SignOut)
	})

	mux.Handle("/media/*", http.StripPrefix("/media/", http.FileServer(http.Dir(mediaStore.Root()))))

	server := &http.Server{
		Addr:              conf.Server.Address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		slog.InfoContext(ctx, "main: listening", "address", conf.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("main: serving: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}
