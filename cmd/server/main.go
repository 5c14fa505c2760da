// Package main provides the server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	apiconnect "github.com/osa030/tunebox/internal/api/connect"
	"github.com/osa030/tunebox/internal/api/tuneboxv1/tuneboxv1connect"
	"github.com/osa030/tunebox/internal/app/playback"
	"github.com/osa030/tunebox/internal/app/session"
	"github.com/osa030/tunebox/internal/infra/audio"
	"github.com/osa030/tunebox/internal/infra/config"
	"github.com/osa030/tunebox/internal/infra/logger"
	"github.com/osa030/tunebox/internal/infra/spotify"
	"github.com/osa030/tunebox/internal/infra/store"
)

var (
	app        = kingpin.New("tunebox-server", "tunebox playback server")
	configPath = app.Flag("config", "Path to config file").Default("config/server.yaml").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stdout)").String()
	sinkType   = app.Flag("sink", "Override the configured sink type (speaker, none)").Enum(config.SinkTypeSpeaker, config.SinkTypeNone)

	// check-config command
	checkConfigCmd = app.Command("check-config", "Validate the config file and exit")
)

func init() {
	// start command (default) - no need to store the command
	app.Command("start", "Start the server (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	loggerConfig := logger.Config{
		Output: "stdout",
		Level:  "info",
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
		loggerConfig.File = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	zlog.Info().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}
	if *sinkType != "" {
		cfg.Sink.Type = *sinkType
	}

	if command == checkConfigCmd.FullCommand() {
		printConfig(cfg)
		return
	}

	// Run server (defer ensures shutdown hook is called)
	if err := run(cfg); err != nil {
		zlog.Error().Msgf("Server error: %v", err)
		os.Exit(1)
	}
}

// run executes the main server logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	ctx := context.Background()

	st, err := store.Open(cfg.Catalog.Path)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer st.Close()

	sink, err := audio.New(cfg.Sink)
	if err != nil {
		return fmt.Errorf("failed to create %s sink: %w", cfg.Sink.Type, err)
	}
	zlog.Info().Msgf("Using %s sink", cfg.Sink.Type)

	// Spotify is only needed for playlist import
	var fetcher apiconnect.PlaylistFetcher
	if cfg.HasSpotify() {
		client, err := spotify.New(ctx, spotify.Config{
			ClientID:     cfg.Spotify.ClientID,
			ClientSecret: cfg.Spotify.ClientSecret,
			RefreshToken: cfg.Spotify.RefreshToken,
			Market:       cfg.Spotify.Market,
		})
		if err != nil {
			return fmt.Errorf("failed to create Spotify client: %w", err)
		}
		fetcher = client
	} else {
		zlog.Info().Msg("Spotify credentials not configured, playlist import is disabled")
	}

	sessionMgr := session.NewManager(session.Config{
		Player: playback.Config{
			Volume:       cfg.Player.Volume(),
			Looping:      cfg.Player.IsLooping(),
			Shuffled:     cfg.Player.Shuffled,
			HistoryLimit: cfg.Player.HistorySize,
		},
	}, sink, st)
	if err := sessionMgr.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	// Close session manager first to terminate active connections/streams
	defer sessionMgr.Close()

	mux := http.NewServeMux()

	playerPath, playerHandler := tuneboxv1connect.NewPlayerServiceHandler(
		apiconnect.NewPlayerService(),
		connect.WithInterceptors(apiconnect.NewSessionInterceptor(sessionMgr)),
	)
	catalogPath, catalogHandler := tuneboxv1connect.NewCatalogServiceHandler(
		apiconnect.NewCatalogService(st),
	)
	adminPath, adminHandler := tuneboxv1connect.NewAdminServiceHandler(
		apiconnect.NewAdminService(st, fetcher),
		connect.WithInterceptors(apiconnect.NewAdminAuthInterceptor(cfg.Admin)),
	)

	mux.Handle(playerPath, playerHandler)
	mux.Handle(catalogPath, catalogHandler)
	mux.Handle(adminPath, adminHandler)

	// Create server with h2c (HTTP/2 cleartext) support
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h2c.NewHandler(mux, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	serverStartedCh := make(chan struct{})

	go func() {
		zlog.Info().Msgf("Starting server: addr=%s", cfg.Server.Addr)
		close(serverStartedCh)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	<-serverStartedCh
	// Give the server a moment to fully initialize
	time.Sleep(100 * time.Millisecond)

	executeHooks(cfg.Server.Hooks.OnStarted, "on_started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
	case <-sessionMgr.Done():
		zlog.Info().Msg("Session ended, shutting down...")
	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ends open WatchStatus streams so Shutdown does not wait on them
	sessionMgr.Close()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Msgf("Failed to shutdown server: %v", err)
	}

	zlog.Info().Msg("Server stopped")

	executeHooks(cfg.Server.Hooks.OnStopped, "on_stopped")

	return nil
}

// printConfig prints the effective configuration without secrets.
func printConfig(cfg *config.Config) {
	fmt.Println("Config OK")
	fmt.Printf("  %-16s %s\n", "server.addr", cfg.Server.Addr)
	fmt.Printf("  %-16s %s\n", "catalog.path", cfg.Catalog.Path)
	fmt.Printf("  %-16s %s (audio available: %t)\n", "sink.type", cfg.Sink.Type, audio.Available)
	fmt.Printf("  %-16s %.2f\n", "player.volume", cfg.Player.Volume())
	fmt.Printf("  %-16s %t\n", "player.looping", cfg.Player.IsLooping())
	fmt.Printf("  %-16s %t\n", "player.shuffled", cfg.Player.Shuffled)
	fmt.Printf("  %-16s %d\n", "player.history", cfg.Player.HistorySize)
	fmt.Printf("  %-16s %t\n", "spotify", cfg.HasSpotify())
}

// executeHooks runs a list of shell commands.
func executeHooks(hooks []string, stage string) {
	if len(hooks) == 0 {
		return
	}

	zlog.Info().Msgf("Executing %s hooks (%d commands)", stage, len(hooks))

	for _, hook := range hooks {
		zlog.Info().Msgf("Executing hook: %s", hook)
		// Use sh -c to allow shell features like redirection or pipes
		cmd := exec.Command("sh", "-c", hook)
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr

		if err := cmd.Run(); err != nil {
			zlog.Error().Err(err).Msgf("Failed to execute hook: %s", hook)
		}
	}
}
