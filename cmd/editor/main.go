package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/codearena/internal/app"
	"github.com/KirkDiggler/codearena/internal/autosave"
	"github.com/KirkDiggler/codearena/internal/config"
	"github.com/KirkDiggler/codearena/internal/editor"
	"github.com/KirkDiggler/codearena/internal/models"
	"github.com/KirkDiggler/codearena/internal/reconcile"
	arenaService "github.com/KirkDiggler/codearena/internal/services/arena"
	"github.com/KirkDiggler/codearena/internal/transport"
)

var (
	roomID     string
	createName string
	userID     string
	userName   string
	filePath   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "codearena-editor",
		Short: "Mirror an arena room's shared buffer into a local file",
		Long: `Joins a room and keeps FILE in sync with the shared buffer. Saving the
file submits your change; edits outside your region are rolled back.`,
		RunE: run,
	}

	rootCmd.Flags().StringVar(&roomID, "room", "", "room ID to join")
	rootCmd.Flags().StringVar(&createName, "create", "", "create a room with this name instead of joining")
	rootCmd.Flags().StringVar(&userID, "user", "", "participant ID")
	rootCmd.Flags().StringVar(&userName, "name", "", "display name (defaults to the participant ID)")
	rootCmd.Flags().StringVar(&filePath, "file", "arena.js", "local file mirroring the buffer")
	_ = rootCmd.MarkFlagRequired("user")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if roomID == "" && createName == "" {
		return fmt.Errorf("either --room or --create is required")
	}
	if userName == "" {
		userName = userID
	}
	me := models.Participant{ID: userID, Name: userName}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("Error closing connections", zap.Error(err))
		}
	}()

	if createName != "" {
		created, err := a.ArenaService.CreateRoom(ctx, &arenaService.CreateRoomInput{Name: createName, Creator: me})
		if err != nil {
			return fmt.Errorf("failed to create room: %w", err)
		}
		roomID = created.Room.ID
		fmt.Fprintf(cmd.OutOrStdout(), "Created room %s\n", roomID)
	} else if _, err := a.ArenaService.JoinRoom(ctx, &arenaService.JoinRoomInput{RoomID: roomID, Participant: me}); err != nil {
		return fmt.Errorf("failed to join room: %w", err)
	}

	mesh, err := a.Transport()
	if err != nil {
		logger.Warn("Transport unavailable, editing solo", zap.Error(err))
		mesh = transport.NewMemoryHub()
	}

	widget := newFileWidget(filePath, logger)
	session, err := editor.New(&editor.Config{
		RoomID:       roomID,
		Participant:  me,
		Arena:        a.ArenaService,
		Snapshots:    a.SnapshotRepo,
		Transport:    mesh,
		Widget:       widget,
		PollInterval: cfg.PollInterval,
		QuietPeriod:  cfg.QuietPeriod,
		OnReject: func(r reconcile.Rejection) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Rolled back: %s\n", r.Decision.Reason)
		},
		OnStatus: func(status autosave.Status) {
			logger.Debug("Autosave", zap.String("status", string(status)))
		},
		OnPeers: func(peers map[string]transport.PeerInfo) {
			fmt.Fprintf(cmd.OutOrStdout(), "%d peers in the room\n", len(peers))
		},
		OnChat: func(from, text string) {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", from, text)
		},
		Logger: logger,
	})
	if err != nil {
		return err
	}
	if err := session.Start(ctx); err != nil {
		return err
	}

	widget.Watch(ctx, 250*time.Millisecond, func(text string) {
		session.HandleLocalChange(text)
	})

	closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return session.Close(closeCtx)
}
