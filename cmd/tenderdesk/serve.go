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

	"github.com/spf13/cobra"

	"github.com/tenderdesk/tenderdesk/internal/api"
	"github.com/tenderdesk/tenderdesk/internal/handler"
)

var (
	inviteGCInterval time.Duration
	inviteRetention  time.Duration
)

func init() {
	serveCmd.Flags().DurationVar(&inviteGCInterval, "invite-gc-interval", time.Hour, "How often expired invites are purged (0 disables)")
	serveCmd.Flags().DurationVar(&inviteRetention, "invite-retention", 30*24*time.Hour, "How long expired invites are kept")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	router := api.NewRouter(api.Deps{
		Logger:  logger,
		Tokens:  a.tokens,
		Users:   a.users,
		Tenants: a.tenants,
		Handlers: api.Handlers{
			Auth:          handler.NewAuthHandler(a.users, a.registration),
			Tenant:        handler.NewTenantHandler(a.tenants, cfg.Server.SecureCookies),
			Invite:        handler.NewInviteHandler(a.invites),
			Company:       handler.NewCompanyHandler(a.companies, a.memberships),
			ClientCompany: handler.NewClientCompanyHandler(a.clients),
			Tender:        handler.NewTenderHandler(a.tenders),
			Knowledge:     handler.NewKnowledgeHandler(a.knowledge),
			Bid:           handler.NewBidHandler(a.bids),
			Registry:      handler.NewRegistryHandler(a.registry),
			AuditLog:      handler.NewAuthzAuditLogHandler(a.auditLog),
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
		// AI drafting waits on the upstream model.
		RequestTimeout: cfg.UpstreamTimeout + 20*time.Second,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if inviteGCInterval > 0 {
		go collectInvites(ctx, a, inviteGCInterval, inviteRetention)
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "version", version)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		logger.Info("shutdown started")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

func collectInvites(ctx context.Context, a *app, interval, retention time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := a.invites.GarbageCollect(ctx, retention); err != nil {
				slog.ErrorContext(ctx, "Invite garbage collection failed", "error", err)
			}
		}
	}
}
