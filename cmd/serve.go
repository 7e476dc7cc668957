package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/showcase/internal/config"
	"github.com/Zachkp/showcase/internal/contact"
	"github.com/Zachkp/showcase/internal/mailrelay"
	"github.com/Zachkp/showcase/internal/projects"
	"github.com/Zachkp/showcase/internal/store"
	"github.com/Zachkp/showcase/internal/telemetry"
	"github.com/Zachkp/showcase/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio site",
	Long: `The serve command starts the web server, arms carousel autoplay and,
when watch_projects is set, reloads the project file whenever it changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx, appConfig, slog.Default())
	},
}

func init() {
	serveCmd.Flags().String("port", "", "port to listen on (overrides config)")
	serveCmd.Flags().String("file", "", "project data file (.yaml or .toml)")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	gin.SetMode(cfg.Mode)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Warn("tracing shutdown", "err", err)
		}
	}()

	st, err := store.Open(cfg.Database.Path, web.NewToken())
	if err != nil {
		return err
	}
	defer st.Close()
	go cleanupLoop(ctx, st, cfg.Database.Retention, log)

	transport, err := mailrelay.New(cfg.Relay)
	if err != nil {
		// The site stays up; every send fails and visitors see the error notice.
		log.Error("mail relay unavailable", "provider", cfg.Relay.Provider, "err", err)
		relayErr := err
		transport = contact.TransportFunc(func(context.Context, contact.Message) error { return relayErr })
	}

	entries, err := projects.Resolve(cfg.ProjectsFile)
	if err != nil {
		return err
	}

	srv, err := web.New(web.Options{
		Config:    cfg,
		Projects:  entries,
		Transport: transport,
		Store:     st,
		Logger:    log,
	})
	if err != nil {
		return err
	}
	defer srv.Close()
	go srv.Run(ctx)

	if cfg.WatchFile && cfg.ProjectsFile != "" {
		go func() {
			err := projects.Watch(ctx, cfg.ProjectsFile, 250*time.Millisecond, func(entries []projects.Entry) {
				if err := srv.SetProjects(entries); err != nil {
					log.Error("reloading projects", "err", err)
					return
				}
				log.Info("projects reloaded", "count", len(entries))
			})
			if err != nil {
				log.Error("project watcher stopped", "err", err)
			}
		}()
	}

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", httpSrv.Addr, "projects", len(entries), "relay", cfg.Relay.Provider)
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(sctx)
}

// cleanupLoop enforces the visitor retention period once a day.
func cleanupLoop(ctx context.Context, st *store.Store, retention time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		removed, err := st.Cleanup(ctx, retention)
		if err != nil {
			log.Warn("visitor cleanup failed", "err", err)
		} else if removed > 0 {
			log.Info("removed old visitor records", "count", removed)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
