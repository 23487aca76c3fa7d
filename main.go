package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/coreybb/newsdash/api"
	"github.com/coreybb/newsdash/config"
	"github.com/coreybb/newsdash/dashboard"
	"github.com/coreybb/newsdash/delivery"
	"github.com/coreybb/newsdash/ebook"
	"github.com/coreybb/newsdash/loader"
	"github.com/coreybb/newsdash/render"
	rh "github.com/coreybb/newsdash/route-handlers"
	"github.com/coreybb/newsdash/scheduler"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 15 * time.Second
	startupTimeout  = 30 * time.Second
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "newsdash",
	Short:         "AI news dashboard",
	Long:          "Serves and renders a filterable dashboard over the aggregated AI news feed.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	RunE:  runServe,
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.AddCommand(serveCmd, renderCmd, listCmd, exportCmd, digestCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app holds the components shared by every command.
type app struct {
	cfg      *config.Config
	snapshot *loader.Snapshot
	renderer *render.Renderer
	views    dashboard.Factory
}

func setup() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	setupLogging(cfg.LogLevel)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	snapshot := loader.NewSnapshot(loader.New(cfg.DataSource, cfg.FetchTimeout, loader.WithLocation(loc)))
	renderer := render.NewRenderer(loc)

	return &app{
		cfg:      cfg,
		snapshot: snapshot,
		renderer: renderer,
		views:    dashboard.Factory{Loader: snapshot, Renderer: renderer},
	}, nil
}

// setupLogging routes slog and the standard logger through charmbracelet/log.
func setupLogging(level string) {
	lvl, err := charmlog.ParseLevel(level)
	if err != nil {
		lvl = charmlog.InfoLevel
	}
	handler := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           lvl,
	})
	slog.SetDefault(slog.New(handler))
}

func (a *app) digestService() *delivery.DigestService {
	mail := a.cfg.Mail
	if !mail.SMTP().Configured() {
		return nil
	}
	sender, err := delivery.NewSMTPSender(mail.SMTP())
	if err != nil {
		log.Printf("WARNING: Digest delivery disabled: %v", err)
		return nil
	}
	return delivery.NewDigestService(sender, mail.FromName, mail.Address, mail.Recipients)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}

	// The feed is fetched once for the life of the process.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), startupTimeout)
	if _, err := a.snapshot.Load(loadCtx); err != nil {
		log.Printf("ERROR: Initial load failed, dashboard will show an error: %v", err)
	}
	cancelLoad()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.cfg.Watch {
		if fl, ok := loader.New(a.cfg.DataSource, a.cfg.FetchTimeout).(*loader.FileLoader); ok {
			go func() {
				if err := loader.Watch(ctx, fl.Path(), a.snapshot); err != nil {
					log.Printf("ERROR: Data file watch stopped: %v", err)
				}
			}()
		} else {
			log.Println("WARNING: watch is only supported for local data files")
		}
	}

	composer := delivery.NewComposer(a.renderer)
	digests := a.digestService()

	apiRouter := api.SetupRoutes(
		rh.NewDashboardHandler(a.views),
		rh.NewNewsHandler(a.views),
		rh.NewExportHandler(a.views, ebook.NewEditionGenerator(a.renderer)),
		rh.NewDigestHandler(a.views, composer, digests),
		a.snapshot,
	)

	mainRouter := chi.NewRouter()
	mainRouter.Mount("/", apiRouter)
	if digests != nil {
		loc, _ := a.cfg.Location()
		digestScheduler := scheduler.New(a.views, composer, digests, loc, a.cfg.Mail.DigestHour)
		mainRouter.Post("/scheduler/tick", digestScheduler.HandleTick)
	}

	return startServer(ctx, a.cfg.Port, mainRouter)
}

func startServer(ctx context.Context, port string, router http.Handler) error {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
	return nil
}
