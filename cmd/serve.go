package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cyberes/diagnostico-relay/backend"
	"github.com/cyberes/diagnostico-relay/handler"
	"github.com/cyberes/diagnostico-relay/logging"
	"github.com/cyberes/diagnostico-relay/manager"
	"github.com/cyberes/diagnostico-relay/relay"
	"github.com/cyberes/diagnostico-relay/routes"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logging.GetLogger()

		if cliArgs.Debug {
			gin.SetMode(gin.DebugMode)
		} else {
			gin.SetMode(gin.ReleaseMode)
		}

		client := backend.NewBackendClient(cfg.TargetURL(),
			backend.WithTimeout(cfg.Timeout),
			backend.WithMaxResponseBytes(cfg.MaxResponseBytes))
		tracker := manager.NewTracker(time.Second)
		defer tracker.Shutdown()

		relayHandler := handler.NewRelayHandler(relay.New(client), tracker, cfg.FailureStatus)
		engine := routes.SetupRoutes(cfg, relayHandler, log)

		server := &http.Server{
			Addr:              cfg.ListenAddress,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srvErr := make(chan error, 1)
		go func() {
			log.Infof("Starting server on %s, relaying to %s", cfg.ListenAddress, client.TargetURL())
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				srvErr <- err
			}
			close(srvErr)
		}()

		select {
		case err := <-srvErr:
			if err != nil {
				log.Errorf("Server failed to start: %v", err)
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Infoln("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warnf("Server shutdown error: %v", err)
			return err
		}
		log.Infoln("Server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
