package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/triagebot/internal/classifier"
	"github.com/ziadkadry99/triagebot/internal/config"
	"github.com/ziadkadry99/triagebot/internal/server"
	"github.com/ziadkadry99/triagebot/internal/triage"
	"github.com/ziadkadry99/triagebot/internal/zendesk"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the ticket webhook server",
	Long:  `Starts the HTTP server that accepts helpdesk webhook deliveries and runs the triage pipeline for each ticket.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if verbose {
			cfg.Debug = true
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		client := zendesk.NewClient(zendesk.Config{
			Subdomain: cfg.Zendesk.Subdomain,
			Email:     cfg.Zendesk.Email,
			APIToken:  cfg.Zendesk.APIToken,
		})

		cls := classifier.Choose(cfg)
		log.Printf("using %s classification strategy", cls.Name())

		processor := triage.NewProcessor(
			client,
			triage.NewGuard(client, cfg.Idempotency),
			cls,
			triage.NewResolver(cfg.ResponseMap, cfg.Debug),
			cfg.SupportStaffIDs(),
			cfg.Debug,
		)

		webhook := server.NewWebhookHandler(processor, cfg.Webhook.Secret)
		srv := server.New(cfg.Webhook.Port, webhook)

		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && err != http.ErrServerClosed {
				errCh <- err
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-sigCh:
			log.Printf("received %s, shutting down", sig)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
