package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"backoffice/internal/app"
	"backoffice/internal/config"
	"backoffice/internal/services"
	"backoffice/pkg/rabbitmq"

	"github.com/spf13/cobra"
)

func newServeCommand(e *env) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference REST backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := app.OpenDatabase(e.cfg)
			if err != nil {
				return err
			}

			// --- Events (optional) ---
			var events services.EventPublisher
			if e.cfg.RabbitMQURL != "" {
				mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: e.cfg.RabbitMQURL})
				if err != nil {
					return err
				}
				defer mqClient.Close()
				events = mqClient
			} else {
				log.Println("RABBITMQ_URL is empty. Events will not be published.")
			}

			images, err := app.OpenStorage(cmd.Context(), e.cfg)
			if err != nil {
				return err
			}
			log.Printf("Storing product images in %s", images)

			deps := app.GORMDeps(db, e.cfg, images, events)
			if seed {
				app.Seed(deps.Products, deps.Categories)
			}
			server := app.NewApp(deps)

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				log.Printf("Starting server on port %s", e.cfg.AppPort)
				errCh <- server.Listen(e.cfg.AppPort)
			}()

			select {
			case err := <-errCh:
				return err
			case <-quit:
			}
			log.Println("Shutting down server...")
			if err := server.Shutdown(); err != nil {
				log.Printf("Error during Fiber shutdown: %v", err)
			}
			log.Println("Server gracefully stopped")
			return nil
		},
	}
	cmd.Flags().StringP("port", "p", "", "listen address (env APP_PORT)")
	cmd.Flags().BoolVar(&seed, "seed", false, "seed an empty database with demo data")
	_ = e.v.BindPFlag(config.KeyAppPort, cmd.Flags().Lookup("port"))
	return cmd
}

var _ services.EventPublisher = (*rabbitmq.Client)(nil)
