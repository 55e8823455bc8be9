package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"backoffice/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
)

func newEventsCommand(e *env) *cobra.Command {
	var pattern string
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Print catalog and order events published by the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if e.cfg.RabbitMQURL == "" {
				return fmt.Errorf("RABBITMQ_URL is not set")
			}
			mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: e.cfg.RabbitMQURL})
			if err != nil {
				return err
			}
			defer mqClient.Close()

			out := cmd.OutOrStdout()
			err = mqClient.ConsumeEvents(pattern, func(msg amqp.Delivery) error {
				_, err := fmt.Fprintf(out, "%s %s %s\n", msg.Timestamp.Format("15:04:05"), msg.RoutingKey, msg.Body)
				return err
			})
			if err != nil {
				return err
			}

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit
			return nil
		},
	}
	cmd.Flags().StringVar(&pattern, "pattern", "#", "routing key pattern, e.g. product.*")
	return cmd
}
