package main

import (
	"fmt"
	"log/slog"
	"os"

	"backoffice/internal/client"
	"backoffice/internal/config"
	"backoffice/internal/console"
	"backoffice/internal/controllers"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// env carries what every subcommand needs.
type env struct {
	v      *viper.Viper
	cfg    config.Config
	logger *slog.Logger
	notify *console.Notifier
}

func (e *env) client() (*client.Client, error) {
	return client.New(client.Config{BaseURL: e.cfg.APIBaseURL, Logger: e.logger})
}

func (e *env) options(entity string, deleter controllers.Deleter) controllers.Options {
	return controllers.Options{
		Entity:   entity,
		Plural:   pluralOf(entity),
		Deleter:  deleter,
		Notifier: e.notify,
		Logger:   e.logger,
	}
}

func pluralOf(entity string) string {
	if entity == "category" {
		return "categories"
	}
	return entity + "s"
}

func newRootCommand() *cobra.Command {
	e := &env{v: viper.New(), notify: &console.Notifier{Out: os.Stderr}}
	config.SetDefaults(e.v)

	root := &cobra.Command{
		Use:           "backoffice",
		Short:         "E-commerce back-office console",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(e.v)
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = cfg.NewLogger()
			slog.SetDefault(e.logger)
			return nil
		},
	}
	root.PersistentFlags().String("api", "", "backend base URL (env API_BASE_URL)")
	root.PersistentFlags().String("log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
	_ = e.v.BindPFlag(config.KeyAPIBaseURL, root.PersistentFlags().Lookup("api"))
	_ = e.v.BindPFlag(config.KeyLogLevel, root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		newServeCommand(e),
		newProductsCommand(e),
		newCategoriesCommand(e),
		newOrdersCommand(e),
		newCartCommand(e),
		newLoginCommand(e),
		newEventsCommand(e),
	)
	return root
}

func main() {
	config.LoadDotEnv()
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
