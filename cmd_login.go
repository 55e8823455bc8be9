package main

import (
	"backoffice/internal/forms"

	"github.com/spf13/cobra"
)

func newLoginCommand(e *env) *cobra.Command {
	var values forms.LoginValues
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Submit the login form (recorded locally only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := forms.NewLoginForm(e.logger).Submit(values); err != nil {
				return submitError(e, err)
			}
			e.notify.Success("Login successful!")
			return nil
		},
	}
	cmd.Flags().StringVarP(&values.Username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&values.Password, "password", "P", "", "password")
	return cmd
}
