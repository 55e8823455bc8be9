package main

import (
	"backoffice/internal/console"
	"backoffice/internal/controllers"
	"backoffice/internal/models"
	"backoffice/internal/view"

	"github.com/spf13/cobra"
)

func newOrdersCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "orders", Short: "Browse orders"}

	var (
		search         string
		expand         bool
		page, pageSize int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List all orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := e.client()
			if err != nil {
				return err
			}
			ctl := controllers.NewListController[models.Order](c.Orders(), e.options("order", nil))
			defer ctl.Close()
			ctl.SetSearch(search)
			if err := ctl.Mount(cmd.Context()); err != nil {
				return err
			}

			orders := ctl.View()
			var details map[string]view.OrderDetail
			if expand {
				details = make(map[string]view.OrderDetail, len(orders))
				for _, o := range orders {
					details[o.ID.String()] = view.NewOrderDetail(o)
				}
			}
			return console.Orders(cmd.OutOrStdout(), view.Paginate(view.OrderRows(orders), page, pageSize), details)
		},
	}
	list.Flags().StringVarP(&search, "search", "s", "", "case-insensitive search text")
	list.Flags().BoolVarP(&expand, "expand", "x", false, "show ordered items under each order")
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&pageSize, "page-size", view.DefaultPageSize, "10, 20 or 50")

	cmd.AddCommand(list)
	return cmd
}
