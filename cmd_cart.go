package main

import (
	"fmt"
	"strconv"
	"strings"

	"backoffice/internal/cart"
	"backoffice/internal/console"
	"backoffice/internal/models"
	"backoffice/internal/view"

	"github.com/spf13/cobra"
)

// parseCartItem reads "id:name:price[:qty]".
func parseCartItem(s string) (models.CartItem, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 3 || len(parts) > 4 {
		return models.CartItem{}, fmt.Errorf("item %q: want id:name:price[:qty]", s)
	}
	price, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return models.CartItem{}, fmt.Errorf("item %q: invalid price", s)
	}
	qty := 1
	if len(parts) == 4 {
		if qty, err = strconv.Atoi(parts[3]); err != nil {
			return models.CartItem{}, fmt.Errorf("item %q: invalid quantity", s)
		}
	}
	return models.CartItem{ID: models.ID(parts[0]), Name: parts[1], Price: price, Quantity: qty}, nil
}

func newCartCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "cart", Short: "Build a cart and check it out"}

	var (
		items    []string
		customer cart.Customer
		dryRun   bool
	)
	checkout := &cobra.Command{
		Use:   "checkout",
		Short: "Show the cart and place it as an order",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := cart.New()
			for _, raw := range items {
				item, err := parseCartItem(raw)
				if err != nil {
					return err
				}
				if err := sc.Add(item); err != nil {
					return fmt.Errorf("item %q: %w", raw, err)
				}
			}
			if err := console.Cart(cmd.OutOrStdout(), view.NewCartSummary(sc.Items())); err != nil {
				return err
			}
			if dryRun {
				return nil
			}
			c, err := e.client()
			if err != nil {
				return err
			}
			order, err := sc.Checkout(cmd.Context(), c.Orders(), customer)
			if err != nil {
				e.notify.Error(err.Error())
				return err
			}
			e.notify.Success(fmt.Sprintf("Order %s placed", order.ID))
			return nil
		},
	}
	checkout.Flags().StringArrayVar(&items, "item", nil, "cart line as id:name:price[:qty], repeatable")
	checkout.Flags().StringVar(&customer.FirstName, "first-name", "", "customer first name")
	checkout.Flags().StringVar(&customer.LastName, "last-name", "", "customer last name")
	checkout.Flags().StringVar(&customer.City, "city", "", "delivery city")
	checkout.Flags().StringVar(&customer.Phone, "phone", "", "contact phone")
	checkout.Flags().StringVar(&customer.Address, "address", "", "delivery address")
	checkout.Flags().StringVar(&customer.PaymentMethod, "payment", models.PaymentCash, "payment method")
	checkout.Flags().BoolVar(&dryRun, "dry-run", false, "only show the cart")

	cmd.AddCommand(checkout)
	return cmd
}
