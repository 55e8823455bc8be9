package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"backoffice/internal/client"
	"backoffice/internal/console"
	"backoffice/internal/controllers"
	"backoffice/internal/forms"
	"backoffice/internal/models"
	"backoffice/internal/view"

	"github.com/spf13/cobra"
)

func (e *env) productController() (*controllers.ListController[models.Product], *client.Products, error) {
	c, err := e.client()
	if err != nil {
		return nil, nil, err
	}
	products := c.Products()
	return controllers.NewListController[models.Product](products, e.options("product", products)), products, nil
}

func newProductsCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "Manage the product catalog"}

	var (
		search, category, sortBy string
		page, pageSize           int
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, _, err := e.productController()
			if err != nil {
				return err
			}
			defer ctl.Close()
			ctl.SetSearch(search)
			ctl.SetFilter(view.CategoryFilter(category))
			ctl.SetSort(view.ProductOrder(sortBy))
			if err := ctl.Mount(cmd.Context()); err != nil {
				return err
			}
			rows := view.ProductRows(ctl.View())
			return console.Products(cmd.OutOrStdout(), view.Paginate(rows, page, pageSize))
		},
	}
	list.Flags().StringVarP(&search, "search", "s", "", "case-insensitive search text")
	list.Flags().StringVar(&category, "category", "", "only show this category")
	list.Flags().StringVar(&sortBy, "sort", "", "name, price or stock; prefix with - for descending")
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().IntVar(&pageSize, "page-size", view.DefaultPageSize, "10, 20 or 50")

	var (
		values          forms.ProductValues
		features, specs string
		imagePath       string
	)
	bindValues := func(c *cobra.Command) {
		c.Flags().StringVar(&values.Name, "name", "", "product name")
		c.Flags().StringVar(&values.Category, "category", "", fmt.Sprintf("one of %v", forms.Categories))
		c.Flags().Float64Var(&values.Price, "price", 0, "price, 100 to 10,000,000")
		c.Flags().IntVar(&values.Stock, "stock", 0, "stock quantity")
		c.Flags().Float64Var(&values.Rating, "rating", 0, "rating 0-5, one decimal")
		c.Flags().IntVar(&values.Reviews, "reviews", 0, "review count")
		c.Flags().StringVar(&values.Description, "description", "", "description, 20 to 1000 characters")
		c.Flags().StringVar(&features, "features", "", "features, one per line")
		c.Flags().StringVar(&specs, "specs", "", "specifications as \"key: value\" lines")
	}
	prepare := func() error {
		values.Features = models.ParseFeatureList(features)
		parsed, err := models.ParseSpecMap(specs)
		if err != nil {
			return fmt.Errorf("invalid --specs: %w", err)
		}
		values.Specs = parsed
		if imagePath != "" {
			data, err := os.ReadFile(imagePath)
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}
			values.Image = &forms.Image{Filename: filepath.Base(imagePath), Data: data}
		}
		return nil
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := prepare(); err != nil {
				return err
			}
			ctl, products, err := e.productController()
			if err != nil {
				return err
			}
			defer ctl.Close()
			form := forms.NewProductForm(products, ctl, e.logger)
			form.Set(values)
			saved, err := form.Submit(cmd.Context())
			if err != nil {
				return submitError(e, err)
			}
			e.notify.Success("Product added successfully!")
			return console.Products(cmd.OutOrStdout(), view.Paginate(view.ProductRows([]models.Product{*saved}), 1, 10))
		},
	}
	bindValues(add)
	add.Flags().StringVar(&imagePath, "image", "", "path of the product image")

	update := &cobra.Command{
		Use:   "update ID",
		Short: "Update a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, products, err := e.productController()
			if err != nil {
				return err
			}
			defer ctl.Close()
			if err := ctl.Mount(cmd.Context()); err != nil {
				return err
			}
			current, ok := findByID(ctl.Items(), models.ID(args[0]))
			if !ok {
				return fmt.Errorf("product %s not found", args[0])
			}
			form := forms.NewProductForm(products, ctl, e.logger)
			form.Edit(current)
			merged := form.Values()
			if err := prepare(); err != nil {
				return err
			}
			overlayProduct(cmd, &merged, values)
			form.Set(merged)
			if _, err := form.Submit(cmd.Context()); err != nil {
				return submitError(e, err)
			}
			e.notify.Success("Product updated successfully")
			return nil
		},
	}
	bindValues(update)

	del := &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete one or more products",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, _, err := e.productController()
			if err != nil {
				return err
			}
			defer ctl.Close()
			return bulkDelete(cmd.Context(), ctl, args)
		},
	}

	cmd.AddCommand(list, add, update, del)
	return cmd
}

// overlayProduct copies the flags the user actually set onto dst.
func overlayProduct(cmd *cobra.Command, dst *forms.ProductValues, src forms.ProductValues) {
	f := cmd.Flags()
	if f.Changed("name") {
		dst.Name = src.Name
	}
	if f.Changed("category") {
		dst.Category = src.Category
	}
	if f.Changed("price") {
		dst.Price = src.Price
	}
	if f.Changed("stock") {
		dst.Stock = src.Stock
	}
	if f.Changed("rating") {
		dst.Rating = src.Rating
	}
	if f.Changed("reviews") {
		dst.Reviews = src.Reviews
	}
	if f.Changed("description") {
		dst.Description = src.Description
	}
	if f.Changed("features") {
		dst.Features = src.Features
	}
	if f.Changed("specs") {
		dst.Specs = src.Specs
	}
}

func findByID[T controllers.Record](items []T, id models.ID) (T, bool) {
	for _, item := range items {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// bulkDelete selects ids and deletes them as one batch.
func bulkDelete[T controllers.Record](ctx context.Context, ctl *controllers.ListController[T], ids []string) error {
	for _, id := range ids {
		ctl.Select(models.ID(id))
	}
	res, err := ctl.BulkDelete(ctx)
	if err != nil {
		for id, failure := range res.Failed {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", id, client.Message(failure))
		}
		return fmt.Errorf("%d of %d deletes failed", len(res.Failed), len(ids))
	}
	return nil
}

// submitError prints field errors for a validation failure and returns err.
func submitError(e *env, err error) error {
	var ve *forms.ValidationError
	if errors.As(err, &ve) {
		for field, msg := range ve.Fields {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
		}
		return err
	}
	e.notify.Error(client.Message(err))
	return err
}
