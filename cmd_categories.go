package main

import (
	"fmt"
	"io"

	"backoffice/internal/client"
	"backoffice/internal/console"
	"backoffice/internal/controllers"
	"backoffice/internal/forms"
	"backoffice/internal/models"
	"backoffice/internal/view"

	"github.com/spf13/cobra"
)

func (e *env) categoryController() (*controllers.ListController[models.Category], *client.Categories, error) {
	c, err := e.client()
	if err != nil {
		return nil, nil, err
	}
	categories := c.Categories()
	return controllers.NewListController[models.Category](categories, e.options("category", categories)), categories, nil
}

// categoryTable renders the controller's view with selected rows checked.
func categoryTable(w io.Writer, ctl *controllers.ListController[models.Category]) error {
	return console.Categories(w, view.CategoryRows(ctl.View()), func(r view.CategoryRow) bool {
		return ctl.IsSelected(r.ID)
	})
}

func newCategoriesCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{Use: "categories", Short: "Manage product categories"}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, _, err := e.categoryController()
			if err != nil {
				return err
			}
			defer ctl.Close()
			ctl.SetSearch(search)
			if err := ctl.Mount(cmd.Context()); err != nil {
				return err
			}
			return categoryTable(cmd.OutOrStdout(), ctl)
		},
	}
	list.Flags().StringVarP(&search, "search", "s", "", "case-insensitive search text")

	var values forms.CategoryValues
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, categories, err := e.categoryController()
			if err != nil {
				return err
			}
			defer ctl.Close()
			form := forms.NewCategoryForm(categories, ctl, e.logger)
			form.Set(values)
			if _, err := form.Submit(cmd.Context()); err != nil {
				return submitError(e, err)
			}
			e.notify.Success("Category added successfully")
			return categoryTable(cmd.OutOrStdout(), ctl)
		},
	}
	add.Flags().StringVar(&values.Name, "name", "", "category name")
	add.Flags().StringVar(&values.Description, "description", "", "category description")

	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, categories, err := e.categoryController()
			if err != nil {
				return err
			}
			defer ctl.Close()
			if err := ctl.Mount(cmd.Context()); err != nil {
				return err
			}
			current, ok := findByID(ctl.Items(), models.ID(args[0]))
			if !ok {
				return fmt.Errorf("category %s not found", args[0])
			}
			form := forms.NewCategoryForm(categories, ctl, e.logger)
			form.Edit(current)
			merged := form.Values()
			if cmd.Flags().Changed("name") {
				merged.Name = values.Name
			}
			if cmd.Flags().Changed("description") {
				merged.Description = values.Description
			}
			form.Set(merged)
			if _, err := form.Submit(cmd.Context()); err != nil {
				return submitError(e, err)
			}
			e.notify.Success("Category updated successfully")
			return categoryTable(cmd.OutOrStdout(), ctl)
		},
	}
	edit.Flags().StringVar(&values.Name, "name", "", "category name")
	edit.Flags().StringVar(&values.Description, "description", "", "category description")

	del := &cobra.Command{
		Use:   "delete ID...",
		Short: "Delete one or more categories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, _, err := e.categoryController()
			if err != nil {
				return err
			}
			defer ctl.Close()
			if err := ctl.Mount(cmd.Context()); err != nil {
				return err
			}
			// Ids that failed to delete stay selected and are shown checked.
			deleteErr := bulkDelete(cmd.Context(), ctl, args)
			if err := categoryTable(cmd.OutOrStdout(), ctl); err != nil {
				return err
			}
			return deleteErr
		},
	}

	cmd.AddCommand(list, add, edit, del)
	return cmd
}
