package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/StickCut/internal/model"
	"github.com/piwi3910/StickCut/internal/project"
)

// newSampleCmd creates the sample command which writes a ready-to-run
// project file built from the default inventory and a product template.
func newSampleCmd() *cobra.Command {
	var output string
	var template string
	var units int
	var stockQty int

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a sample project file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(cmd.Context(), output, template, units, stockQty)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "sample-project.json", "output path")
	cmd.Flags().StringVarP(&template, "template", "t", "Euro pallet", "product template name")
	cmd.Flags().IntVarP(&units, "units", "u", 5, "number of product units")
	cmd.Flags().IntVar(&stockQty, "stock-qty", 25, "quantity per inventory stock row")

	return cmd
}

func runSample(ctx context.Context, output, template string, units, stockQty int) error {
	logger := loggerFromContext(ctx)

	var tpl *model.ProductTemplate
	store := model.DefaultTemplates()
	for i := range store.Templates {
		if store.Templates[i].Name == template {
			tpl = &store.Templates[i]
			break
		}
	}
	if tpl == nil {
		names := make([]string, 0, len(store.Templates))
		for _, t := range store.Templates {
			names = append(names, t.Name)
		}
		return fmt.Errorf("unknown template %q, available: %v", template, names)
	}

	proj := model.NewProject()
	proj.Name = fmt.Sprintf("%s x%d", tpl.Name, units)
	for _, p := range model.DefaultInventory().Stocks {
		proj.Inventory = append(proj.Inventory, p.ToLumberStock(stockQty))
	}
	proj.Parts = tpl.Expand(units)

	if err := project.SaveProject(output, proj); err != nil {
		return err
	}

	logger.Info("wrote sample project",
		"path", output,
		"template", tpl.Name,
		"units", units,
		"parts", len(proj.Parts),
	)
	return nil
}
