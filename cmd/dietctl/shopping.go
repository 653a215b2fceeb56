package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dietapp/internal/shopping"
)

func (c *cli) shoppingCmd() *cobra.Command {
	var sel shopping.Selection
	var mode string

	cmd := &cobra.Command{
		Use:   "shopping",
		Short: "Print the shopping list for a day, a range of days or a week",
		Example: `  dietctl shopping --week 1 --mode day --day lunedi
  dietctl shopping --week 2 --mode range --from lunedi --to mercoledi
  dietctl shopping --week 3 --mode week`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.bundle(cmd.Context())
			if err != nil {
				return err
			}

			sel.Mode = shopping.Mode(strings.ToLower(mode))
			res, err := shopping.Generate(sel, b.Plan, b.Products)
			if err != nil {
				return err
			}
			c.logger.Debug("shopping list generated",
				zap.String("list_key", sel.ListKey()),
				zap.Int("items", len(res.Items)),
				zap.Int("unparsed", len(res.Unparsed)))

			out := cmd.OutOrStdout()
			if c.jsonOut {
				return writeJSON(out, res)
			}

			fmt.Fprintf(out, "Lista %s\n", sel.ListKey())
			if len(res.Items) == 0 {
				fmt.Fprintln(out, "(vuota)")
			}
			for _, it := range res.Items {
				fmt.Fprintf(out, "- %s: %s\n", it.Name, shopping.FormatQuantities(it.Quantities))
			}
			if len(res.Unparsed) > 0 {
				fmt.Fprintf(out, "Senza quantità: %s\n", strings.Join(res.Unparsed, ", "))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&sel.Week, "week", "w", 1, "Week of the meal plan")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(shopping.ModeWeek), "day, range or week")
	cmd.Flags().StringVar(&sel.Day, "day", "", "Day for --mode day (lunedi..domenica)")
	cmd.Flags().StringVar(&sel.From, "from", "", "First day for --mode range")
	cmd.Flags().StringVar(&sel.To, "to", "", "Last day for --mode range")
	return cmd
}
