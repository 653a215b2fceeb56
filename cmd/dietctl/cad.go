package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"dietapp/internal/cad"
)

func (c *cli) cadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cad",
		Short: "Look up CAD codes",
	}

	search := &cobra.Command{
		Use:   "search [term]",
		Short: "List the codes whose name or code contains term, by category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.bundle(cmd.Context())
			if err != nil {
				return err
			}
			term := ""
			if len(args) == 1 {
				term = args[0]
			}
			groups := b.CAD.Search(term)

			out := cmd.OutOrStdout()
			if c.jsonOut {
				return writeJSON(out, groups)
			}
			if len(groups) == 0 {
				fmt.Fprintln(out, "Nessun codice trovato")
				return nil
			}
			for _, g := range groups {
				fmt.Fprintf(out, "%s\n", g.Category)
				for _, e := range g.Entries {
					fmt.Fprintf(out, "  %s  %s\n", e.Code, e.Name)
				}
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <code>",
		Short: "Print a CAD code with its base recipe and alternatives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := c.bundle(cmd.Context())
			if err != nil {
				return err
			}
			e, ok := b.CAD.Lookup(args[0])
			if !ok {
				return fmt.Errorf("CAD code %s not found", cad.NormalizeCode(args[0]))
			}

			out := cmd.OutOrStdout()
			if c.jsonOut {
				return writeJSON(out, e)
			}
			printEntry(out, e)
			return nil
		},
	}

	cmd.AddCommand(search, show)
	return cmd
}

func printEntry(w io.Writer, e *cad.Entry) {
	fmt.Fprintf(w, "%s %s\n", e.Code, e.Name)
	if e.Category != "" {
		fmt.Fprintf(w, "Categoria: %s\n", e.Category)
	}
	if e.Description != "" {
		fmt.Fprintln(w, e.Description)
	}
	if e.BaseRecipe != nil {
		fmt.Fprintln(w, "Ricetta base:")
		printIngredients(w, e.BaseRecipe.Ingredients)
	}
	for _, alt := range e.Alternatives {
		fmt.Fprintf(w, "Alternativa: %s\n", alt.Name)
		printIngredients(w, alt.Ingredients)
	}
}

func printIngredients(w io.Writer, ings []cad.Ingredient) {
	for _, ing := range ings {
		line := fmt.Sprintf("  - %s %g %s", ing.Name, ing.Quantity, strings.TrimSpace(ing.Unit))
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}
