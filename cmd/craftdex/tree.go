package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/udisondev/craftdex/internal/recipe"
	"github.com/udisondev/craftdex/internal/tree"
)

func newTreeCmd(a *app) *cobra.Command {
	var (
		quantity int
		plain    bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "tree <item-id>",
		Short: "Print the dependency tree of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			source, closeSource, err := a.openSource(ctx)
			if err != nil {
				return err
			}
			defer closeSource()

			builder := recipe.NewBuilder(source, a.cfg.Tree.MaxDepth)
			node, err := builder.BuildDependencyTree(ctx, args[0], quantity)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(node)
			}

			profile, err := a.cfg.Icons.Item.Profile("item")
			if err != nil {
				return err
			}
			view := tree.Render(node, tree.Options{
				Icons:    profile,
				IconSize: a.cfg.Tree.IconSize,
				IconLookup: func(itemID string) string {
					it, err := source.Item(ctx, itemID)
					if err != nil || it == nil {
						return itemID
					}
					return it.IconIdentifier()
				},
				MaxDepth: a.cfg.Tree.MaxDepth,
			})

			style := tree.DefaultStyle()
			if plain {
				style = tree.PlainStyle()
			}
			_, err = fmt.Fprint(out, tree.Text(view, style))
			return err
		},
	}

	cmd.Flags().IntVarP(&quantity, "quantity", "q", 1, "number of items to craft")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colors")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw dependency tree as JSON")
	return cmd
}
