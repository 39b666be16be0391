package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/udisondev/craftdex/internal/icon"
)

func newIconCmd(a *app) *cobra.Command {
	var (
		profileName string
		legacy      bool
	)

	cmd := &cobra.Command{
		Use:   "icon <identifier> [size]",
		Short: "Resolve an icon identifier to a sized asset path",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := a.profiles()
			if err != nil {
				return err
			}
			profile, ok := profiles[profileName]
			if !ok {
				return fmt.Errorf("unknown icon profile %q", profileName)
			}

			size := a.cfg.Tree.IconSize
			if len(args) == 2 {
				size, err = strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid size %q", args[1])
				}
			}

			var ref *icon.Reference
			if legacy {
				ref = profile.ResolveLegacy(args[0])
			} else {
				ref = profile.Resolve(args[0], size)
			}
			if ref == nil {
				return fmt.Errorf("no icon for %q", args[0])
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), ref.URL())
			return err
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "item", "icon profile: item or large")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "resolve the legacy full-size asset")
	return cmd
}
