package commands

import (
	"fsops/internal/tui/styles"
	"fsops/pkg/fileops"

	"github.com/spf13/cobra"
)

func newSwapCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "swap FIRST SECOND",
		Short: "Exchange the names of two files or directories",
		Long: `Exchange the names of FIRST and SECOND using a temporary name. If a later
rename fails, the earlier renames are rolled back.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := fileops.ResolvePath(args[0])
			if err != nil {
				return err
			}
			second, err := fileops.ResolvePath(args[1])
			if err != nil {
				return err
			}
			if err := a.manager.Swap(first, second); err != nil {
				return err
			}
			a.printf(cmd, "%s %s <-> %s\n",
				styles.SuccessStyle.Render("swapped:"),
				styles.PathStyle.Render(first),
				styles.PathStyle.Render(second))
			return nil
		},
	}
}

func newNextNameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "nextname PATH",
		Short: `Print the first free "name (N).ext" variant of PATH`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := fileops.ResolvePath(args[0])
			if err != nil {
				return err
			}
			next, err := a.manager.NextAvailableName(path)
			if err != nil {
				return err
			}
			a.printf(cmd, "%s\n", next)
			return nil
		},
	}
}

func newFirstCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "first PATH...",
		Short: "Print the first of the given paths that exists",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates := make([]string, 0, len(args))
			for _, arg := range args {
				path, err := fileops.ResolvePath(arg)
				if err != nil {
					return err
				}
				candidates = append(candidates, path)
			}
			found, err := a.manager.FirstExisting(candidates...)
			if err != nil {
				return err
			}
			a.printf(cmd, "%s\n", found)
			return nil
		},
	}
}
