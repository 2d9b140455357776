package commands

import (
	"fsops/internal/tui/styles"
	"fsops/pkg/fileops"

	"github.com/spf13/cobra"
)

func newLockCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lock PATH",
		Short: "Create the advisory lock marker PATH.lock",
		Long: `Create the advisory lock marker "PATH.lock". PATH must exist. The lock is held
until "fsops unlock PATH" removes the marker; it only binds tools that check it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := fileops.ResolvePath(args[0])
			if err != nil {
				return err
			}
			handle, err := a.manager.Locker().Lock(path)
			if err != nil {
				return err
			}
			a.printf(cmd, "%s %s\n", styles.SuccessStyle.Render("locked:"), styles.PathStyle.Render(handle.MarkerPath))
			return nil
		},
	}
}

func newUnlockCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unlock PATH",
		Short: "Remove the advisory lock marker for PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := fileops.ResolvePath(args[0])
			if err != nil {
				return err
			}
			if err := a.manager.Locker().Unlock(path); err != nil {
				return err
			}
			a.printf(cmd, "%s %s\n", styles.SuccessStyle.Render("unlocked:"), styles.PathStyle.Render(path))
			return nil
		},
	}
}

func newLockedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "locked PATH",
		Short: "Print whether PATH is locked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := fileops.ResolvePath(args[0])
			if err != nil {
				return err
			}
			locked, err := a.manager.Locker().IsLocked(path)
			if err != nil {
				return err
			}
			a.printf(cmd, "%t\n", locked)
			return nil
		},
	}
}
