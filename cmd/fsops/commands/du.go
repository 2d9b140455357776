package commands

import (
	"fmt"
	"text/tabwriter"

	"fsops/internal/tui/styles"
	"fsops/pkg/fileops"

	"github.com/spf13/cobra"
)

type duFlags struct {
	maxDepth  int
	noHidden  bool
	listFiles bool
}

func newDuCmd(a *app) *cobra.Command {
	var flags duFlags

	cmd := &cobra.Command{
		Use:   "du DIR",
		Short: "Summarize the regular files under a directory",
		Long: `Walk DIR and report the number of regular files, their total size and the
largest file. Symlinked directories are not followed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := fileops.ResolvePath(args[0])
			if err != nil {
				return err
			}

			opts := fileops.DefaultScanOptions()
			opts.MaxDepth = flags.maxDepth
			opts.IncludeHidden = !flags.noHidden

			files, err := a.manager.ListFiles(root, opts)
			if err != nil {
				return err
			}

			if flags.listFiles {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
				for _, f := range files {
					fmt.Fprintf(w, "%d\t %s\n", f.Size, f.Path)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}

			stats := fileops.Stats(files)
			a.printf(cmd, "%s %d files, %d bytes (largest %d bytes)\n",
				styles.PathStyle.Render(root+":"),
				stats.TotalFiles, stats.TotalSize, stats.LargestFile)
			return nil
		},
	}

	cmd.Flags().IntVarP(&flags.maxDepth, "max-depth", "d", 0, "maximum directory depth, 1 = DIR only (0 = unlimited)")
	cmd.Flags().BoolVar(&flags.noHidden, "no-hidden", false, "skip files and directories starting with '.'")
	cmd.Flags().BoolVarP(&flags.listFiles, "files", "f", false, "list each file with its size")
	return cmd
}
