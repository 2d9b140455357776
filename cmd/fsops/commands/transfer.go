package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fsops/internal/tui"
	"fsops/internal/tui/styles"
	"fsops/pkg/fileops"

	"github.com/spf13/cobra"
)

type transferFlags struct {
	policy  string
	ask     bool
	parents bool
}

// newTransferCmd builds "mv" or "cp"; both share flags and conflict handling.
func newTransferCmd(a *app, op fileops.Operation) *cobra.Command {
	var flags transferFlags

	use, verb := "mv", "Move"
	if op == fileops.OpCopy {
		use, verb = "cp", "Copy"
	}

	cmd := &cobra.Command{
		Use:   use + " SOURCE... DESTINATION",
		Short: verb + " a file or directory, resolving an existing destination by policy",
		Long: fmt.Sprintf(`%s SOURCE to DESTINATION. If DESTINATION is an existing directory or ends
in a path separator, the source keeps its name inside it. With several sources,
DESTINATION must be a directory and each source is handled on its own.

When the destination already exists, the conflict policy decides what happens:
%s
The policy defaults to the config's default_policy. With --ask, an interactive
prompt lets you choose when a conflict is found.`, verb, policyHelp()),
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, destination := args[:len(args)-1], args[len(args)-1]
			if len(sources) == 1 {
				return a.runTransfer(cmd, op, flags, sources[0], destination)
			}
			return a.runBatchTransfer(cmd, op, flags, sources, destination)
		},
	}

	cmd.Flags().StringVarP(&flags.policy, "policy", "p", "", "conflict policy (fail, skip, overwrite, rename, larger, newer)")
	cmd.Flags().BoolVarP(&flags.ask, "ask", "i", false, "prompt for a policy when the destination exists")
	cmd.Flags().BoolVar(&flags.parents, "parents", false, "create missing destination directories")
	return cmd
}

func policyHelp() string {
	var b strings.Builder
	for _, p := range fileops.Policies {
		fmt.Fprintf(&b, "  %-10s %s\n", p.String(), p.Description())
	}
	return b.String()
}

// transferPolicy returns the --policy flag if given, else the configured default.
func (a *app) transferPolicy(flags transferFlags) (fileops.ConflictPolicy, error) {
	if flags.policy == "" {
		return a.manager.DefaultPolicy(), nil
	}
	return fileops.ParseConflictPolicy(flags.policy)
}

func (a *app) transferManager(flags transferFlags) *fileops.Manager {
	if flags.parents {
		return a.newManager(fileops.WithCreateParents(true))
	}
	return a.manager
}

func (a *app) runTransfer(cmd *cobra.Command, op fileops.Operation, flags transferFlags, source, destination string) error {
	src, err := fileops.ResolvePath(source)
	if err != nil {
		return err
	}
	dst, err := fileops.ResolvePath(destination)
	if err != nil {
		return err
	}
	if strings.HasSuffix(destination, string(filepath.Separator)) {
		dst += string(filepath.Separator)
	}
	if dst, err = fileops.DestinationPath(a.fs, src, dst); err != nil {
		return err
	}

	policy, err := a.transferPolicy(flags)
	if err != nil {
		return err
	}

	if flags.ask {
		if _, statErr := a.fs.Stat(dst); statErr == nil {
			info := tui.DescribeConflict(a.fs, op, src, dst)
			chosen, ok, err := tui.RunConflictPrompt(cmd.InOrStdin(), cmd.ErrOrStderr(), info, policy, a.logger)
			if err != nil {
				return err
			}
			if !ok {
				return ErrCancelled
			}
			policy = chosen
		}
	}

	result, err := a.transferManager(flags).Execute(fileops.OperationRequest{
		Op:          op,
		Source:      src,
		Destination: dst,
		Policy:      policy,
	})
	if err != nil {
		return err
	}

	a.printResult(cmd, op, src, dst, result)
	return nil
}

// runBatchTransfer handles "SOURCE... DIR". With --ask each source goes through the
// single-file path so conflicts can be prompted one at a time.
func (a *app) runBatchTransfer(cmd *cobra.Command, op fileops.Operation, flags transferFlags, sources []string, destination string) error {
	if flags.ask {
		var errs []error
		for _, src := range sources {
			err := a.runTransfer(cmd, op, flags, src, strings.TrimSuffix(destination, string(filepath.Separator))+string(filepath.Separator))
			if errors.Is(err, ErrCancelled) {
				return err
			}
			if err != nil {
				a.printf(cmd, "%s %s: %v\n", styles.ErrorStyle.Render("failed:"), styles.PathStyle.Render(src), err)
				errs = append(errs, err)
			}
		}
		return batchError(errs, len(sources))
	}

	dir, err := fileops.ResolvePath(destination)
	if err != nil {
		return err
	}
	resolved := make([]string, 0, len(sources))
	for _, src := range sources {
		path, err := fileops.ResolvePath(src)
		if err != nil {
			return err
		}
		resolved = append(resolved, path)
	}

	policy, err := a.transferPolicy(flags)
	if err != nil {
		return err
	}

	results, err := a.transferManager(flags).TransferInto(op, resolved, dir, policy)
	if err != nil {
		return err
	}

	var errs []error
	for _, src := range resolved {
		res := results[src]
		if res.Err != nil {
			a.printf(cmd, "%s %s: %v\n", styles.ErrorStyle.Render("failed:"), styles.PathStyle.Render(src), res.Err)
			errs = append(errs, res.Err)
			continue
		}
		a.printResult(cmd, op, src, res.Result.ResolvedPath, res.Result)
	}
	return batchError(errs, len(sources))
}

func batchError(errs []error, total int) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d transfers failed: %w", len(errs), total, errors.Join(errs...))
}

func (a *app) printResult(cmd *cobra.Command, op fileops.Operation, src, dst string, result fileops.OperationResult) {
	if result.Outcome == fileops.OutcomeSkipped {
		a.printf(cmd, "%s %s\n",
			styles.WarningStyle.Render("skipped:"),
			styles.PathStyle.Render(dst))
		return
	}
	a.printf(cmd, "%s %s -> %s\n",
		styles.SuccessStyle.Render(pastTense(op)+":"),
		styles.PathStyle.Render(src),
		styles.PathStyle.Render(result.ResolvedPath))
}

func pastTense(op fileops.Operation) string {
	if op == fileops.OpCopy {
		return "copied"
	}
	return "moved"
}
