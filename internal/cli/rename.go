package cli

import (
	"github.com/spf13/cobra"

	"github.com/AgentBurgundy/better-shopify-app-template/internal/files/filesystem"
	"github.com/AgentBurgundy/better-shopify-app-template/internal/logging"
	"github.com/AgentBurgundy/better-shopify-app-template/internal/rename"
	"github.com/AgentBurgundy/better-shopify-app-template/internal/tui"
	"github.com/AgentBurgundy/better-shopify-app-template/internal/ui"
	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

var renameCmd = &cobra.Command{
	Use:   "rename [name]",
	Short: "Rename the app's package scope",
	Long: `Rename the app from its current package scope (read from
packages/core/package.json, @myapp by default) to a new one.

The new name is normalised to a scoped form:
  acme                   → @acme   (packages become @acme/core, ...)
  mycompany/shopify-app  → @mycompany/shopify-app
  @acme/store            → @acme/store

Without a name argument you are prompted for one. The rename is only
applied after you confirm it, unless --yes is given.

Examples:
  shopkit rename
  shopkit rename acme
  shopkit rename acme --yes --root ./my-shop`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRename,
}

var renameYes bool

func init() {
	rootCmd.AddCommand(renameCmd)

	renameCmd.Flags().BoolVarP(&renameYes, "yes", "y", false, "Apply the rename without asking for confirmation")
}

func runRename(cmd *cobra.Command, args []string) error {
	root, err := getProjectRoot(cmd)
	if err != nil {
		return err
	}

	var requested string
	if len(args) == 1 {
		requested = args[0]
	}

	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	lines := ui.NewLinePrompter()

	var namePrompter shopkit.Prompter = lines
	if tui.IsInteractive() {
		namePrompter = tui.NewNamePrompter(func(s string) error {
			_, err := rename.Normalize(s)
			return err
		})
	}

	var approver shopkit.Approver
	if renameYes {
		approver = ui.NewForcedApprover()
	} else {
		approver = ui.NewInteractiveApprover(lines)
	}

	_, err = rename.NewRenamer(filesystem.NewOSFileSystem(root), logger, namePrompter, approver).
		Run(cmd.Context(), requested)
	return err
}
