package cli

import (
	"github.com/spf13/cobra"

	"github.com/AgentBurgundy/better-shopify-app-template/internal/logging"
	"github.com/AgentBurgundy/better-shopify-app-template/internal/setup"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Check prerequisites and install dependencies",
	Long: `Prepare a fresh checkout for development:

  [1/4] check that Node.js is installed (18+ recommended)
  [2/4] check that npm is installed
  [3/4] enable Corepack and make sure Yarn is available
  [4/4] run yarn install in the project directory`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	root, err := getProjectRoot(cmd)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(getVerboseFlag(cmd))
	return setup.New(setup.NewExecRunner(root), logger).Run(cmd.Context())
}
