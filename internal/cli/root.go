package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "shopkit",
	Short: "Tooling and backend for the Shopify app template",
	Long: asciiLogo + `

shopkit bootstraps, renames and serves a project created from the Shopify
app template.

  shopkit setup          check Node.js, npm and Yarn, then install dependencies
  shopkit rename [name]  rewrite the @myapp package scope across the project
  shopkit db migrate     create the shops and sessions tables
  shopkit serve          run the webhook and health endpoints

Exit Codes:
  0  - Success, or cancelled at a prompt
  1  - General error (invalid name, unexpected failure)
  2  - CLI usage error (invalid arguments or flags)
  10 - Invalid configuration
  11 - Database connection failed
  12 - Required tool (node, npm, yarn) missing`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, so prompts and the server
// stop when ctx is cancelled.
func ExecuteContext(ctx context.Context) error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("root", ".", "Project directory")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// getProjectRoot returns the --root directory after checking it exists.
func getProjectRoot(cmd *cobra.Command) (string, error) {
	root, err := cmd.Flags().GetString("root")
	if err != nil || root == "" {
		root = "."
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", fmt.Errorf("project directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project directory %s is not a directory", root)
	}
	return root, nil
}
