// Package setup prepares a fresh checkout of the template for development:
// it checks the Node.js toolchain, makes Yarn available and installs the
// workspace dependencies.
package setup

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// NextSteps are printed after a successful setup.
var NextSteps = []string{
	"Rename your app:\n     yarn rename",
	"Copy apps/shopify-app/env.example to apps/shopify-app/.env",
	"Edit .env with your Shopify credentials",
	"Set up your database:\n     yarn db:generate\n     yarn db:migrate",
	"Start development:\n     yarn dev",
}

// Setup runs the bootstrap steps.
type Setup struct {
	runner Runner
	logger shopkit.Logger
	goos   string
}

// New creates a Setup for the current operating system.
func New(runner Runner, logger shopkit.Logger) *Setup {
	return &Setup{runner: runner, logger: logger, goos: runtime.GOOS}
}

// WithOS overrides the operating system used for install hints.
func (s *Setup) WithOS(goos string) *Setup {
	s.goos = goos
	return s
}

// Run checks the prerequisites and installs dependencies. Missing tools
// yield an error matching shopkit.ErrPrerequisiteMissing.
func (s *Setup) Run(ctx context.Context) error {
	s.logger.Info("Shopify App Template Setup")
	s.logger.Info("Detected OS: %s", osName(s.goos))
	s.logger.Info("")

	steps := []struct {
		title string
		run   func(context.Context) error
	}{
		{"Checking for Node.js...", s.checkNode},
		{"Checking for npm...", s.checkNpm},
		{"Setting up Yarn...", s.setupYarn},
		{"Installing project dependencies...", s.install},
	}

	for i, step := range steps {
		s.logger.Info("[%d/%d] %s", i+1, len(steps), step.title)
		if err := step.run(ctx); err != nil {
			return err
		}
		s.logger.Info("")
	}

	s.logger.Success("Setup completed successfully!")
	s.logger.Info("")
	s.logger.Info("Next steps:")
	for i, step := range NextSteps {
		s.logger.Info("  %d. %s", i+1, step)
	}
	s.logger.Info("")
	s.logger.Info("See README.md for detailed instructions")
	return nil
}

func (s *Setup) checkNode(ctx context.Context) error {
	if _, err := s.runner.LookPath("node"); err != nil {
		s.logger.Error("Node.js is not installed")
		s.logger.Info("")
		s.logger.Info("Please install Node.js before continuing:")
		for _, line := range nodeInstallHints(s.goos) {
			s.logger.Info("%s", line)
		}
		s.logger.Info("")
		s.logger.Info("After installation, close this terminal, open a new one, and run setup again.")
		return fmt.Errorf("%w: node", shopkit.ErrPrerequisiteMissing)
	}

	version, err := s.runner.Output(ctx, "node", "--version")
	if err != nil {
		return fmt.Errorf("%w: node --version failed: %v", shopkit.ErrPrerequisiteMissing, err)
	}
	s.logger.Success("Node.js is installed: %s", version)

	if major, ok := ParseNodeMajor(version); ok && major < shopkit.MinNodeMajorVersion {
		s.logger.Warn("Node.js %d+ is recommended. Current: %s", shopkit.MinNodeMajorVersion, version)
		s.logger.Info("  Please upgrade Node.js from: https://nodejs.org/")
	}
	return nil
}

func (s *Setup) checkNpm(ctx context.Context) error {
	if _, err := s.runner.LookPath("npm"); err != nil {
		s.logger.Error("npm is not installed (should come with Node.js)")
		return fmt.Errorf("%w: npm", shopkit.ErrPrerequisiteMissing)
	}
	version, err := s.runner.Output(ctx, "npm", "--version")
	if err != nil {
		return fmt.Errorf("%w: npm --version failed: %v", shopkit.ErrPrerequisiteMissing, err)
	}
	s.logger.Success("npm is installed: v%s", version)
	return nil
}

func (s *Setup) setupYarn(ctx context.Context) error {
	if _, err := s.runner.LookPath("corepack"); err == nil {
		if _, err := s.runner.Output(ctx, "corepack", "enable"); err != nil {
			s.logger.Warn("Could not enable Corepack (may need admin/sudo)")
			s.logger.Info("  Will install Yarn via npm instead...")
			s.logger.Verbose("corepack enable: %v", err)
		} else {
			s.logger.Success("Corepack enabled")
		}
	}

	if _, err := s.runner.LookPath("yarn"); err != nil {
		s.logger.Info("  Installing Yarn globally...")
		if _, err := s.runner.Output(ctx, "npm", "install", "-g", "yarn"); err != nil {
			s.logger.Verbose("npm install -g yarn: %v", err)
			return s.yarnFailed()
		}
	}

	version, err := s.runner.Output(ctx, "yarn", "--version")
	if err != nil || version == "" {
		return s.yarnFailed()
	}
	s.logger.Success("Yarn is available: v%s", version)
	return nil
}

func (s *Setup) yarnFailed() error {
	s.logger.Error("Failed to set up Yarn")
	s.logger.Info("  Please install Yarn manually: npm install -g yarn")
	return fmt.Errorf("%w: yarn", shopkit.ErrPrerequisiteMissing)
}

func (s *Setup) install(ctx context.Context) error {
	s.logger.Info("This may take a few minutes...")
	if err := s.runner.Stream(ctx, "yarn", "install"); err != nil {
		s.logger.Error("Installation failed")
		s.logger.Info("Try running manually: yarn install")
		return fmt.Errorf("dependency installation failed: %w", err)
	}
	return nil
}

// ParseNodeMajor extracts the major version from `node --version` output
// such as "v20.11.0".
func ParseNodeMajor(version string) (int, bool) {
	v := strings.TrimPrefix(strings.TrimSpace(version), "v")
	major, _, _ := strings.Cut(v, ".")
	n, err := strconv.Atoi(major)
	if err != nil {
		return 0, false
	}
	return n, true
}

func osName(goos string) string {
	switch goos {
	case "windows":
		return "Windows"
	case "darwin":
		return "macOS"
	default:
		return "Linux"
	}
}

func nodeInstallHints(goos string) []string {
	switch goos {
	case "windows":
		return []string{
			"  Option 1 (Recommended): NVM for Windows",
			"    Download: https://github.com/coreybutler/nvm-windows/releases",
			"  Option 2: Direct install",
			"    Download: https://nodejs.org/ (LTS version)",
		}
	case "darwin":
		return []string{
			"  Option 1: Homebrew + NVM",
			"    brew install nvm",
			"    nvm install 20",
			"  Option 2: Direct install",
			"    Download: https://nodejs.org/",
		}
	default:
		return []string{
			"  Option 1: NVM",
			"    curl -o- https://raw.githubusercontent.com/nvm-sh/nvm/v0.39.0/install.sh | bash",
			"    nvm install 20",
			"  Option 2: Package manager",
			"    sudo apt install nodejs npm",
		}
	}
}
