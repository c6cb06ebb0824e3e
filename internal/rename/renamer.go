package rename

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/AgentBurgundy/better-shopify-app-template/internal/files/filesystem"
	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// NamePrompt is the question asked when no name is given on the command line.
const NamePrompt = "Enter your new app name (or press Ctrl+C to cancel): "

// NextSteps are printed after a completed rename.
var NextSteps = []string{
	"Run: yarn install",
	"Review the changes with: git diff",
	"Update your Shopify app name in apps/shopify-app/shopify.app.toml",
	"See README.md for development setup",
	"Start building!",
}

// Report summarises a rename run.
type Report struct {
	OldName  string
	NewName  string
	Outcomes []Outcome

	// AlreadyNamed is set when the requested name equals the current one.
	AlreadyNamed bool

	// Cancelled is set when the user declined or abandoned a prompt.
	Cancelled bool
}

// Updated returns the number of targets that were rewritten.
func (r *Report) Updated() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == StatusUpdated {
			n++
		}
	}
	return n
}

// Total returns the number of targets processed.
func (r *Report) Total() int {
	return len(r.Outcomes)
}

// Renamer runs the rename flow against a project tree.
type Renamer struct {
	fsys     filesystem.FileSystem
	logger   shopkit.Logger
	prompter shopkit.Prompter
	approver shopkit.Approver
	targets  []Target
}

// NewRenamer creates a Renamer over DefaultTargets. prompter is only used
// when Run is called without a name.
func NewRenamer(fsys filesystem.FileSystem, logger shopkit.Logger, prompter shopkit.Prompter, approver shopkit.Approver) *Renamer {
	return &Renamer{
		fsys:     fsys,
		logger:   logger,
		prompter: prompter,
		approver: approver,
		targets:  DefaultTargets(),
	}
}

// WithTargets replaces the target list.
func (r *Renamer) WithTargets(targets []Target) *Renamer {
	r.targets = targets
	return r
}

// Run renames the project to requested, or to a name read from the
// prompter when requested is empty.
//
// Invalid input returns an error matching shopkit.ErrEmptyName or
// shopkit.ErrInvalidName before anything is written. Per-file failures
// are logged and recorded in the report, not returned.
func (r *Renamer) Run(ctx context.Context, requested string) (*Report, error) {
	r.logger.Info("Rename Shopify App")
	r.logger.Info("")

	current := DetectCurrentName(r.fsys, r.logger)
	r.logger.Info("Current package scope: %s", current)
	report := &Report{OldName: current}

	if requested == "" {
		r.printExamples()
		answer, err := r.prompter.Ask(ctx, NamePrompt)
		switch {
		case errors.Is(err, shopkit.ErrPromptCancelled):
			r.logger.Warn("Cancelled.")
			report.Cancelled = true
			return report, nil
		case errors.Is(err, io.EOF):
			answer = ""
		case err != nil:
			return nil, fmt.Errorf("failed to read app name: %w", err)
		}
		requested = answer
	}

	name, err := Normalize(requested)
	if err != nil {
		return nil, err
	}
	report.NewName = name.Value

	if name.AutoPrefixed {
		r.logger.Info("→ Auto-adding @ for scoped package: %s", name.Value)
		if !name.Scoped() {
			p := name.Packages()
			r.logger.Info("  Packages will be: %s, %s, %s", p[0], p[1], p[2])
		}
	}

	if name.Value == current {
		r.logger.Warn("The app is already named %s", name.Value)
		report.AlreadyNamed = true
		return report, nil
	}

	approved, err := r.approver.RequestApproval(ctx, current, name.Value)
	if err != nil {
		if errors.Is(err, shopkit.ErrPromptCancelled) {
			r.logger.Warn("Cancelled.")
			report.Cancelled = true
			return report, nil
		}
		return nil, fmt.Errorf("failed to confirm rename: %w", err)
	}
	if !approved {
		r.logger.Warn("Cancelled.")
		report.Cancelled = true
		return report, nil
	}

	r.logger.Info("Renaming files...")
	for _, target := range r.targets {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("rename interrupted after %d file(s): %w", report.Total(), err)
		}

		outcome := ApplyRename(r.fsys, target, current, name.Value)
		report.Outcomes = append(report.Outcomes, outcome)
		r.logOutcome(outcome)
	}

	r.logger.Success("Rename complete!")
	r.logger.Info("Updated %d of %d file(s).", report.Updated(), report.Total())
	r.logger.Info("")
	r.logger.Info("Next steps:")
	for i, step := range NextSteps {
		r.logger.Info("  %d. %s", i+1, step)
	}

	return report, nil
}

func (r *Renamer) printExamples() {
	r.logger.Info("")
	r.logger.Info("This will rename your app to a new custom name.")
	r.logger.Info("")
	r.logger.Info("Examples:")
	r.logger.Info("  Scoped (recommended):")
	r.logger.Info("    mycompany/shopify-app  →  @mycompany/shopify-app")
	r.logger.Info("    @acme/store            →  @acme/store")
	r.logger.Info("  Scope only:")
	r.logger.Info("    myapp                  →  @myapp")
	r.logger.Info("")
}

func (r *Renamer) logOutcome(o Outcome) {
	switch o.Status {
	case StatusUpdated:
		r.logger.Success("Updated: %s", o.Target.Path)
	case StatusUnchanged:
		r.logger.Info("  - No changes: %s", o.Target.Path)
	case StatusNotFound:
		r.logger.Warn("File not found: %s", o.Target.Path)
	case StatusFailed:
		r.logger.Error("Error updating %s: %v", o.Target.Path, o.Err)
	}
}
