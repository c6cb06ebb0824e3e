package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AgentBurgundy/better-shopify-app-template/internal/tui"
	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// InteractiveApprover asks the user to confirm a rename. Only "y" or
// "yes" (any case) approves; anything else, including an empty answer or
// a closed input stream, declines.
type InteractiveApprover struct {
	prompter shopkit.Prompter
	output   io.Writer
	color    bool
}

// NewInteractiveApprover creates an approver that asks through prompter.
func NewInteractiveApprover(prompter shopkit.Prompter) shopkit.Approver {
	return &InteractiveApprover{
		prompter: prompter,
		output:   os.Stdout,
		color:    tui.ColorEnabled(os.Stdout),
	}
}

// RequestApproval prints the proposed transition and asks to continue.
func (a *InteractiveApprover) RequestApproval(ctx context.Context, oldName, newName string) (bool, error) {
	fmt.Fprintln(a.output)
	fmt.Fprintln(a.output, a.style(tui.WarningStyle.Render, "You are about to rename:"))
	fmt.Fprintf(a.output, "  %s %s %s\n\n",
		a.style(tui.EmphasisStyle.Render, oldName),
		tui.SymbolArrowRight,
		a.style(tui.SuccessStyle.Bold(true).Render, newName))

	answer, err := a.prompter.Ask(ctx, "Continue? (y/N): ")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}

	return IsAffirmative(answer), nil
}

func (a *InteractiveApprover) style(render func(...string) string, s string) string {
	if !a.color {
		return s
	}
	return render(s)
}

// IsAffirmative reports whether answer is "y" or "yes", ignoring case and
// surrounding whitespace.
func IsAffirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// ForcedApprover approves every rename without asking. Used for --yes.
type ForcedApprover struct {
	output io.Writer
}

// NewForcedApprover creates a ForcedApprover that reports to stdout.
func NewForcedApprover() shopkit.Approver {
	return &ForcedApprover{output: os.Stdout}
}

// RequestApproval reports the transition and approves it.
func (a *ForcedApprover) RequestApproval(ctx context.Context, oldName, newName string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	fmt.Fprintf(a.output, "\nRenaming %s %s %s (confirmed by --yes)\n", oldName, tui.SymbolArrowRight, newName)
	return true, nil
}

// Verify approvers implement the Approver interface at compile time
var (
	_ shopkit.Approver = (*InteractiveApprover)(nil)
	_ shopkit.Approver = (*ForcedApprover)(nil)
)
