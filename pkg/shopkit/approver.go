package shopkit

import "context"

// Approver gates a rename behind explicit user confirmation.
//
// Implementations:
//   - InteractiveApprover: asks "Continue? (y/N)" and accepts y or yes
//   - ForcedApprover: approves without asking (--yes)
type Approver interface {
	// RequestApproval shows the proposed oldName → newName transition and
	// reports whether the user approved it. A false result with a nil error
	// means the user declined.
	RequestApproval(ctx context.Context, oldName, newName string) (bool, error)
}

// Prompter asks a single question over a line-oriented stream and returns
// the raw answer without its trailing newline.
type Prompter interface {
	Ask(ctx context.Context, question string) (string, error)
}
