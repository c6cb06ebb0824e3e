package rename

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

const segment = `[a-z0-9~-][a-z0-9._~-]*`

var namePattern = regexp.MustCompile(`^` + segment + `(/` + segment + `)?$`)

const charsetReason = `Package name can only contain:
  - Lowercase letters (a-z)
  - Numbers (0-9)
  - Hyphens (-)
  - Underscores (_)
  - Dots (.)

For scoped packages use: yourcompany/appname (@ will be added automatically)`

// NameError reports why a requested name was rejected.
type NameError struct {
	Input  string
	Reason string
}

func (e *NameError) Error() string {
	return "invalid package name:\n  " + strings.ReplaceAll(e.Reason, "\n", "\n  ")
}

// Unwrap returns shopkit.ErrInvalidName so callers can match with errors.Is.
func (e *NameError) Unwrap() error {
	return shopkit.ErrInvalidName
}

// Name is a normalised package name.
type Name struct {
	// Value always starts with "@".
	Value string

	// AutoPrefixed is set when "@" was added to the user's input.
	AutoPrefixed bool
}

// Scoped reports whether the name has a "/name" part after the scope.
func (n Name) Scoped() bool {
	return strings.Contains(n.Value, "/")
}

// Packages lists the workspace packages a bare scope produces.
func (n Name) Packages() []string {
	return []string{n.Value + "/core", n.Value + "/database", n.Value + "/shopify-app"}
}

// Normalize trims raw, validates it and prefixes "@" when missing.
func Normalize(raw string) (Name, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Name{}, shopkit.ErrEmptyName
	}

	if err := Validate(trimmed); err != nil {
		return Name{}, err
	}

	if strings.HasPrefix(trimmed, "@") {
		return Name{Value: trimmed}, nil
	}
	return Name{Value: "@" + trimmed, AutoPrefixed: true}, nil
}

// Validate checks name with or without its leading "@".
func Validate(name string) error {
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return &NameError{
			Input:  name,
			Reason: "Package name cannot contain spaces.\nUse hyphens instead: my-app or mycompany/my-app",
		}
	}

	if lower := strings.ToLower(name); lower != name {
		return &NameError{
			Input:  name,
			Reason: "Package name must be lowercase.\nTry: " + lower,
		}
	}

	clean := strings.TrimPrefix(name, "@")
	if !namePattern.MatchString(clean) {
		return &NameError{Input: name, Reason: charsetReason}
	}

	if scope, pkg, ok := strings.Cut(clean, "/"); ok && (scope == "" || pkg == "") {
		return &NameError{
			Input:  name,
			Reason: "Scoped package format should be: yourcompany/appname",
		}
	}

	return nil
}
