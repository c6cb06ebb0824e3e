package rename

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AgentBurgundy/better-shopify-app-template/internal/files/filesystem"
)

// Status is the result of rewriting a single target.
type Status int

const (
	StatusUpdated Status = iota
	StatusUnchanged
	StatusNotFound
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUpdated:
		return "updated"
	case StatusUnchanged:
		return "unchanged"
	case StatusNotFound:
		return "not found"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome records what happened to one target.
type Outcome struct {
	Target Target
	Status Status
	Err    error
}

// Substitute replaces every literal occurrence of oldName with newName.
// For targets with SkipHealthCheckLines, lines containing a health-check
// marker are kept as they are.
func Substitute(content string, target Target, oldName, newName string) string {
	if !target.SkipHealthCheckLines {
		return strings.ReplaceAll(content, oldName, newName)
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if isHealthCheckLine(line) {
			continue
		}
		lines[i] = strings.ReplaceAll(line, oldName, newName)
	}
	return strings.Join(lines, "\n")
}

func isHealthCheckLine(line string) bool {
	for _, marker := range HealthCheckMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// ApplyRename rewrites target in place. The file is only written when its
// content changes.
func ApplyRename(fsys filesystem.FileSystem, target Target, oldName, newName string) Outcome {
	info, err := fsys.Stat(target.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Outcome{Target: target, Status: StatusNotFound}
		}
		return Outcome{Target: target, Status: StatusFailed, Err: err}
	}

	data, err := fsys.ReadFile(target.Path)
	if err != nil {
		return Outcome{Target: target, Status: StatusFailed, Err: err}
	}

	original := string(data)
	updated := Substitute(original, target, oldName, newName)
	if updated == original {
		return Outcome{Target: target, Status: StatusUnchanged}
	}

	if isYAML(target.Path) {
		if err := checkYAML(original, updated); err != nil {
			return Outcome{Target: target, Status: StatusFailed, Err: err}
		}
	}

	if err := fsys.WriteFile(target.Path, []byte(updated), info.Mode().Perm()); err != nil {
		return Outcome{Target: target, Status: StatusFailed, Err: err}
	}
	return Outcome{Target: target, Status: StatusUpdated}
}

func isYAML(p string) bool {
	switch strings.ToLower(path.Ext(p)) {
	case ".yml", ".yaml":
		return true
	}
	return false
}

// checkYAML rejects a rewrite that breaks a document which parsed before it.
func checkYAML(before, after string) error {
	var doc interface{}
	if yaml.Unmarshal([]byte(before), &doc) != nil {
		return nil
	}
	if err := yaml.Unmarshal([]byte(after), &doc); err != nil {
		return fmt.Errorf("rewritten content is not valid YAML: %w", err)
	}
	return nil
}
