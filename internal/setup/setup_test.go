package setup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// fakeRunner simulates installed tools and scripted command results.
type fakeRunner struct {
	installed map[string]bool
	outputs   map[string]string
	failures  map[string]error
	calls     []string

	// installs marks tools that become available once the command runs.
	installs map[string]string
}

func newFakeRunner(tools ...string) *fakeRunner {
	r := &fakeRunner{
		installed: map[string]bool{},
		outputs: map[string]string{
			"node --version": "v20.11.0",
			"npm --version":  "10.2.4",
			"yarn --version": "4.1.0",
		},
		failures: map[string]error{},
		installs: map[string]string{},
	}
	for _, t := range tools {
		r.installed[t] = true
	}
	return r
}

func (r *fakeRunner) LookPath(name string) (string, error) {
	if r.installed[name] {
		return "/usr/bin/" + name, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

func (r *fakeRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	return r.run(name, args)
}

func (r *fakeRunner) Stream(_ context.Context, name string, args ...string) error {
	_, err := r.run(name, args)
	return err
}

func (r *fakeRunner) run(name string, args []string) (string, error) {
	line := strings.TrimSpace(name + " " + strings.Join(args, " "))
	r.calls = append(r.calls, line)
	if !r.installed[name] {
		return "", fmt.Errorf("%s: not installed", name)
	}
	if err := r.failures[line]; err != nil {
		return "", err
	}
	if tool, ok := r.installs[line]; ok {
		r.installed[tool] = true
	}
	return r.outputs[line], nil
}

type lineLogger struct {
	lines []string
}

func (l *lineLogger) add(level, f string, a ...interface{}) {
	l.lines = append(l.lines, level+": "+fmt.Sprintf(f, a...))
}
func (l *lineLogger) Verbose(f string, a ...interface{}) { l.add("verbose", f, a...) }
func (l *lineLogger) Info(f string, a ...interface{})    { l.add("info", f, a...) }
func (l *lineLogger) Success(f string, a ...interface{}) { l.add("success", f, a...) }
func (l *lineLogger) Warn(f string, a ...interface{})    { l.add("warn", f, a...) }
func (l *lineLogger) Error(f string, a ...interface{})   { l.add("error", f, a...) }

func (l *lineLogger) text() string { return strings.Join(l.lines, "\n") }

func TestRun_HappyPath(t *testing.T) {
	r := newFakeRunner("node", "npm", "corepack", "yarn")
	logger := &lineLogger{}

	require.NoError(t, New(r, logger).WithOS("linux").Run(context.Background()))

	assert.Equal(t, []string{
		"node --version",
		"npm --version",
		"corepack enable",
		"yarn --version",
		"yarn install",
	}, r.calls)

	out := logger.text()
	for _, want := range []string{
		"info: Detected OS: Linux",
		"info: [1/4] Checking for Node.js...",
		"success: Node.js is installed: v20.11.0",
		"success: npm is installed: v10.2.4",
		"success: Corepack enabled",
		"success: Yarn is available: v4.1.0",
		"info: [4/4] Installing project dependencies...",
		"success: Setup completed successfully!",
		"yarn rename",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "warn:")
}

func TestRun_NodeMissing(t *testing.T) {
	tests := map[string]string{
		"linux":   "sudo apt install nodejs npm",
		"darwin":  "brew install nvm",
		"windows": "nvm-windows",
	}

	for goos, hint := range tests {
		t.Run(goos, func(t *testing.T) {
			r := newFakeRunner("npm", "yarn")
			logger := &lineLogger{}

			err := New(r, logger).WithOS(goos).Run(context.Background())

			assert.ErrorIs(t, err, shopkit.ErrPrerequisiteMissing)
			assert.Equal(t, shopkit.ExitPrerequisiteMissing, shopkit.ExitCodeForError(err))
			assert.Contains(t, logger.text(), hint)
			assert.Empty(t, r.calls, "nothing runs without node")
		})
	}
}

func TestRun_OldNodeWarns(t *testing.T) {
	r := newFakeRunner("node", "npm", "yarn")
	r.outputs["node --version"] = "v16.20.2"
	logger := &lineLogger{}

	require.NoError(t, New(r, logger).Run(context.Background()))
	assert.Contains(t, logger.text(), "warn: Node.js 18+ is recommended. Current: v16.20.2")
}

func TestRun_NpmMissing(t *testing.T) {
	err := New(newFakeRunner("node"), &lineLogger{}).Run(context.Background())
	assert.ErrorIs(t, err, shopkit.ErrPrerequisiteMissing)
	assert.Contains(t, err.Error(), "npm")
}

func TestRun_CorepackFailureFallsBackToNpm(t *testing.T) {
	r := newFakeRunner("node", "npm", "corepack")
	r.failures["corepack enable"] = errors.New("EACCES")
	r.installs["npm install -g yarn"] = "yarn"
	logger := &lineLogger{}

	require.NoError(t, New(r, logger).Run(context.Background()))

	assert.Contains(t, r.calls, "npm install -g yarn")
	assert.Contains(t, logger.text(), "warn: Could not enable Corepack")
	assert.Contains(t, logger.text(), "Installing Yarn globally...")
}

func TestRun_YarnInstallFails(t *testing.T) {
	r := newFakeRunner("node", "npm")
	r.failures["npm install -g yarn"] = errors.New("EACCES")
	logger := &lineLogger{}

	err := New(r, logger).Run(context.Background())

	assert.ErrorIs(t, err, shopkit.ErrPrerequisiteMissing)
	assert.Contains(t, logger.text(), "error: Failed to set up Yarn")
	assert.NotContains(t, r.calls, "yarn install")
}

func TestRun_DependencyInstallFails(t *testing.T) {
	r := newFakeRunner("node", "npm", "yarn")
	boom := errors.New("exit status 1")
	r.failures["yarn install"] = boom
	logger := &lineLogger{}

	err := New(r, logger).Run(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, shopkit.ExitGeneralError, shopkit.ExitCodeForError(err))
	assert.Contains(t, logger.text(), "Try running manually: yarn install")
}

func TestParseNodeMajor(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"v20.11.0", 20, true},
		{"18.0.0\n", 18, true},
		{"v9", 9, true},
		{"", 0, false},
		{"node", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNodeMajor(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseNodeMajor(%q) = (%d, %v), want (%d, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
