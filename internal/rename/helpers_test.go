package rename

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/AgentBurgundy/better-shopify-app-template/internal/files/filesystem"
)

var errIOEOF = io.EOF

type logEntry struct {
	level string
	msg   string
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: fmt.Sprintf(format, args...)})
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.add("verbose", format, args...)
}
func (l *recordingLogger) Info(format string, args ...interface{}) { l.add("info", format, args...) }
func (l *recordingLogger) Success(format string, args ...interface{}) {
	l.add("success", format, args...)
}
func (l *recordingLogger) Warn(format string, args ...interface{})  { l.add("warn", format, args...) }
func (l *recordingLogger) Error(format string, args ...interface{}) { l.add("error", format, args...) }

func (l *recordingLogger) has(level, substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.level == level && strings.Contains(e.msg, substr) {
			return true
		}
	}
	return false
}

type scriptedPrompter struct {
	answers []string
	err     error
	asked   []string
}

func (p *scriptedPrompter) Ask(_ context.Context, question string) (string, error) {
	p.asked = append(p.asked, question)
	if p.err != nil {
		return "", p.err
	}
	if len(p.answers) == 0 {
		return "", fmt.Errorf("unexpected question %q", question)
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

type stubApprover struct {
	approve bool
	err     error
	calls   int
	oldName string
	newName string
}

func (a *stubApprover) RequestApproval(_ context.Context, oldName, newName string) (bool, error) {
	a.calls++
	a.oldName, a.newName = oldName, newName
	return a.approve, a.err
}

const dockerCompose = `services:
  postgres:
    image: postgres:16
    environment:
      POSTGRES_USER: myapp
      POSTGRES_DB: "@myapp"
    healthcheck:
      test: ["CMD-SHELL", "pg_isready -U @myapp"]
      interval: 5s
`

// templateTree returns a project tree shaped like the template with the
// default @myapp scope.
func templateTree() *filesystem.MemoryFileSystem {
	m := filesystem.NewMemoryFileSystem()
	m.AddFile("package.json", `{"name":"@myapp/root","workspaces":["packages/*","apps/*"]}`)
	m.AddFile("packages/core/package.json", `{"name":"@myapp/core","version":"1.0.0"}`)
	m.AddFile("packages/core/README.md", "# @myapp/core\n")
	m.AddFile("packages/database/package.json", `{"name":"@myapp/database","dependencies":{"@myapp/core":"*"}}`)
	m.AddFile("packages/database/README.md", "# @myapp/database\n")
	m.AddFile("apps/shopify-app/package.json", `{"name":"@myapp/shopify-app"}`)
	m.AddFile("apps/shopify-app/README.md", "Shopify app\n")
	m.AddFile("apps/shopify-app/shopify.app.toml", "name = \"@myapp/shopify-app\"\n")
	m.AddFile("apps/shopify-app/app/db.server.ts", "import { prisma } from \"@myapp/database\";\n")
	m.AddFile("apps/shopify-app/app/shopify.server.ts", "import { config } from \"@myapp/core\";\n")
	m.AddFile("README.md", "# @myapp\n\nuse @myapp/core and @myapp/database\n")
	m.AddFile("docker-compose.yml", dockerCompose)
	return m
}
