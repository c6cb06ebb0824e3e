package rename

import (
	"encoding/json"
	"errors"
	"io/fs"
	"regexp"

	"github.com/AgentBurgundy/better-shopify-app-template/internal/files/filesystem"
	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

var scopePattern = regexp.MustCompile(`^(@?[^/]+)/`)

type manifest struct {
	Name string `json:"name"`
}

// DetectCurrentName returns the scope of the core package's name, such as
// "@myapp" for "@myapp/core". It falls back to shopkit.DefaultScope when the
// manifest is absent or has no scoped name, and additionally warns when the
// manifest cannot be read or parsed. It never fails.
func DetectCurrentName(fsys filesystem.FileSystem, logger shopkit.Logger) string {
	data, err := fsys.ReadFile(shopkit.ManifestPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("Could not detect current package name, using %s", shopkit.DefaultScope)
			logger.Verbose("reading %s: %v", shopkit.ManifestPath, err)
		}
		return shopkit.DefaultScope
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		logger.Warn("Could not detect current package name, using %s", shopkit.DefaultScope)
		logger.Verbose("parsing %s: %v", shopkit.ManifestPath, err)
		return shopkit.DefaultScope
	}

	if match := scopePattern.FindStringSubmatch(m.Name); match != nil {
		return match[1]
	}
	return shopkit.DefaultScope
}
