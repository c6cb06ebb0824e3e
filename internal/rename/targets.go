package rename

// HealthCheckMarkers identify lines that must not be rewritten in targets
// flagged with SkipHealthCheckLines.
var HealthCheckMarkers = []string{"pg_isready", "CMD-SHELL"}

// Target is a file the rename rewrites, relative to the project root.
type Target struct {
	Path string

	// SkipHealthCheckLines leaves database health-check lines untouched so the
	// container's user and database names keep matching.
	SkipHealthCheckLines bool
}

// DefaultTargets returns the files rewritten by a rename, in processing order.
func DefaultTargets() []Target {
	return []Target{
		{Path: "package.json"},
		{Path: "packages/core/package.json"},
		{Path: "packages/core/README.md"},
		{Path: "packages/database/package.json"},
		{Path: "packages/database/README.md"},
		{Path: "apps/shopify-app/package.json"},
		{Path: "apps/shopify-app/README.md"},
		{Path: "apps/shopify-app/shopify.app.toml"},
		{Path: "apps/shopify-app/app/db.server.ts"},
		{Path: "apps/shopify-app/app/shopify.server.ts"},
		{Path: "README.md"},
		{Path: "docker-compose.yml", SkipHealthCheckLines: true},
	}
}
