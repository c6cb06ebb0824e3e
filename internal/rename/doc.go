// Package rename rewrites the template's package scope across the project.
//
// A run detects the current scope from packages/core/package.json,
// normalises the requested name into @scope form, asks for confirmation and
// then performs a literal substitution over a fixed list of files. Files are
// processed one at a time; a missing or failing file is reported and the
// run continues with the next one.
package rename
