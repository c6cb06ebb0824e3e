// Package logging provides concrete implementations of the shopkit.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: severity-prefixed, optionally colored output to a writer
//   - NullLogger: discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
