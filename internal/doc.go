// Package internal contains helper utilities that are intentionally private to
// cookieless: session identifier generation and identifier fingerprints.
//
// # Sub-packages
//
//   - audit: async event dispatch (Dispatcher + Sink implementations)
//
// # What this package must NOT do
//
//   - Export types that appear in the public cookieless API.
//   - Be imported by any package outside the cookieless module.
package internal
