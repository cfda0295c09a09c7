// Package script runs Lua automation against a project.
//
// Scripts receive a graft module with three surfaces: project (root,
// file listing, opening documents), document handles (editing,
// navigation and query methods), and settings (persistent key/value
// storage). Line numbers are 1-based on the Lua side; byte offsets
// are 0-based, matching the positions the document API reports.
//
// Each run executes in a fresh sandboxed state and documents the
// script modified are saved when it completes, or only reported when
// the runner is in dry-run mode.
package script
