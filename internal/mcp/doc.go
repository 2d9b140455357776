// Package mcp provides a Model Context Protocol (MCP) server for fsops using mcp-go.
//
// The server exposes the conflict-aware file operations as MCP tools so that an AI
// assistant can move, copy and lock files with the same policies as the CLI.
//
// # Tools
//
//   - move_file, copy_file: source, destination, optional policy (fail, skip,
//     overwrite, rename, larger, newer; defaults to the configured policy)
//   - swap_names: first, second
//   - lock_file, unlock_file, is_locked: path
//   - next_available_name: path
//   - first_existing: paths (comma separated)
//
// Successful calls return a short text result, for example the resolved destination.
// Failed calls return an error result whose text starts with the error kind
// ("not_found: ...", "precondition_failed: ..."), so clients can branch on it.
//
// # Usage
//
// The server is typically started as a subprocess by an MCP-capable assistant:
//
//	fsops mcp
//
// It reads JSON-RPC requests from stdin and writes responses to stdout until it
// receives EOF or is terminated. Logs go to the application logger, never stdout.
package mcp
