// Package cli provides the interactive promptvault command-line client.
//
// It wires configuration, the storage backend, the vault store and the export
// sink, then runs a REPL over stdin. When stdin is not a terminal the prompt
// is not printed, so command files can be piped in.
//
// Key features:
//   - List / show / add / edit / delete entries, pin and reorder them
//   - Quick capture of pasted or clipboard text with blank-line normalization
//   - Search, tag / category / unconfigured filters and sort modes
//   - Import JSON or CSV, export to a directory or an S3 bucket
//   - Backup listing and restore, storage usage, statistics
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
