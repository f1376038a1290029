// Package cli provides the interactive chatlite command-line client.
//
// It wires configuration, the local collection store, the domain services and
// an interactive REPL. Typical flow: resume the persisted session if one
// exists, then execute user commands until exit.
//
// Key features:
//   - Register / Login / Logout with a persisted single session
//   - Search users and manage the contact list
//   - Open direct conversations, send messages, watch ticks advance
//   - Export / import / reset the whole dataset
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
