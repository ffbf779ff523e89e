// Package cli provides the interactive vingd command-line client.
//
// It wires configuration, logging and a broker client into a REPL: the
// account can inspect its profile and balance, register objects, create
// orders, verify and commit purchases, browse transfers, and issue vouchers
// and rewards.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See NewApp and runREPL for details.
package cli
