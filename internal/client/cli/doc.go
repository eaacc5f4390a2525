// Package cli implements the interactive schoolchat client: a REPL over the
// synchronization services. Presentation only — every rule about shared
// state lives in the services package.
package cli
