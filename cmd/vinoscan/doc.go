// Package main hosts the VinoScan CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into catalog
// mutations, derived list views, CSV import/export, and the label-scan
// workflow. It centralizes configuration resolution, store selection, and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
