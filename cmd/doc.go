// Package cmd implements the command-line interface for the recmap
// container library. It exposes tooling around the library rather than a
// server: the map itself is an in-process data structure.
//
// The package is organized into several subpackages:
//
//   - perf: In-process benchmarks for the map operations
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See recmap -help for a list of all commands.
package cmd
