// Package cli defines the Cobra command tree for create-hest-app. The root
// command creates a project; version and config are the only subcommands.
// Commands handle flag parsing, prompting and output formatting and delegate
// the work to internal packages.
package cli
