// Package createapp drives one project scaffolding run: it prepares the
// target directory, materializes a template, personalizes the manifest,
// installs dependencies and initializes git, then reports a Summary.
//
// Every run ends in an Outcome whose Kind tells the caller what to do next:
// render the summary, offer a different template, or abort.
package createapp
