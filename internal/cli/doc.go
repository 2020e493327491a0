// Package cli is the interactive front end of a review session.
//
// A Dispatcher holds an ordered list of pattern bindings and feeds every
// input line to the first binding whose pattern matches. App registers the
// review commands on a Dispatcher and renders their output.
package cli
