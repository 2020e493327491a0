// Package review implements the interactive review session: it keeps track
// of the card on screen and the one before it, judges typed pronunciations,
// feeds the result to the scheduler, saves the deck after every change and
// picks the next card to show.
//
// A Session is used from a single goroutine.
package review
