// Package domain contains the core entities of the character trainer: cards,
// their scheduling records, the deck that holds them, and the answer checking
// rule. It is independent of storage, the terminal front end, and the
// scheduling algorithm.
package domain
