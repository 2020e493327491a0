// Package lexicon provides the read-only lookup tables consulted during a
// review session: the CC-CEDICT dictionary, HSK leveled vocabulary lists,
// and CHISE IDS character decomposition data.
//
// Tables are parsed once at startup and never mutated afterwards. Consumers
// depend on the Dictionary, Vocabulary and Decompositions interfaces so tests
// can inject small in-memory tables.
package lexicon
