// Package matcher resolves catalog records against the library index.
//
// Resolution is an ordered cascade; the first tier that yields a record wins:
//
//  1. code: the record's ISRC is already confirmed on a library file
//  2. album: same album, exact disc and track, or same simplified title
//  3. key: normalized artist|title[|album] variants
//  4. fuzzy: token-set similarity within the artist or album pool
//  5. confirm: budgeted deep inspection of candidate files for the ISRC
//
// Every tier that compares durations uses the same adaptive Tolerance. Tier
// five is the only concurrent step; it shares a run-wide Budget and writes
// every probe outcome through the CacheView so later rows and later runs see
// it.
package matcher
