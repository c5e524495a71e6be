// Package zx0 implements the optimal parser at the heart of the ZX0
// compressor: a dynamic-programming search over every legal way to cut an
// input buffer into literal runs and back-reference matches, choosing the
// cut that minimizes the total encoded bit length under the ZX0 cost model.
//
// The package exposes one entry point, Optimize, which returns the
// terminal Block of the cheapest parse. Callers walk the Block's Chain
// back-pointer to reconstruct the parse and hand it to a separate encoder
// (see the encode package) to produce the actual compressed bytes; this
// package never emits bits itself.
//
// Everything here concerns the search. The wire format — Elias-gamma bit
// packing, stream framing, the end marker — is the encode and decode
// packages' business.
package zx0
