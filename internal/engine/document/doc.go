// Package document provides the ordered node collection at the heart of
// the editing engine, plus the document-wide position and selection types.
//
// The document orders nodes and resolves document-wide positions into
// node order; it never interprets node-local position semantics, which
// belong to each node kind.
//
// Structural lookups that miss return nil (or -1 for indexes) rather than
// erroring: callers treat a miss as "nothing to do". Structural mutations
// either commit fully or fail without partial effect, and observers are
// notified synchronously after commit.
package document
