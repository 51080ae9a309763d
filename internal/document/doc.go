// Package document parses JSON text into an immutable, order-preserving tree.
//
// Values form a closed set: Null, Bool, Number, String, Array and *Object.
// Consumers switch on the concrete type; no other implementations exist.
//
// Every object member remembers where its key starts in the source text, so
// callers that need exact positions do not have to re-scan the document.
package document
