// Package normalisers provides implementations of the Normaliser interface
// for the supported input formats. Each normaliser turns one family of
// MIME types into content items.
//
// Normalisers are registered with the Registry at startup; the Registry
// picks the highest-priority normaliser for each document.
package normalisers
