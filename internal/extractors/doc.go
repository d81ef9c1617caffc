// Package extractors provides implementations of the Extractor interface
// for various document formats. Each extractor knows how to produce plain
// text from a specific set of file extensions.
//
// Extractors are registered with the Registry at startup.
package extractors
