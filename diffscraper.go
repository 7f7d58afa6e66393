// Package diffscraper infers templates from structurally similar documents
// and uses them to compress documents into their variant data, reconstruct
// them with integrity checks, and scrape fields with structural selectors.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, zstd/, html/).
package diffscraper
