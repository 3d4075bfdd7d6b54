// Package docbot answers natural-language questions about a documentation
// site. It crawls the site into a corpus of plain-text pages, splits the pages
// into segments, ranks segments against a question with a TF-IDF vector index
// and hands the best ones to a language model for answer synthesis.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gemini/).
package docbot
