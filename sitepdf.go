// Package sitepdf snapshots a website into a single PDF. It crawls pages on
// one origin breadth-first, extracts their headings, paragraphs and list
// items, lays the text out onto fixed-size pages and hands the finished file
// to a download service for saving.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, fpdf/, sqlite/).
package sitepdf
