// Package filings provides an incremental crawl-and-ingest engine for
// corporate announcement sites. It walks a paginated announcement
// listing, renders each announcement's detail page, downloads attached
// documents, deduplicates them against a durable download history, and
// stops when it reaches a content-age boundary or a cumulative storage
// budget.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., rod/,
// goquery/, sqlite/, fs/).
package filings
