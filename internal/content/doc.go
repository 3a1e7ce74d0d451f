// Package content defines the read-only projections of site content (posts, terms,
// attachments, authors) and the storage contract the selector and graph builder consume.
//
// Nothing in this package mutates content. Exclusion lists are carried as opaque,
// validated id-list literals and are never expanded into sets.
package content
