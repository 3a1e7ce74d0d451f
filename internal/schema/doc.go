// Package schema assembles the JSON-LD structured-data graph of a page.
//
// A Generator runs a fixed list of builders against a PageContext. Each builder yields
// one node or nothing; empty values are never stored on a node, so a graph only carries
// what the content actually provides. Nodes link to each other through @id references
// derived from the site URL or the page URL, which keeps ids stable across builds.
package schema
