// Package sitemap resolves which content rows and taxonomy terms belong in a sitemap page.
//
// Selection runs one storage query per call (base predicate, robots resolution, exclusion
// lists, age bound, ascending-id window) followed by per-type eligibility filters on the
// materialized rows. Root mode is the index/count fast path: it returns bare ids without a
// window and skips the eligibility filters, so its counts may be slightly high.
package sitemap
