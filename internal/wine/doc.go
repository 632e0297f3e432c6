// Package wine defines the catalog entry model shared by every layer of
// VinoScan.
//
// Entry is the persisted record: free-text attributes, an ordered image
// gallery, user-defined custom fields, and the soft-delete marker that
// partitions the catalog into active and trashed views. LabelFacts carries
// the transient result of label analysis before it is merged into a draft
// entry.
//
// Year and price are deliberately stored as text so ranges and approximate
// values ("N/V", "$40-50") survive round trips; the query package interprets
// them numerically when sorting.
package wine
