// Package csvcodec converts between cellar entries and the CSV exchange
// format.
//
// The import side is a hand-rolled two-state tokenizer rather than
// encoding/csv: the exchange dialect tolerates input the standard reader
// rejects (bare quotes toggle quoting and are simply stripped, cells are
// whitespace-trimmed, CR, LF, and CRLF all break rows) and resolves header
// columns through per-field alias sets so spreadsheets exported elsewhere
// still import. The export side emits the fixed seven-column header with
// every field quoted.
package csvcodec
