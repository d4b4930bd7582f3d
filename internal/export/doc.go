// Package export renders a composed graph as an acyclic document.
//
// Types reference each other by identity instead of by pointer, so the
// document can be encoded as YAML and consumed by templates without
// following cycles. The document is derived entirely from a compose.Result
// and can be regenerated at any time.
package export
