// Package extract pulls boat ramp markers out of the inline map script of a
// fetched page. The embedded data is hand-written object literal syntax, so it
// is located with an ordered list of strategies and decoded record by record
// with patterns instead of a structured parser.
package extract
