// Package lino implements the links-notation text format used to persist
// exchange rates: a consolidated document holding the full history of one
// currency pair and a legacy per-day document holding a single rate.
package lino

import "errors"

// Ext is the file extension of every stored document
const Ext = ".lino"

var (
	// ErrMalformed is returned when a document misses its currency pair
	// identity or, for a per-day document, its date or value
	ErrMalformed = errors.New("malformed lino document")
)

const (
	keyFrom   = "from"
	keyTo     = "to"
	keySource = "source"
	keyValue  = "value"
	keyDate   = "date"
)
