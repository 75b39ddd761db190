package cbr

import (
	"errors"
	"time"

	"github.com/robotomize/fxlino/label"
)

var errDecodeToken = errors.New("decoding of the markup failed")

// Code is the provider-native identifier of one foreign currency
type Code string

// CodeMapping binds a provider code to the currency it quotes against RUB
type CodeMapping struct {
	ID     Code
	Symbol label.Symbol
}

// DefaultCodes is the fixed table of foreign currencies downloaded out of
// the box
var DefaultCodes = []CodeMapping{
	{ID: "R01235", Symbol: label.USD},
	{ID: "R01239", Symbol: label.EUR},
	{ID: "R01035", Symbol: label.GBP},
	{ID: "R01820", Symbol: label.JPY},
	{ID: "R01775", Symbol: label.CHF},
	{ID: "R01375", Symbol: label.CNY},
}

// dynRecord is one decoded quotation: value domestic units buy nominal
// units of the foreign currency on date
type dynRecord struct {
	date    time.Time
	value   float64
	nominal int
}
