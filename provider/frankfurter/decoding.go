package frankfurter

import (
	"errors"

	"github.com/robotomize/fxlino/label"
)

var errDecodeDocument = errors.New("decoding of the response failed")

// Pair is one base/target combination the source downloads
type Pair struct {
	From label.Symbol
	To   label.Symbol
}

// DefaultPairs lists the popular pairs the downloader retrieves out of the
// box. The feed carries ECB data, so RUB is not available here
var DefaultPairs = []Pair{
	{From: label.USD, To: label.EUR},
	{From: label.USD, To: label.GBP},
	{From: label.USD, To: label.JPY},
	{From: label.USD, To: label.CHF},
	{From: label.USD, To: label.CNY},
	{From: label.USD, To: label.CAD},
	{From: label.USD, To: label.AUD},
	{From: label.USD, To: label.NZD},
	{From: label.USD, To: label.SEK},
	{From: label.USD, To: label.NOK},
	{From: label.USD, To: label.DKK},
	{From: label.USD, To: label.PLN},
	{From: label.USD, To: label.CZK},
	{From: label.USD, To: label.HUF},
	{From: label.USD, To: label.TRY},
	{From: label.USD, To: label.MXN},
	{From: label.USD, To: label.BRL},
	{From: label.USD, To: label.INR},
	{From: label.USD, To: label.KRW},
	{From: label.USD, To: label.SGD},
	{From: label.USD, To: label.HKD},
	{From: label.USD, To: label.ZAR},
	{From: label.EUR, To: label.USD},
	{From: label.EUR, To: label.GBP},
	{From: label.EUR, To: label.JPY},
	{From: label.EUR, To: label.CHF},
	{From: label.GBP, To: label.USD},
	{From: label.GBP, To: label.EUR},
}
