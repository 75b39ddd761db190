package label

import "strings"

// Symbol is a 3-letter ISO 4217 currency code
type Symbol string

func (s Symbol) String() string {
	return string(s)
}

const (
	AUD Symbol = "AUD"
	BRL Symbol = "BRL"
	CAD Symbol = "CAD"
	CHF Symbol = "CHF"
	CNY Symbol = "CNY"
	CZK Symbol = "CZK"
	DKK Symbol = "DKK"
	EUR Symbol = "EUR"
	GBP Symbol = "GBP"
	HKD Symbol = "HKD"
	HUF Symbol = "HUF"
	INR Symbol = "INR"
	JPY Symbol = "JPY"
	KRW Symbol = "KRW"
	MXN Symbol = "MXN"
	NOK Symbol = "NOK"
	NZD Symbol = "NZD"
	PLN Symbol = "PLN"
	RUB Symbol = "RUB"
	SEK Symbol = "SEK"
	SGD Symbol = "SGD"
	TRY Symbol = "TRY"
	USD Symbol = "USD"
	ZAR Symbol = "ZAR"
)

// Currency represents a single supported currency
type Currency struct {
	Symbol Symbol
	Name   string
}

// Currencies is the registry of every currency the default configuration references
var Currencies = map[Symbol]Currency{
	AUD: {Symbol: AUD, Name: "Australian dollar"},
	BRL: {Symbol: BRL, Name: "Brazilian real"},
	CAD: {Symbol: CAD, Name: "Canadian dollar"},
	CHF: {Symbol: CHF, Name: "Swiss franc"},
	CNY: {Symbol: CNY, Name: "Renminbi"},
	CZK: {Symbol: CZK, Name: "Czech koruna"},
	DKK: {Symbol: DKK, Name: "Danish krone"},
	EUR: {Symbol: EUR, Name: "Euro"},
	GBP: {Symbol: GBP, Name: "Pound sterling"},
	HKD: {Symbol: HKD, Name: "Hong Kong dollar"},
	HUF: {Symbol: HUF, Name: "Hungarian forint"},
	INR: {Symbol: INR, Name: "Indian rupee"},
	JPY: {Symbol: JPY, Name: "Japanese yen"},
	KRW: {Symbol: KRW, Name: "South Korean won"},
	MXN: {Symbol: MXN, Name: "Mexican peso"},
	NOK: {Symbol: NOK, Name: "Norwegian krone"},
	NZD: {Symbol: NZD, Name: "New Zealand dollar"},
	PLN: {Symbol: PLN, Name: "Polish zloty"},
	RUB: {Symbol: RUB, Name: "Russian ruble"},
	SEK: {Symbol: SEK, Name: "Swedish krona"},
	SGD: {Symbol: SGD, Name: "Singapore dollar"},
	TRY: {Symbol: TRY, Name: "Turkish lira"},
	USD: {Symbol: USD, Name: "United States dollar"},
	ZAR: {Symbol: ZAR, Name: "South African rand"},
}

// Normalize canonicalizes a raw currency code. Stored files may carry codes
// in lower case
func Normalize(s string) Symbol {
	return Symbol(strings.ToUpper(strings.TrimSpace(s)))
}

// ParseSymbol canonicalizes a raw currency code and reports whether it is
// a registered currency
func ParseSymbol(s string) (Symbol, bool) {
	sym := Normalize(s)
	_, ok := Currencies[sym]

	return sym, ok
}
