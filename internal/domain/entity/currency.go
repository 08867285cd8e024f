package entity

// DefaultCurrency is assigned at registration when none is supplied.
const DefaultCurrency = "INR"

// currencySymbols is the supported currency table. Static configuration
// data; extending it is a code change, not a migration.
var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"AUD": "A$",
	"CAD": "C$",
}

// IsValidCurrency reports whether code is a supported currency code.
func IsValidCurrency(code string) bool {
	_, ok := currencySymbols[code]
	return ok
}

// CurrencySymbol returns the display symbol for code, falling back to
// the code itself for unknown values.
func CurrencySymbol(code string) string {
	if s, ok := currencySymbols[code]; ok {
		return s
	}
	return code
}
