package usecase

import "strings"

// mapCode translates a wallet ticker into the provider's method identifier.
// Override hits are used verbatim since they already carry provider casing;
// everything else is lowercased. Unsupported tickers are detected later, at
// the rate lookup, never here.
func mapCode(overrides map[string]string, ticker string) string {
	if method, ok := overrides[ticker]; ok {
		return method
	}
	return strings.ToLower(ticker)
}
