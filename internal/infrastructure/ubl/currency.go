package ubl

import "github.com/erp/docimport/internal/domain/trade"

var currencyNodes = []string{"cbc:DocumentCurrencyCode", "cbc:PricingCurrencyCode"}

// resolveCurrency tries the header currency codes in order, stopping at the
// first element present. When that yields nothing it falls back to the
// currencyID of the first LineExtensionAmount anywhere in the document.
// Returns nil when no source has a value.
func resolveCurrency(r *Resolver, dt trade.DocType) *string {
	var code string
	for _, node := range currencyNodes {
		if text, ok := r.Text(nil, rootPath(dt, node)); ok {
			code = text
			break
		}
	}
	if code == "" {
		if el := r.FindOne(nil, "//cbc:LineExtensionAmount"); el != nil {
			code, _ = attr(el, "currencyID")
		}
	}
	if code == "" {
		return nil
	}
	return &code
}
