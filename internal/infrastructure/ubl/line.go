package ubl

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/erp/docimport/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// parseLine reads one order line. The unit price is derived from the line
// extension amount when there is one, even if an explicit price is also
// present; a quantity that rounds to zero at precision leaves the price at 0.
func parseLine(r *Resolver, line *etree.Element, precision int32) (trade.OrderLine, error) {
	item := r.FindOne(line, "cac:LineItem")
	if item == nil {
		return trade.OrderLine{}, missing("cac:LineItem")
	}

	qtyNode := r.FindOne(item, "cbc:Quantity")
	if qtyNode == nil {
		return trade.OrderLine{}, missing("cac:LineItem/cbc:Quantity")
	}
	qty, err := parseDecimal(qtyNode, "cac:LineItem/cbc:Quantity")
	if err != nil {
		return trade.OrderLine{}, err
	}
	uom, _ := attr(qtyNode, "unitCode")

	price := decimal.Zero
	if amountNode := r.FindOne(item, "cbc:LineExtensionAmount"); amountNode != nil {
		amount, err := parseDecimal(amountNode, "cac:LineItem/cbc:LineExtensionAmount")
		if err != nil {
			return trade.OrderLine{}, err
		}
		if !isZero(qty, precision) {
			price = amount.Div(qty)
		}
	} else if priceNode := r.FindOne(item, "cac:Price/cbc:PriceAmount"); priceNode != nil {
		price, err = parseDecimal(priceNode, "cac:LineItem/cac:Price/cbc:PriceAmount")
		if err != nil {
			return trade.OrderLine{}, err
		}
	}

	return trade.OrderLine{
		Product:   parseProduct(r, item),
		Quantity:  qty,
		UOM:       uom,
		PriceUnit: price,
	}, nil
}

func parseDecimal(el *etree.Element, path string) (decimal.Decimal, error) {
	text := trimmedText(el)
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, &ParseError{Path: path, Err: fmt.Errorf("invalid number %q: %w", text, err)}
	}
	return d, nil
}

// isZero rounds half away from zero at the given number of digits
func isZero(d decimal.Decimal, precision int32) bool {
	return d.Round(precision).IsZero()
}
