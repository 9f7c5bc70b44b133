package ubl

import (
	"github.com/beevik/etree"
	"github.com/erp/docimport/internal/domain/trade"
)

// Schemes under which StandardItemIdentification carries a GTIN
var barcodeSchemes = map[string]bool{"": true, "0160": true, "GTIN": true}

func parseProduct(r *Resolver, item *etree.Element) trade.Product {
	product := trade.Product{
		Code:        r.TextOr(item, "cac:Item/cac:SellersItemIdentification/cbc:ID"),
		BuyerCode:   r.TextOr(item, "cac:Item/cac:BuyersItemIdentification/cbc:ID"),
		Name:        r.TextOr(item, "cac:Item/cbc:Name"),
		Description: r.TextOr(item, "cac:Item/cbc:Description"),
	}
	for _, id := range r.Find(item, "cac:Item/cac:StandardItemIdentification/cbc:ID") {
		scheme, _ := attr(id, "schemeID")
		if barcodeSchemes[scheme] {
			product.Barcode = trimmedText(id)
			break
		}
	}
	return product
}
