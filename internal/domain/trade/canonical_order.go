package trade

import (
	"github.com/shopspring/decimal"
)

// Product identifies the ordered item
type Product struct {
	Code        string `json:"code,omitempty" yaml:"code,omitempty"`
	BuyerCode   string `json:"buyer_code,omitempty" yaml:"buyer_code,omitempty"`
	Barcode     string `json:"barcode,omitempty" yaml:"barcode,omitempty"`
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// OrderLine is one ordered product with its derived unit price
type OrderLine struct {
	Product   Product         `json:"product" yaml:"product"`
	Quantity  decimal.Decimal `json:"qty" yaml:"qty"`
	UOM       string          `json:"uom,omitempty" yaml:"uom,omitempty"` // UN/ECE unit code
	PriceUnit decimal.Decimal `json:"price_unit" yaml:"price_unit"`
}

// Subtotal returns quantity times unit price
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.PriceUnit)
}

// Incoterm is the delivery term code (FOB, CIF, ...)
type Incoterm struct {
	Code string `json:"code" yaml:"code"`
}

// DeliveryDetail holds the requested delivery dates
type DeliveryDetail struct {
	CommitmentDate string `json:"commitment_date,omitempty" yaml:"commitment_date,omitempty"`
	PeriodStart    string `json:"period_start,omitempty" yaml:"period_start,omitempty"`
	PeriodEnd      string `json:"period_end,omitempty" yaml:"period_end,omitempty"`
}

// IsEmpty reports whether no delivery date was found
func (d *DeliveryDetail) IsEmpty() bool {
	return d == nil || *d == DeliveryDetail{}
}

// CanonicalOrder is the format-independent result of importing an order
// document. Lines keep document order. Optional sub-structures are nil when
// the document does not carry them.
type CanonicalOrder struct {
	DocType         DocType         `json:"doc_type" yaml:"doc_type"`
	UBLVersion      string          `json:"ubl_version,omitempty" yaml:"ubl_version,omitempty"`
	OrderReference  string          `json:"order_ref" yaml:"order_ref"`
	IssueDate       string          `json:"date" yaml:"date"`
	CurrencyISOCode *string         `json:"currency,omitempty" yaml:"currency,omitempty"`
	Partner         Party           `json:"partner" yaml:"partner"`
	Company         Party           `json:"company" yaml:"company"`
	ShipTo          *Party          `json:"ship_to,omitempty" yaml:"ship_to,omitempty"`
	InvoiceTo       *Party          `json:"invoice_to,omitempty" yaml:"invoice_to,omitempty"`
	Incoterm        *Incoterm       `json:"incoterm,omitempty" yaml:"incoterm,omitempty"`
	DeliveryDetail  *DeliveryDetail `json:"delivery_detail,omitempty" yaml:"delivery_detail,omitempty"`
	Note            *string         `json:"note,omitempty" yaml:"note,omitempty"`
	Lines           []OrderLine     `json:"lines" yaml:"lines"`
}

// Currency returns the resolved currency code and whether one was found
func (o *CanonicalOrder) Currency() (string, bool) {
	if o.CurrencyISOCode == nil {
		return "", false
	}
	return *o.CurrencyISOCode, true
}

// TotalUntaxed sums the line subtotals
func (o *CanonicalOrder) TotalUntaxed() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// DropPlaceholderVAT clears the customer VAT when it is one of the given
// known placeholder numbers. Returns true if the VAT was cleared.
func (o *CanonicalOrder) DropPlaceholderVAT(placeholders []string) bool {
	if o.Partner.VAT == "" {
		return false
	}
	for _, p := range placeholders {
		if o.Partner.VAT == p {
			o.Partner.VAT = ""
			return true
		}
	}
	return false
}
