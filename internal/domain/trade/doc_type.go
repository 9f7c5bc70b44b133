package trade

// UBLNamespacePrefix is shared by every UBL 2 document schema
const UBLNamespacePrefix = "urn:oasis:names:specification:ubl:schema:xsd:"

// DocType identifies which inbound UBL document an order was read from
type DocType string

const (
	DocTypeOrder DocType = "order"
	DocTypeRFQ   DocType = "rfq"
)

// DocTypes returns the supported document types in detection order
func DocTypes() []DocType {
	return []DocType{DocTypeOrder, DocTypeRFQ}
}

// IsValid checks if the doc type is supported
func (d DocType) IsValid() bool {
	switch d {
	case DocTypeOrder, DocTypeRFQ:
		return true
	}
	return false
}

// String returns the short tag ("order" or "rfq")
func (d DocType) String() string {
	return string(d)
}

// Document returns the UBL document name, which is also the root element local name
func (d DocType) Document() string {
	switch d {
	case DocTypeOrder:
		return "Order"
	case DocTypeRFQ:
		return "RequestForQuotation"
	}
	return ""
}

// Namespace returns the default namespace of the document root
func (d DocType) Namespace() string {
	if !d.IsValid() {
		return ""
	}
	return UBLNamespacePrefix + d.Document() + "-2"
}

// RootName returns the root element qualified name in {namespace}local form
func (d DocType) RootName() string {
	if !d.IsValid() {
		return ""
	}
	return "{" + d.Namespace() + "}" + d.Document()
}

// LineName returns the local name of the line container element
func (d DocType) LineName() string {
	if !d.IsValid() {
		return ""
	}
	return d.Document() + "Line"
}
