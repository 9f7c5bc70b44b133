package ubl

import (
	"context"
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/erp/docimport/internal/domain/trade"
)

// SchemaValidator checks a serialized document against the schema of the
// named UBL document and version before any value is extracted
type SchemaValidator interface {
	Validate(ctx context.Context, xml []byte, document, version string) error
}

// SchemaValidatorFunc adapts a function to SchemaValidator
type SchemaValidatorFunc func(ctx context.Context, xml []byte, document, version string) error

// Validate calls f
func (f SchemaValidatorFunc) Validate(ctx context.Context, xml []byte, document, version string) error {
	return f(ctx, xml, document, version)
}

// NopValidator accepts every document
var NopValidator SchemaValidator = SchemaValidatorFunc(func(context.Context, []byte, string, string) error {
	return nil
})

const unbounded = -1

type occurrence struct {
	path string
	min  int
	max  int
}

type documentSchema struct {
	header []occurrence
	line   []occurrence
	dates  []string
}

var lineItemRules = []occurrence{
	{path: "cac:LineItem", min: 1, max: 1},
	{path: "cac:LineItem/cbc:ID", min: 1, max: 1},
	{path: "cac:LineItem/cbc:Quantity", min: 0, max: 1},
	{path: "cac:LineItem/cbc:LineExtensionAmount", min: 0, max: 1},
	{path: "cac:LineItem/cac:Item", min: 1, max: 1},
}

var documentSchemas = map[string]documentSchema{
	"Order": {
		header: []occurrence{
			{path: "cbc:UBLVersionID", min: 0, max: 1},
			{path: "cbc:ID", min: 1, max: 1},
			{path: "cbc:IssueDate", min: 1, max: 1},
			{path: "cbc:DocumentCurrencyCode", min: 0, max: 1},
			{path: "cbc:PricingCurrencyCode", min: 0, max: 1},
			{path: "cac:BuyerCustomerParty", min: 1, max: 1},
			{path: "cac:SellerSupplierParty", min: 1, max: 1},
			{path: "cac:AccountingCustomerParty", min: 0, max: 1},
			{path: "cac:DeliveryTerms", min: 0, max: 1},
			{path: "cac:OrderLine", min: 1, max: unbounded},
		},
		line:  lineItemRules,
		dates: []string{"cbc:IssueDate"},
	},
	"RequestForQuotation": {
		header: []occurrence{
			{path: "cbc:UBLVersionID", min: 0, max: 1},
			{path: "cbc:ID", min: 1, max: 1},
			{path: "cbc:IssueDate", min: 1, max: 1},
			{path: "cbc:PricingCurrencyCode", min: 0, max: 1},
			{path: "cac:SellerSupplierParty", min: 1, max: 1},
			{path: "cac:BuyerCustomerParty", min: 0, max: 1},
			{path: "cac:OriginatorCustomerParty", min: 0, max: 1},
			{path: "cac:DeliveryTerms", min: 0, max: 1},
			{path: "cac:RequestForQuotationLine", min: 1, max: unbounded},
		},
		line:  lineItemRules,
		dates: []string{"cbc:IssueDate"},
	},
}

// StructuralValidator enforces the element occurrence constraints, date
// formats and versions of the Order and RequestForQuotation schemas.
// All problems are collected before returning.
type StructuralValidator struct {
	schemas map[string]documentSchema
}

// NewStructuralValidator creates a validator for the supported documents
func NewStructuralValidator() *StructuralValidator {
	return &StructuralValidator{schemas: documentSchemas}
}

// Validate implements SchemaValidator
func (v *StructuralValidator) Validate(ctx context.Context, xml []byte, document, version string) error {
	fail := func(problems ...string) error {
		return &SchemaValidationError{Document: document, Version: version, Problems: problems}
	}

	schema, ok := v.schemas[document]
	if !ok {
		return fail(fmt.Sprintf("no schema is known for document %q", document))
	}

	doc := newDocument()
	if err := doc.ReadFromBytes(xml); err != nil {
		return fail("document is not well-formed: " + err.Error())
	}
	root := doc.Root()
	if root == nil {
		return fail("document is empty")
	}

	var problems []string
	if !isSupportedVersion(version) {
		problems = append(problems, fmt.Sprintf("UBL version %q is not supported", version))
	}
	wantNS := trade.UBLNamespacePrefix + document + "-2"
	if root.Tag != document || namespaceURI(root) != wantNS {
		problems = append(problems, fmt.Sprintf("root element %s is not {%s}%s", qualifiedName(root), wantNS, document))
		return fail(problems...)
	}

	r := NewResolver(root)
	problems = append(problems, checkOccurrences(r, root, document, schema.header)...)
	for i, line := range r.Find(root, "cac:"+document+"Line") {
		name := fmt.Sprintf("%sLine[%d]", document, i+1)
		problems = append(problems, checkOccurrences(r, line, name, schema.line)...)
	}
	for _, path := range schema.dates {
		if text, ok := r.Text(root, path); ok {
			if !isXSDate(text) {
				problems = append(problems, fmt.Sprintf("in element <%s>: %q is not a valid xs:date", path, text))
			}
		}
	}

	if len(problems) > 0 {
		return fail(problems...)
	}
	return nil
}

// xsDateLayouts are the lexical forms of xs:date: a plain date, optionally
// followed by "Z" or a "+hh:mm"/"-hh:mm" offset
var xsDateLayouts = []string{"2006-01-02", "2006-01-02Z07:00", "2006-01-02Z"}

func isXSDate(text string) bool {
	for _, layout := range xsDateLayouts {
		if _, err := time.Parse(layout, text); err == nil {
			return true
		}
	}
	return false
}

func checkOccurrences(r *Resolver, node *etree.Element, name string, rules []occurrence) []string {
	var problems []string
	for _, rule := range rules {
		count := len(r.Find(node, rule.path))
		if count < rule.min {
			problems = append(problems, fmt.Sprintf(
				"element <%s> requires at least %d <%s> child, but found %d",
				name, rule.min, rule.path, count))
		}
		if rule.max != unbounded && count > rule.max {
			problems = append(problems, fmt.Sprintf(
				"element <%s> allows at most %d <%s> child, but found %d",
				name, rule.max, rule.path, count))
		}
	}
	return problems
}
