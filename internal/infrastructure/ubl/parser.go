// Package ubl reads UBL 2 Order and RequestForQuotation documents into
// canonical orders.
package ubl

import (
	"context"
	"fmt"

	"github.com/beevik/etree"
	"github.com/erp/docimport/internal/domain/shared/strategy"
	"github.com/erp/docimport/internal/domain/trade"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

const tracerName = "github.com/erp/docimport/internal/infrastructure/ubl"

// DefaultSampleVATs are VAT numbers found in published UBL sample files.
// They are dropped from the customer party so sample data never reaches
// partner matching.
var DefaultSampleVATs = []string{"SE1234567801", "12356478", "DK12345678"}

// Config holds parser settings
type Config struct {
	// QuantityPrecision is the number of decimal digits below which a
	// quantity counts as zero when deriving unit prices
	QuantityPrecision int32
	// SampleVATs are customer VAT numbers to drop from parsed orders
	SampleVATs []string
	// DefaultVersion is used when the document has no UBLVersionID
	DefaultVersion string
}

// DefaultConfig returns the parser defaults
func DefaultConfig() Config {
	return Config{
		QuantityPrecision: 3,
		SampleVATs:        DefaultSampleVATs,
		DefaultVersion:    DefaultVersion,
	}
}

// Parser turns UBL order documents into canonical orders
type Parser struct {
	strategy.BaseStrategy
	cfg       Config
	validator SchemaValidator
	logger    *zap.Logger
	tracer    trace.Tracer
}

// ParserOption is a functional option for configuring Parser
type ParserOption func(*Parser)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) ParserOption {
	return func(p *Parser) {
		p.logger = logger
	}
}

// WithSchemaValidator replaces the structural validator
func WithSchemaValidator(v SchemaValidator) ParserOption {
	return func(p *Parser) {
		p.validator = v
	}
}

// WithTracer sets the tracer used for parse spans
func WithTracer(t trace.Tracer) ParserOption {
	return func(p *Parser) {
		p.tracer = t
	}
}

// NewParser creates a Parser
func NewParser(cfg Config, opts ...ParserOption) *Parser {
	if cfg.DefaultVersion == "" {
		cfg.DefaultVersion = DefaultVersion
	}
	p := &Parser{
		BaseStrategy: strategy.NewBaseStrategy("ubl",
			strategy.StrategyTypeDocumentImport,
			"UBL 2 Order and RequestForQuotation"),
		cfg:       cfg,
		validator: NewStructuralValidator(),
		logger:    zap.NewNop(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// DetectDocType returns the document type without parsing the content.
// Returns ErrFormatMismatch for any other document.
func (p *Parser) DetectDocType(ctx context.Context, raw []byte) (trade.DocType, error) {
	doc, err := readDocument(raw)
	if err != nil {
		return "", err
	}
	return Detect(doc.Root())
}

// Parse validates and reads a UBL order document. Returns ErrFormatMismatch
// when the root is not a supported document, *SchemaValidationError when the
// validator rejects it, and *ParseError for structural or numeric problems.
func (p *Parser) Parse(ctx context.Context, raw []byte) (*trade.CanonicalOrder, error) {
	ctx, span := p.tracer.Start(ctx, "ubl.Parse")
	defer span.End()

	doc, err := readDocument(raw)
	if err == nil {
		_, err = Detect(doc.Root())
	}
	if err == nil {
		var order *trade.CanonicalOrder
		order, err = p.assemble(ctx, doc)
		if err == nil {
			span.SetAttributes(
				attribute.String("ubl.doc_type", order.DocType.String()),
				attribute.String("ubl.order_ref", order.OrderReference),
				attribute.Int("ubl.lines", len(order.Lines)),
			)
			return order, nil
		}
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return nil, err
}

func (p *Parser) assemble(ctx context.Context, doc *etree.Document) (*trade.CanonicalOrder, error) {
	root := doc.Root()
	r := NewResolver(root)
	dt, ok := docTypeFromNamespace(r.MainNamespace())
	if !ok {
		return nil, ErrFormatMismatch
	}

	version := documentVersion(r, dt, p.cfg.DefaultVersion)
	normalized, err := serialize(doc)
	if err != nil {
		return nil, &ParseError{Path: "/", Err: err}
	}
	if err := p.validator.Validate(ctx, normalized, dt.Document(), version); err != nil {
		return nil, err
	}

	order := &trade.CanonicalOrder{
		DocType:    dt,
		UBLVersion: version,
	}

	date, ok := r.Text(nil, rootPath(dt, "cbc:IssueDate"))
	if !ok {
		return nil, missing(rootPath(dt, "cbc:IssueDate"))
	}
	order.IssueDate = date
	order.CurrencyISOCode = resolveCurrency(r, dt)
	ref, ok := r.Text(nil, rootPath(dt, "cbc:ID"))
	if !ok {
		return nil, missing(rootPath(dt, "cbc:ID"))
	}
	order.OrderReference = ref

	customerPath := rootPath(dt, "cac:BuyerCustomerParty")
	customerNode := r.FindOne(nil, customerPath)
	if customerNode == nil {
		customerPath = rootPath(dt, "cac:OriginatorCustomerParty")
		customerNode = r.FindOne(nil, customerPath)
	}
	if customerNode == nil {
		return nil, missing(rootPath(dt, "cac:BuyerCustomerParty"))
	}
	if order.Partner, err = parseCustomerParty(r, customerNode, customerPath); err != nil {
		return nil, err
	}

	supplierPath := rootPath(dt, "cac:SellerSupplierParty/cac:Party")
	supplierNode := r.FindOne(nil, supplierPath)
	if supplierNode == nil {
		return nil, missing(supplierPath)
	}
	supplier := parseParty(r, supplierNode)
	order.Company = supplier.OfficialReferences()

	if delivery := r.FindOne(nil, rootPath(dt, "cac:Delivery")); delivery != nil {
		order.ShipTo = parseDelivery(r, delivery)
		order.DeliveryDetail = parseDeliveryDetails(r, delivery)
	}
	if terms := r.FindOne(nil, rootPath(dt, "cac:DeliveryTerms")); terms != nil {
		order.Incoterm = parseIncoterm(r, terms)
	}
	invoicePath := rootPath(dt, "cac:AccountingCustomerParty")
	if invoicing := r.FindOne(nil, invoicePath); invoicing != nil {
		invoiceTo, err := parseCustomerParty(r, invoicing, invoicePath)
		if err != nil {
			return nil, err
		}
		order.InvoiceTo = &invoiceTo
	}
	// the note is free text and kept as written
	if el := r.FindOne(nil, rootPath(dt, "cbc:Note")); el != nil {
		if note := el.Text(); note != "" {
			order.Note = &note
		}
	}

	lines := r.Find(nil, rootPath(dt, "cac:"+dt.LineName()))
	order.Lines = make([]trade.OrderLine, 0, len(lines))
	for i, node := range lines {
		line, err := parseLine(r, node, p.cfg.QuantityPrecision)
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", dt.LineName(), i+1, err)
		}
		order.Lines = append(order.Lines, line)
	}

	if vat := order.Partner.VAT; order.DropPlaceholderVAT(p.cfg.SampleVATs) {
		p.logger.Info("Dropped sample VAT from customer party",
			zap.String("vat", vat),
			zap.String("order_ref", order.OrderReference),
		)
	}

	p.logger.Debug("Parsed UBL document",
		zap.String("doc_type", dt.String()),
		zap.String("version", version),
		zap.String("order_ref", order.OrderReference),
		zap.Int("lines", len(order.Lines)),
	)
	return order, nil
}

// newDocument returns an empty tree that decodes any declared encoding
// (ISO-8859-1, windows-1252, UTF-16...) to UTF-8 while reading
func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	return doc
}

func readDocument(raw []byte) (*etree.Document, error) {
	doc := newDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, &ParseError{Path: "/", Err: err}
	}
	if doc.Root() == nil {
		return nil, &ParseError{Path: "/", Err: errElementMissing}
	}
	return doc, nil
}

// serialize writes an indented UTF-8 copy of the document. The XML
// declaration is rewritten since the tree no longer holds the source encoding.
func serialize(doc *etree.Document) ([]byte, error) {
	out := doc.Copy()
	decl := &etree.ProcInst{Target: "xml", Inst: `version="1.0" encoding="UTF-8"`}
	if len(out.Child) > 0 && isProcInst(out.Child[0]) {
		out.RemoveChildAt(0)
	}
	out.InsertChildAt(0, decl)
	out.Indent(2)
	return out.WriteToBytes()
}

func isProcInst(t etree.Token) bool {
	pi, ok := t.(*etree.ProcInst)
	return ok && pi.Target == "xml"
}
