package ubl

import (
	"testing"

	"github.com/erp/docimport/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		xml     string
		want    trade.DocType
		wantErr error
	}{
		{
			name: "order",
			xml:  `<Order xmlns="urn:oasis:names:specification:ubl:schema:xsd:Order-2"/>`,
			want: trade.DocTypeOrder,
		},
		{
			name: "request for quotation",
			xml:  `<RequestForQuotation xmlns="urn:oasis:names:specification:ubl:schema:xsd:RequestForQuotation-2"/>`,
			want: trade.DocTypeRFQ,
		},
		{
			name: "prefixed root",
			xml:  `<ord:Order xmlns:ord="urn:oasis:names:specification:ubl:schema:xsd:Order-2"/>`,
			want: trade.DocTypeOrder,
		},
		{
			name:    "invoice",
			xml:     `<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"/>`,
			wantErr: ErrFormatMismatch,
		},
		{
			name:    "order name in the wrong namespace",
			xml:     `<Order xmlns="urn:oasis:names:specification:ubl:schema:xsd:OrderResponse-2"/>`,
			wantErr: ErrFormatMismatch,
		},
		{
			name:    "order root without namespace",
			xml:     `<Order/>`,
			wantErr: ErrFormatMismatch,
		},
		{
			name:    "root and namespace of different documents",
			xml:     `<Order xmlns="urn:oasis:names:specification:ubl:schema:xsd:RequestForQuotation-2"/>`,
			wantErr: ErrFormatMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect(parseXML(t, tt.xml))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("nil root", func(t *testing.T) {
		_, err := Detect(nil)
		assert.ErrorIs(t, err, ErrFormatMismatch)
	})
}

func TestDocTypeFromNamespace(t *testing.T) {
	tests := []struct {
		ns     string
		want   trade.DocType
		wantOK bool
	}{
		{"urn:oasis:names:specification:ubl:schema:xsd:Order-2", trade.DocTypeOrder, true},
		// the RFQ namespace also contains "Order"
		{"urn:oasis:names:specification:ubl:schema:xsd:RequestForQuotation-2", trade.DocTypeRFQ, true},
		{"urn:example:RequestForQuotationOrder", trade.DocTypeRFQ, true},
		{"urn:oasis:names:specification:ubl:schema:xsd:Invoice-2", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.ns, func(t *testing.T) {
			got, ok := docTypeFromNamespace(tt.ns)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRootPath(t *testing.T) {
	assert.Equal(t, "/main:Order/cbc:ID", rootPath(trade.DocTypeOrder, "cbc:ID"))
	assert.Equal(t, "/main:RequestForQuotation/cac:RequestForQuotationLine",
		rootPath(trade.DocTypeRFQ, "cac:"+trade.DocTypeRFQ.LineName()))
}
