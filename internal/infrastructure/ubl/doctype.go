package ubl

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/erp/docimport/internal/domain/trade"
)

// Detect returns the document type whose root qualified name equals the
// root element's. Any other root gives ErrFormatMismatch.
func Detect(root *etree.Element) (trade.DocType, error) {
	if root == nil {
		return "", ErrFormatMismatch
	}
	name := qualifiedName(root)
	for _, dt := range trade.DocTypes() {
		if name == dt.RootName() {
			return dt, nil
		}
	}
	return "", ErrFormatMismatch
}

// docTypeFromNamespace picks the document type from the root namespace.
// The RequestForQuotation test must run first: its namespace also contains
// "Order".
func docTypeFromNamespace(ns string) (trade.DocType, bool) {
	switch {
	case strings.Contains(ns, "RequestForQuotation"):
		return trade.DocTypeRFQ, true
	case strings.Contains(ns, "Order"):
		return trade.DocTypeOrder, true
	}
	return "", false
}

// rootPath anchors a relative path at the document root
func rootPath(dt trade.DocType, rel string) string {
	return "/main:" + dt.Document() + "/" + rel
}
