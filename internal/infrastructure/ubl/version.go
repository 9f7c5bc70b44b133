package ubl

import "github.com/erp/docimport/internal/domain/trade"

// DefaultVersion is assumed when a document carries no UBLVersionID
const DefaultVersion = "2.1"

// SupportedVersions lists the UBL 2 releases the importer accepts
var SupportedVersions = []string{"2.0", "2.1", "2.2", "2.3", "2.4"}

func documentVersion(r *Resolver, dt trade.DocType, fallback string) string {
	if v := r.TextOr(nil, rootPath(dt, "cbc:UBLVersionID")); v != "" {
		return v
	}
	if fallback == "" {
		return DefaultVersion
	}
	return fallback
}

func isSupportedVersion(v string) bool {
	for _, s := range SupportedVersions {
		if s == v {
			return true
		}
	}
	return false
}
