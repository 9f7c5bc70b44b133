package ubl

import (
	"github.com/beevik/etree"
	"github.com/erp/docimport/internal/domain/trade"
)

// parseParty reads a cac:Party element
func parseParty(r *Resolver, node *etree.Element) trade.Party {
	party := trade.Party{
		Name:        r.TextOr(node, "cac:PartyName/cbc:Name"),
		VAT:         r.TextOr(node, "cac:PartyTaxScheme/cbc:CompanyID"),
		Email:       r.TextOr(node, "cac:Contact/cbc:ElectronicMail"),
		Phone:       r.TextOr(node, "cac:Contact/cbc:Telephone"),
		ContactName: r.TextOr(node, "cac:Contact/cbc:Name"),
		Website:     r.TextOr(node, "cbc:WebsiteURI"),
		Ref:         r.TextOr(node, "cac:PartyIdentification/cbc:ID"),
		IDNumbers:   parseIdentifiers(r, node),
	}
	if addr := r.FindOne(node, "cac:PostalAddress"); addr != nil {
		party.Address = parseAddress(r, addr)
	}
	return party
}

// parseIdentifiers collects PartyIdentification IDs and scheme-qualified
// legal entity IDs, keeping document order
func parseIdentifiers(r *Resolver, node *etree.Element) []trade.PartyIdentifier {
	var ids []trade.PartyIdentifier
	for _, el := range r.Find(node, "cac:PartyIdentification/cbc:ID") {
		scheme, _ := attr(el, "schemeID")
		ids = append(ids, trade.PartyIdentifier{SchemeID: scheme, Value: trimmedText(el)})
	}
	for _, el := range r.Find(node, "cac:PartyLegalEntity/cbc:CompanyID") {
		if scheme, ok := attr(el, "schemeID"); ok && scheme != "" {
			ids = append(ids, trade.PartyIdentifier{SchemeID: scheme, Value: trimmedText(el)})
		}
	}
	return ids
}

// parseCustomerParty reads a customer party wrapper (BuyerCustomerParty,
// OriginatorCustomerParty, AccountingCustomerParty). The reference is the
// account ID the supplier assigned to the customer.
func parseCustomerParty(r *Resolver, node *etree.Element, path string) (trade.Party, error) {
	partyNode := r.FindOne(node, "cac:Party")
	if partyNode == nil {
		return trade.Party{}, missing(path + "/cac:Party")
	}
	party := parseParty(r, partyNode)
	party.Ref = r.TextOr(node, "cbc:SupplierAssignedAccountID")
	return party, nil
}

func parseAddress(r *Resolver, node *etree.Element) *trade.Address {
	addr := &trade.Address{
		Street:      r.TextOr(node, "cbc:StreetName"),
		Street2:     r.TextOr(node, "cbc:AdditionalStreetName"),
		City:        r.TextOr(node, "cbc:CityName"),
		Zip:         r.TextOr(node, "cbc:PostalZone"),
		StateCode:   r.TextOr(node, "cbc:CountrySubentityCode"),
		CountryCode: r.TextOr(node, "cac:Country/cbc:IdentificationCode"),
	}
	if number := r.TextOr(node, "cbc:BuildingNumber"); number != "" && addr.Street != "" {
		addr.Street = addr.Street + " " + number
	}
	if addr.IsEmpty() {
		return nil
	}
	return addr
}
