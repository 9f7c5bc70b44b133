package ubl

import (
	"github.com/beevik/etree"
	"github.com/erp/docimport/internal/domain/trade"
)

// parseDelivery reads the ship-to party of a cac:Delivery element. The
// address comes from the delivery location, falling back to the delivery
// address, and overrides the party's postal address.
func parseDelivery(r *Resolver, node *etree.Element) *trade.Party {
	var party trade.Party
	if partyNode := r.FindOne(node, "cac:DeliveryParty"); partyNode != nil {
		party = parseParty(r, partyNode)
	}
	addrNode := r.FindOne(node, "cac:DeliveryLocation/cac:Address")
	if addrNode == nil {
		addrNode = r.FindOne(node, "cac:DeliveryAddress")
	}
	if addrNode != nil {
		if addr := parseAddress(r, addrNode); addr != nil {
			party.Address = addr
		}
	}
	if party.IsEmpty() {
		return nil
	}
	return &party
}

// parseDeliveryDetails reads the requested delivery dates of a cac:Delivery element
func parseDeliveryDetails(r *Resolver, node *etree.Element) *trade.DeliveryDetail {
	detail := &trade.DeliveryDetail{
		PeriodStart: r.TextOr(node, "cac:RequestedDeliveryPeriod/cbc:StartDate"),
		PeriodEnd:   r.TextOr(node, "cac:RequestedDeliveryPeriod/cbc:EndDate"),
	}
	if date := r.TextOr(node, "cbc:LatestDeliveryDate"); date != "" {
		detail.CommitmentDate = date
		if tm := r.TextOr(node, "cbc:LatestDeliveryTime"); tm != "" {
			detail.CommitmentDate = date + " " + tm
		}
	}
	if detail.IsEmpty() {
		return nil
	}
	return detail
}

// parseIncoterm reads the code of a cac:DeliveryTerms element
func parseIncoterm(r *Resolver, node *etree.Element) *trade.Incoterm {
	code := r.TextOr(node, "cbc:ID")
	if code == "" {
		return nil
	}
	return &trade.Incoterm{Code: code}
}
