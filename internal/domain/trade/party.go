package trade

// PartyIdentifier is an external identifier carried by a party, e.g. a
// registry number qualified by its scheme
type PartyIdentifier struct {
	SchemeID string `json:"scheme_id,omitempty" yaml:"scheme_id,omitempty"`
	Value    string `json:"value" yaml:"value"`
}

// HasScheme reports whether the identifier is qualified by a scheme. Any
// non-empty schemeID counts, whitespace included.
func (i PartyIdentifier) HasScheme() bool {
	return i.SchemeID != ""
}

// Address is a postal address extracted from a document
type Address struct {
	Street      string `json:"street,omitempty" yaml:"street,omitempty"`
	Street2     string `json:"street2,omitempty" yaml:"street2,omitempty"`
	City        string `json:"city,omitempty" yaml:"city,omitempty"`
	Zip         string `json:"zip,omitempty" yaml:"zip,omitempty"`
	StateCode   string `json:"state_code,omitempty" yaml:"state_code,omitempty"`
	CountryCode string `json:"country_code,omitempty" yaml:"country_code,omitempty"`
}

// IsEmpty reports whether no address field was found
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// Party describes a business partner as found in the document.
// Empty strings mean the field was absent.
type Party struct {
	Name        string            `json:"name,omitempty" yaml:"name,omitempty"`
	VAT         string            `json:"vat,omitempty" yaml:"vat,omitempty"`
	Email       string            `json:"email,omitempty" yaml:"email,omitempty"`
	Phone       string            `json:"phone,omitempty" yaml:"phone,omitempty"`
	Website     string            `json:"website,omitempty" yaml:"website,omitempty"`
	ContactName string            `json:"contact,omitempty" yaml:"contact,omitempty"`
	Ref         string            `json:"ref,omitempty" yaml:"ref,omitempty"`
	Address     *Address          `json:"address,omitempty" yaml:"address,omitempty"`
	IDNumbers   []PartyIdentifier `json:"id_numbers,omitempty" yaml:"id_numbers,omitempty"`
}

// IsEmpty reports whether nothing was extracted for the party
func (p *Party) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.Name == "" && p.VAT == "" && p.Email == "" && p.Phone == "" &&
		p.Website == "" && p.ContactName == "" && p.Ref == "" &&
		(p.Address == nil || p.Address.IsEmpty()) && len(p.IDNumbers) == 0
}

// SchemeIDs returns the distinct non-empty schemes in document order
func (p *Party) SchemeIDs() []string {
	if p == nil {
		return nil
	}
	seen := make(map[string]bool, len(p.IDNumbers))
	var schemes []string
	for _, id := range p.IDNumbers {
		if !id.HasScheme() || seen[id.SchemeID] {
			continue
		}
		seen[id.SchemeID] = true
		schemes = append(schemes, id.SchemeID)
	}
	return schemes
}

// OfficialReferences returns a copy holding only the VAT number
func (p *Party) OfficialReferences() Party {
	if p == nil {
		return Party{}
	}
	return Party{VAT: p.VAT}
}
