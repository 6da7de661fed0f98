package models

// PropertyNames maps the sync's fields to HubSpot company property names.
type PropertyNames struct {
	Name           string
	ExternalID     string
	TotalBalance   string
	PastDueBalance string
	// LegalName receives the NetSuite name when a company is linked for the first
	// time. Empty disables the write.
	LegalName string
}

// DefaultPropertyNames returns the property names used by the HubSpot portal.
func DefaultPropertyNames() PropertyNames {
	return PropertyNames{
		Name:           "name",
		ExternalID:     "netsuite_customer_id",
		TotalBalance:   "total_ar_balance",
		PastDueBalance: "past_due_amount",
		LegalName:      "netsuite_legal_name",
	}
}

// SearchProperties lists the properties requested on every search.
func (p PropertyNames) SearchProperties() []string {
	props := []string{p.Name, p.ExternalID, p.TotalBalance, p.PastDueBalance}
	if p.LegalName != "" {
		props = append(props, p.LegalName)
	}
	return props
}
