package crm

// Operator is a HubSpot search filter operator.
type Operator string

const (
	// OperatorEQ matches the property value exactly.
	OperatorEQ Operator = "EQ"
	// OperatorContainsToken matches when the value appears as a word in the property.
	OperatorContainsToken Operator = "CONTAINS_TOKEN"
)

// Company is a HubSpot company record. HubSpot returns every property as a string.
type Company struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
}

// Filter is one search condition.
type Filter struct {
	PropertyName string   `json:"propertyName"`
	Operator     Operator `json:"operator"`
	Value        string   `json:"value"`
}

// FilterGroup ANDs its filters.
type FilterGroup struct {
	Filters []Filter `json:"filters"`
}

// SearchRequest is the body of POST /crm/v3/objects/companies/search.
type SearchRequest struct {
	FilterGroups []FilterGroup `json:"filterGroups"`
	Properties   []string      `json:"properties"`
	Limit        int           `json:"limit"`
}

type searchResponse struct {
	Total   int       `json:"total"`
	Results []Company `json:"results"`
}

type writeRequest struct {
	Properties map[string]string `json:"properties"`
}
