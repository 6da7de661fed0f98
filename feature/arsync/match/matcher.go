package match

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"ar-sync/core/crm"
	"ar-sync/feature/arsync/models"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

// Searcher is the CRM search capability the matcher needs.
type Searcher interface {
	Search(ctx context.Context, filterField string, op crm.Operator, value string, properties []string, limit int) ([]crm.Company, error)
}

// NamePolicy selects the fallback used when no company carries the NetSuite id.
type NamePolicy string

const (
	// NameExact requires the company name to equal the full display name.
	NameExact NamePolicy = "exact"
	// NameToken searches for the first word of the display name and prefers a result
	// whose name contains it. Short or generic first words ("SUPER", "GRUPO") can
	// link unrelated companies; use only where names are distinctive.
	NameToken NamePolicy = "token"
)

// ParseNamePolicy validates a configured policy name.
func ParseNamePolicy(s string) (NamePolicy, error) {
	switch NamePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case NameExact, "":
		return NameExact, nil
	case NameToken:
		return NameToken, nil
	default:
		return "", fmt.Errorf("unknown name match policy %q (want exact or token)", s)
	}
}

// DefaultTokenLimit is how many candidates a token search fetches.
const DefaultTokenLimit = 10

// Matcher resolves a NetSuite customer to a HubSpot company. It never writes.
type Matcher struct {
	searcher   Searcher
	policy     NamePolicy
	names      models.PropertyNames
	tokenLimit int
	logger     *zap.Logger
}

// NewMatcher creates a matcher. tokenLimit <= 0 uses DefaultTokenLimit.
func NewMatcher(searcher Searcher, policy NamePolicy, names models.PropertyNames, tokenLimit int, logger *zap.Logger) *Matcher {
	if tokenLimit <= 0 {
		tokenLimit = DefaultTokenLimit
	}
	return &Matcher{
		searcher:   searcher,
		policy:     policy,
		names:      names,
		tokenLimit: tokenLimit,
		logger:     logger,
	}
}

// Policy returns the configured name policy.
func (m *Matcher) Policy() NamePolicy {
	return m.policy
}

// Resolve finds the company for one record: by NetSuite id first, then by name.
func (m *Matcher) Resolve(ctx context.Context, externalCustomerID, displayName string) (models.MatchResult, error) {
	props := m.names.SearchProperties()

	if externalCustomerID != "" {
		byID, err := m.searcher.Search(ctx, m.names.ExternalID, crm.OperatorEQ, externalCustomerID, props, 1)
		if err != nil {
			return models.MatchResult{}, fmt.Errorf("search by id %s: %w", externalCustomerID, err)
		}
		if len(byID) > 0 {
			company := models.CompanyFromCRM(byID[0], m.names)
			m.logger.Debug("Matched by NetSuite id", zap.String("customer_id", externalCustomerID), zap.String("company", company.Name))
			return models.MatchResult{Company: &company, Basis: models.MatchByID}, nil
		}
	}

	company, err := m.byName(ctx, displayName, props)
	if err != nil {
		return models.MatchResult{}, err
	}
	if company != nil {
		m.logger.Debug("Matched by name", zap.String("customer_name", displayName), zap.String("company", company.Name), zap.String("policy", string(m.policy)))
		return models.MatchResult{Company: company, Basis: models.MatchByName}, nil
	}

	return models.MatchResult{Basis: models.MatchNone}, nil
}

func (m *Matcher) byName(ctx context.Context, displayName string, props []string) (*models.Company, error) {
	if strings.TrimSpace(displayName) == "" {
		return nil, nil
	}

	switch m.policy {
	case NameToken:
		token := FirstToken(displayName)
		if token == "" {
			return nil, nil
		}
		results, err := m.searcher.Search(ctx, m.names.Name, crm.OperatorContainsToken, token, props, m.tokenLimit)
		if err != nil {
			return nil, fmt.Errorf("search by name token %q: %w", token, err)
		}
		best := pickByToken(results, token, m.names.Name)
		if best == nil {
			return nil, nil
		}
		company := models.CompanyFromCRM(*best, m.names)
		return &company, nil

	default:
		results, err := m.searcher.Search(ctx, m.names.Name, crm.OperatorEQ, displayName, props, 1)
		if err != nil {
			return nil, fmt.Errorf("search by name %q: %w", displayName, err)
		}
		if len(results) == 0 {
			return nil, nil
		}
		company := models.CompanyFromCRM(results[0], m.names)
		return &company, nil
	}
}

// FirstToken returns the first whitespace-delimited word of name with surrounding
// punctuation removed, e.g. "CALLEJA, S.A DE C.V" -> "CALLEJA".
func FirstToken(name string) string {
	for _, field := range strings.Fields(name) {
		token := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if token != "" {
			return token
		}
	}
	return ""
}

// pickByToken returns the first result whose name contains token (case-folded),
// else the first result.
func pickByToken(results []crm.Company, token, nameProp string) *crm.Company {
	if len(results) == 0 {
		return nil
	}
	fold := cases.Fold()
	needle := fold.String(token)
	for i := range results {
		if strings.Contains(fold.String(results[i].Properties[nameProp]), needle) {
			return &results[i]
		}
	}
	return &results[0]
}
