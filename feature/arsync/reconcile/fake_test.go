package reconcile_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"ar-sync/core/crm"
	"ar-sync/feature/arsync/models"
)

// fakeCRM is an in-memory HubSpot with just enough search semantics for the matcher.
type fakeCRM struct {
	mu        sync.Mutex
	companies []crm.Company
	nextID    int
	creates   []map[string]string
	updates   map[string][]map[string]string
	failIDs   map[string]error
	searchErr error
	// writeDelay makes every create slow; writes records when each one ran.
	writeDelay time.Duration
	writes     []span
}

type span struct {
	start, end time.Time
}

func newFakeCRM(companies ...crm.Company) *fakeCRM {
	return &fakeCRM{
		companies: companies,
		nextID:    1000,
		updates:   map[string][]map[string]string{},
		failIDs:   map[string]error{},
	}
}

func (f *fakeCRM) Search(_ context.Context, field string, op crm.Operator, value string, _ []string, limit int) ([]crm.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}

	var out []crm.Company
	for _, c := range f.companies {
		v := c.Properties[field]
		hit := false
		switch op {
		case crm.OperatorEQ:
			hit = v == value
		case crm.OperatorContainsToken:
			hit = strings.Contains(strings.ToLower(v), strings.ToLower(value))
		}
		if hit {
			out = append(out, copyCompany(c))
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCRM) Create(_ context.Context, props map[string]string) (*crm.Company, error) {
	start := time.Now()
	time.Sleep(f.writeDelay)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, span{start: start, end: time.Now()})
	if err := f.failIDs[props["netsuite_customer_id"]]; err != nil {
		return nil, err
	}
	f.nextID++
	c := crm.Company{ID: strconv.Itoa(f.nextID), Properties: copyProps(props)}
	f.companies = append(f.companies, c)
	f.creates = append(f.creates, copyProps(props))
	out := copyCompany(c)
	return &out, nil
}

func (f *fakeCRM) Update(_ context.Context, id string, props map[string]string) (*crm.Company, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failIDs[id]; err != nil {
		return nil, err
	}
	for i := range f.companies {
		if f.companies[i].ID == id {
			for k, v := range props {
				f.companies[i].Properties[k] = v
			}
			f.updates[id] = append(f.updates[id], copyProps(props))
			out := copyCompany(f.companies[i])
			return &out, nil
		}
	}
	return nil, errors.New("company not found")
}

func copyProps(p map[string]string) map[string]string {
	out := make(map[string]string, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func copyCompany(c crm.Company) crm.Company {
	return crm.Company{ID: c.ID, Properties: copyProps(c.Properties)}
}

type staticSource struct {
	batch models.Batch
	err   error
	calls int
}

func (s *staticSource) Fetch(context.Context) (models.Batch, error) {
	s.calls++
	return s.batch, s.err
}
