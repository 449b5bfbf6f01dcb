// Package store persists the most recent cohort partition so that every
// analysis view, in this process or a later one, reads the same named
// sample sets.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/yumyai/ddrcohort/pkg/model"
)

// ErrNotFound means no partition has been saved yet. It is an empty state,
// not a failure.
var ErrNotFound = errors.New("no cohort partition has been saved")

// Store holds at most one partition. Save replaces the previous one as a
// whole, so a Load never sees a mix of two partitions.
type Store interface {
	Save(ctx context.Context, p *model.Partition) error
	Load(ctx context.Context) (*model.Partition, error)
}

// document is the persisted form. Cohorts is the name to sample list
// mapping every reader relies on; the other members are descriptive.
type document struct {
	ID          string              `json:"id,omitempty"`
	CreatedAt   time.Time           `json:"created_at,omitempty"`
	Predicates  []model.Predicate   `json:"predicates,omitempty"`
	CancerTypes []string            `json:"cancer_types,omitempty"`
	Order       []string            `json:"order,omitempty"`
	Cohorts     map[string][]string `json:"cohorts"`
}

// Encode serializes a partition. Sample lists are sorted and unique.
func Encode(p *model.Partition) ([]byte, error) {
	if p == nil {
		return nil, errors.New("nil partition")
	}
	doc := document{
		ID:          p.ID,
		CreatedAt:   p.CreatedAt.UTC(),
		Predicates:  p.Predicates,
		CancerTypes: p.CancerTypes,
		Order:       p.Names(),
		Cohorts:     p.Map(),
	}
	return json.Marshal(doc)
}

// Decode reads a persisted partition. A bare {"name": [ids]} object, as
// written by earlier versions, is accepted too. Cohorts are ordered by name
// when the document has no order naming each cohort exactly once.
func Decode(data []byte) (*model.Partition, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decode cohort document: %w", err)
	}

	var doc document
	if _, ok := fields["cohorts"]; ok {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode cohort document: %w", err)
		}
	} else if err := json.Unmarshal(data, &doc.Cohorts); err != nil {
		return nil, fmt.Errorf("decode legacy cohort mapping: %w", err)
	}

	order := doc.Order
	ordered := isPermutation(order, doc.Cohorts)
	if !ordered {
		order = make([]string, 0, len(doc.Cohorts))
		for name := range doc.Cohorts {
			order = append(order, name)
		}
		sort.Strings(order)
	}

	p := &model.Partition{
		ID:          doc.ID,
		CreatedAt:   doc.CreatedAt,
		Predicates:  doc.Predicates,
		CancerTypes: doc.CancerTypes,
	}
	k := len(doc.Predicates)
	// statuses follow from the position in the stored enumeration order
	enumerated := ordered && k > 0 && len(order) == 1<<k
	for i, name := range order {
		c := model.Cohort{Name: name, Samples: model.NewSampleSet(doc.Cohorts[name]...)}
		if enumerated {
			c.Status = model.StatusOf(i, k)
		}
		p.Cohorts = append(p.Cohorts, c)
	}
	return p, nil
}

// isPermutation reports whether order names every cohort exactly once.
func isPermutation(order []string, cohorts map[string][]string) bool {
	if len(order) != len(cohorts) {
		return false
	}
	seen := make(map[string]bool, len(order))
	for _, name := range order {
		if _, ok := cohorts[name]; !ok || seen[name] {
			return false
		}
		seen[name] = true
	}
	return true
}
