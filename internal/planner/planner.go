package planner

import (
	"fmt"

	"github.com/askohli/boardscout/internal/model"
)

// Planner produces the query list for one discovery run. The plan is
// deterministic: the role x location cross product in configuration order
// (roles outer, locations inner), followed by the pattern queries verbatim.
type Planner struct {
	host            string
	roles           []string
	locations       []string
	patterns        []string
	patternLocation string
}

// New builds a Planner scoped to the given platform host.
// patternLocation is the location recorded for pattern query hits, since
// patterns carry no structured location of their own.
func New(host string, roles, locations, patterns []string, patternLocation string) *Planner {
	return &Planner{
		host:            host,
		roles:           roles,
		locations:       locations,
		patterns:        patterns,
		patternLocation: patternLocation,
	}
}

// Plan returns every query of the run, in execution order.
func (p *Planner) Plan() []model.Query {
	queries := make([]model.Query, 0, len(p.roles)*len(p.locations)+len(p.patterns))
	for _, role := range p.roles {
		for _, loc := range p.locations {
			queries = append(queries, model.Query{
				Kind:     model.QueryCrossProduct,
				Role:     role,
				Location: loc,
				Text:     fmt.Sprintf("site:%s %q %q", p.host, role, loc),
			})
		}
	}
	for _, pattern := range p.patterns {
		queries = append(queries, model.Query{
			Kind:     model.QueryPattern,
			Location: p.patternLocation,
			Text:     pattern,
		})
	}
	return queries
}
