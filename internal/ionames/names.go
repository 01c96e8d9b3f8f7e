// Package ionames validates the scientific names of a record set with
// gnparser. Report sections and sort order downstream depend on these
// names, so unparseable ones are worth surfacing before a report run.
package ionames

import (
	"context"
	"strings"

	"github.com/amphdata/amprep/pkg/amprep"
	"github.com/amphdata/amprep/pkg/config"
	"github.com/amphdata/amprep/pkg/records"
	"github.com/gnames/gnparser"
	"github.com/gnames/gnuuid"
)

// checker implements the amprep.NameChecker interface.
type checker struct {
	cfg *config.Config
}

// New creates a NameChecker.
func New(cfg *config.Config) amprep.NameChecker {
	return &checker{cfg: cfg}
}

// CheckNames parses every row's Genus+Species binomial and returns
// the rows whose names do not parse. The ID of an issue is the UUID
// v5 of the name string, stable across runs.
func (c *checker) CheckNames(
	ctx context.Context,
	rs *records.RecordSet,
) ([]amprep.NameIssue, error) {
	genusCol, ok := rs.Column(c.cfg.Records.GenusField)
	if !ok {
		return nil, MissingFieldError(c.cfg.Records.GenusField)
	}
	speciesCol, ok := rs.Column(c.cfg.Records.SpeciesField)
	if !ok {
		return nil, MissingFieldError(c.cfg.Records.SpeciesField)
	}

	prs := gnparser.New(gnparser.NewConfig())

	var issues []amprep.NameIssue
	for i := range genusCol {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		name := strings.TrimSpace(genusCol[i] + " " + speciesCol[i])
		if name == "" {
			issues = append(issues, amprep.NameIssue{Row: i})
			continue
		}

		parsed := prs.ParseName(name)
		if !parsed.Parsed {
			issues = append(issues, amprep.NameIssue{
				Row:  i,
				ID:   gnuuid.New(name).String(),
				Name: name,
			})
		}
	}
	return issues, nil
}
