package compiler

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/ali/pkg/domain"
	"github.com/aretw0/ali/pkg/ports"
)

// LoadAll compiles every rule set loader knows about, in the loader's order.
// A broken rule set does not stop the others: the ones that compiled are
// returned together with the joined failures.
func (p *Parser) LoadAll(ctx context.Context, loader ports.RuleSetLoader) ([]*domain.RuleSet, error) {
	names, err := loader.ListRuleSets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list rule sets: %w", err)
	}

	var (
		sets []*domain.RuleSet
		errs []error
	)
	for _, name := range names {
		rs, err := p.Load(ctx, loader, name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sets = append(sets, rs)
	}
	return sets, errors.Join(errs...)
}

// Load fetches and compiles a single rule set.
func (p *Parser) Load(ctx context.Context, loader ports.RuleSetLoader, name string) (*domain.RuleSet, error) {
	data, err := loader.GetRuleSet(ctx, name)
	if err != nil {
		return nil, &Error{RuleSet: name, Err: err}
	}
	rs, err := p.Parse(name, data)
	if err != nil {
		return nil, err
	}
	rs.Source = name
	return rs, nil
}
