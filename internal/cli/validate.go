package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/aretw0/ali/internal/runtime"
)

// Validate compiles every rule set and checks that each required service
// has a provider among the active ones.
func Validate(ctx context.Context, opts Options, w io.Writer) error {
	it, err := newInterpreter(ctx, opts, createLogger(opts.Debug))
	if err != nil {
		return err
	}

	var errs []error
	if err := it.Reload(ctx); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, checkServices(it.Catalog())...)
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	catalog := it.Catalog()
	fmt.Fprintf(w, "%d rule set(s), %d verb(s)\n", len(catalog.RuleSets()), len(catalog.Verbs()))
	for _, name := range catalog.Skipped() {
		printSystemMessage(w, "'%s' is inactive in this environment.", name)
	}
	return nil
}

func checkServices(catalog *runtime.Catalog) []error {
	var errs []error
	for _, rs := range catalog.RuleSets() {
		needed := map[string]bool{}
		for _, s := range rs.Requires {
			needed[s] = true
		}
		for _, cmd := range rs.Commands {
			for _, s := range cmd.Needs {
				needed[s] = true
			}
		}

		services := make([]string, 0, len(needed))
		for s := range needed {
			services = append(services, s)
		}
		sort.Strings(services)

		for _, s := range services {
			if _, ok := catalog.Provider(s); !ok {
				errs = append(errs, fmt.Errorf("rule set %q: no provider for service '%s'", rs.Name, s))
			}
		}
	}
	return errs
}
