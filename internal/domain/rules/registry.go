package rules

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownRule is returned when a rule identifier is not registered.
var ErrUnknownRule = errors.New("unknown rule")

const docsBaseURL = "https://tsguard.dev/rules/"

func docsURL(id string) string {
	return docsBaseURL + id
}

// Options configures rule construction.
type Options struct {
	// Extension is the import-extension target, e.g. ".ts".
	Extension string
	// BannedModules extends the no-test-doubles library list.
	BannedModules []string
}

type factory func(Options) Rule

// registry maps public rule identifiers to their constructors. It is never
// mutated after package initialisation.
var registry = map[string]factory{
	NoTestDoublesID: func(o Options) Rule {
		return NewNoTestDoubles(o.BannedModules...)
	},
	ImportExtensionID: func(o Options) Rule {
		return NewImportExtension(o.Extension)
	},
}

// IDs returns the registered rule identifiers in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}

	sort.Strings(ids)

	return ids
}

// Lookup returns the default-configured definition of rule id.
func Lookup(id string) (Rule, bool) {
	f, ok := registry[id]
	if !ok {
		return nil, false
	}

	return f(Options{}), true
}

// All returns every rule with default configuration, ordered by identifier.
func All() []Rule {
	all := make([]Rule, 0, len(registry))
	for _, id := range IDs() {
		all = append(all, registry[id](Options{}))
	}

	return all
}

// Build constructs the rules named by ids with opts. An empty ids selects
// every registered rule.
func Build(ids []string, opts Options) ([]Rule, error) {
	if len(ids) == 0 {
		ids = IDs()
	}

	built := make([]Rule, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}

		f, ok := registry[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownRule, id)
		}

		seen[id] = struct{}{}
		built = append(built, f(opts))
	}

	return built, nil
}
