package vissim

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// defaultAttr is an entry of per-entity defaults table
type defaultAttr struct {
	key   string
	value interface{}
	// fromCatalog takes the value from the first identifier of the catalog
	fromCatalog CatalogKind
	// allocate takes the next free identifier
	allocate bool
}

// mergeDefaults validates overrides against schema and fills everything else from defaults.
// Result follows the order of defaults table. Catalog lookups happen only for keys
// the caller did not override.
func (doc *Document) mergeDefaults(defaults []defaultAttr, schema Schema, overrides Values, nextID func() int) ([]Attr, int, error) {
	known := make(map[string]struct{}, len(defaults))
	for _, def := range defaults {
		known[def.key] = struct{}{}
	}
	keys := make([]string, 0, len(overrides))
	for key := range overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := known[key]; !ok {
			return nil, 0, errors.Wrapf(ErrInvalidAttribute, "'%s' can't be set on creation", key)
		}
		if err := schema.check(key, overrides[key]); err != nil {
			return nil, 0, err
		}
	}

	no := 0
	attrs := make([]Attr, 0, len(defaults))
	for _, def := range defaults {
		value, ok := overrides[def.key]
		if !ok {
			switch {
			case def.allocate:
				value = nextID()
			case def.fromCatalog != 0:
				id, err := doc.catalogs.DefaultID(def.fromCatalog)
				if err != nil {
					return nil, 0, errors.Wrapf(err, "no default for '%s'", def.key)
				}
				value = id
			default:
				value = def.value
			}
		}
		if def.allocate {
			parsed, err := strconv.Atoi(formatValue(value))
			if err != nil {
				return nil, 0, errors.Wrapf(ErrTypeMismatch, "identifier '%s'", def.key)
			}
			no = parsed
		}
		attrs = append(attrs, Attr{Key: def.key, Value: value})
	}
	return attrs, no, nil
}

// splitValues moves given keys out of overrides. Original map stays untouched.
func splitValues(overrides Values, keys ...string) (Values, Values) {
	rest := make(Values, len(overrides))
	taken := make(Values, len(keys))
	for k, v := range overrides {
		rest[k] = v
	}
	for _, key := range keys {
		if v, ok := rest[key]; ok {
			taken[key] = v
			delete(rest, key)
		}
	}
	return taken, rest
}

// intsOf parses integer attribute of every given element
func intsOf(children []Attributes, attr string) []int {
	ans := make([]int, 0, len(children))
	for _, child := range children {
		if id, err := strconv.Atoi(child[attr]); err == nil {
			ans = append(ans, id)
		}
	}
	return ans
}
