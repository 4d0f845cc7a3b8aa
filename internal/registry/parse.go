package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/autoharness/cartool-core/internal/vhal"
)

// Resolver resolves a platform property name to its system entry.
type Resolver func(name string) (vhal.SystemProperty, bool)

// DefaultResolver resolves names against the platform table in package vhal.
var DefaultResolver Resolver = vhal.LookupSystemProperty

// Entry is one validated property definition.
type Entry struct {
	Name        string
	Description string
	ID          vhal.PropertyID

	// Symbol is the vhal constant the id was resolved from. It is empty
	// when the definition carried a literal id.
	Symbol string
}

// Property converts the entry into its runtime form.
func (e Entry) Property() Property {
	return Property{Name: e.Name, Description: e.Description, ID: e.ID}
}

// rawDefinition is a definition entry as written in the file.
type rawDefinition struct {
	name        string
	description string
	id          int64
	hasID       bool
	badID       bool
}

// LoadFile reads, validates and builds a Registry from a definition file.
func LoadFile(path string, resolve Resolver) (*Registry, error) {
	entries, err := ParseFile(path, resolve)
	if err != nil {
		return nil, err
	}
	return Build(entries)
}

// ParseFile reads and validates a definition file.
func ParseFile(path string, resolve Resolver) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, configErr("Config file not found at: " + path)
		}
		return nil, fmt.Errorf("reading definition file: %w", err)
	}
	return Parse(filepath.Base(path), data, resolve)
}

// Parse validates definition file contents and returns the entries in
// declaration order. fileName is used in error messages.
//
// Checks run in a fixed order and the first failure is returned:
//  1. every entry has a name
//  2. no name is declared twice
//  3. every literal id is an integer in the 32-bit range
//  4. no literal id is declared twice
//  5. no literal id lies in the system-owned range
//  6. every entry has a description, and entries without an id name a
//     known platform property
func Parse(fileName string, data []byte, resolve Resolver) ([]Entry, error) {
	if resolve == nil {
		resolve = DefaultResolver
	}

	defs, err := decodeDefinitions(data)
	if err != nil {
		return nil, err
	}

	for _, d := range defs {
		if d.name == "" {
			return nil, configErr("A property is missing the required 'name' key.")
		}
	}

	if dups := duplicates(defs, func(d rawDefinition) (string, bool) { return d.name, true }); len(dups) > 0 {
		return nil, configErr(fmt.Sprintf("The same property name is declared multiple times in %s: %s",
			fileName, strings.Join(dups, ", ")))
	}

	for _, d := range defs {
		if d.badID {
			return nil, configErr(fmt.Sprintf("Property %s has an invalid id.", d.name))
		}
	}

	// Ids compare after narrowing, so -1 and 4294967295 are the same id.
	literalID := func(d rawDefinition) (string, bool) {
		return strconv.FormatInt(int64(int32(uint32(d.id))), 10), d.hasID //nolint:gosec // Range checked by integerID
	}
	if dups := duplicates(defs, literalID); len(dups) > 0 {
		return nil, configErr(fmt.Sprintf("The same property id is declared multiple times in %s: %s",
			fileName, strings.Join(dups, ", ")))
	}

	for _, d := range defs {
		if d.hasID && vhal.IsSystemID(d.id) {
			return nil, configErr(fmt.Sprintf("An ID was provided for system property %d. Use the name only.", d.id))
		}
	}

	entries := make([]Entry, 0, len(defs))
	for _, d := range defs {
		if strings.TrimSpace(d.description) == "" {
			return nil, configErr(fmt.Sprintf("A description is missing for property %s.", d.name))
		}

		e := Entry{Name: d.name, Description: d.description}
		if d.hasID {
			e.ID = vhal.PropertyID(int32(uint32(d.id)))
		} else {
			sys, ok := resolve(d.name)
			if !ok {
				return nil, configErr(fmt.Sprintf("Property %s has no id and is not a known system property.", d.name))
			}
			e.ID = sys.ID
			e.Symbol = sys.Ident
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// Build turns validated entries into a Registry.
func Build(entries []Entry) (*Registry, error) {
	props := make([]Property, len(entries))
	for i, e := range entries {
		props[i] = e.Property()
	}
	return New(props)
}

func decodeDefinitions(data []byte) ([]rawDefinition, error) {
	var doc struct {
		Properties yaml.Node `yaml:"properties"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if doc.Properties.Kind != yaml.SequenceNode {
		return nil, configErr("YAML must contain a top-level key 'properties' with a list of properties.")
	}

	defs := make([]rawDefinition, 0, len(doc.Properties.Content))
	for _, item := range doc.Properties.Content {
		var fields map[string]any
		if item.Kind == yaml.MappingNode {
			if err := item.Decode(&fields); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidConfig, item.Line, err)
			}
		}

		var d rawDefinition
		d.name, _ = fields["name"].(string)
		d.description, _ = fields["description"].(string)
		if raw, ok := fields["id"]; ok && raw != nil {
			d.hasID = true
			d.id, d.badID = integerID(raw)
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// integerID converts a decoded YAML id into an int64. The second result is
// true when the value is not an integer in the 32-bit range.
func integerID(raw any) (int64, bool) {
	var v int64
	switch n := raw.(type) {
	case int:
		v = int64(n)
	case int64:
		v = n
	case uint64:
		if n > math.MaxUint32 {
			return 0, true
		}
		v = int64(n)
	default:
		return 0, true
	}
	if v < math.MinInt32 || v > math.MaxUint32 {
		return 0, true
	}
	return v, false
}

// duplicates returns each key that occurs more than once, in order of first
// occurrence.
func duplicates(defs []rawDefinition, key func(rawDefinition) (string, bool)) []string {
	counts := make(map[string]int, len(defs))
	var order []string
	for _, d := range defs {
		k, ok := key(d)
		if !ok {
			continue
		}
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}

	var dups []string
	for _, k := range order {
		if counts[k] > 1 {
			dups = append(dups, k)
		}
	}
	return dups
}
