// Package datasource implements the external data source registry named
// in the service layer's input-resolution chain (direct param, cross-law
// regulation, delegation, data source fallback). Grounded on
// original_source's data_source.rs: a priority-ordered list of named
// sources, queried highest-priority-first, first match wins.
package datasource

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/MinBZK/regelrecht-mvp-sub000/value"
)

// Match is the result of a successful Registry.Resolve call.
type Match struct {
	Value      value.Value
	SourceName string
	SourceType string
}

// Source is an external data provider queried during input resolution.
type Source interface {
	Name() string
	Priority() int
	SourceType() string
	HasField(field string) bool
	Get(field string, criteria map[string]value.Value) (value.Value, bool)
	Fields() []string
}

// DictSource is a dictionary-backed Source: record key -> field name
// (lowercased) -> value. Field names are matched case-insensitively
// since laws reference fields with varying capitalization.
type DictSource struct {
	name       string
	priority   int
	data       map[string]map[string]value.Value
	fieldIndex map[string]struct{}
	keyFields  []string
}

// NewDictSource builds a source from pre-keyed records: record key ->
// field name -> value.
func NewDictSource(name string, priority int, data map[string]map[string]value.Value) *DictSource {
	s := &DictSource{
		name:       name,
		priority:   priority,
		data:       make(map[string]map[string]value.Value, len(data)),
		fieldIndex: make(map[string]struct{}),
	}
	for key, fields := range data {
		normalized := make(map[string]value.Value, len(fields))
		for k, v := range fields {
			lower := strings.ToLower(k)
			normalized[lower] = v
			s.fieldIndex[lower] = struct{}{}
		}
		s.data[key] = normalized
	}
	return s
}

// NewDictSourceFromRecords builds a source from a flat list of records,
// keyed by the value of keyField (matched case-insensitively) in each
// record. Records missing keyField are skipped.
func NewDictSourceFromRecords(name string, priority int, keyField string, records []map[string]value.Value) *DictSource {
	keyFieldLower := strings.ToLower(keyField)
	data := make(map[string]map[string]value.Value)
	for _, record := range records {
		var keyVal value.Value
		found := false
		for k, v := range record {
			if strings.ToLower(k) == keyFieldLower {
				keyVal = v
				found = true
				break
			}
		}
		if !found {
			continue
		}
		data[valueToKey(keyVal)] = record
	}
	s := NewDictSource(name, priority, data)
	s.keyFields = []string{keyFieldLower}
	return s
}

// Store inserts or replaces a record under key.
func (s *DictSource) Store(key string, fields map[string]value.Value) {
	normalized := make(map[string]value.Value, len(fields))
	for k, v := range fields {
		lower := strings.ToLower(k)
		normalized[lower] = v
		s.fieldIndex[lower] = struct{}{}
	}
	s.data[key] = normalized
}

// RecordCount returns the number of records stored.
func (s *DictSource) RecordCount() int { return len(s.data) }

func (s *DictSource) Name() string       { return s.name }
func (s *DictSource) Priority() int      { return s.priority }
func (s *DictSource) SourceType() string { return "dict" }

func (s *DictSource) HasField(field string) bool {
	_, ok := s.fieldIndex[strings.ToLower(field)]
	return ok
}

// Get looks up a record by the key built from criteria (or, when this
// source was created via NewDictSourceFromRecords, from criteria
// filtered down to its key field), then returns field from that record.
func (s *DictSource) Get(field string, criteria map[string]value.Value) (value.Value, bool) {
	lookup := criteria
	if s.keyFields != nil {
		lookup = make(map[string]value.Value)
		for k, v := range criteria {
			if containsLower(s.keyFields, k) {
				lookup[k] = v
			}
		}
	}
	record, ok := s.data[buildLookupKey(lookup)]
	if !ok {
		return value.Null(), false
	}
	v, ok := record[strings.ToLower(field)]
	return v, ok
}

func (s *DictSource) Fields() []string {
	fields := make([]string, 0, len(s.fieldIndex))
	for f := range s.fieldIndex {
		fields = append(fields, f)
	}
	return fields
}

func containsLower(ss []string, s string) bool {
	lower := strings.ToLower(s)
	for _, x := range ss {
		if x == lower {
			return true
		}
	}
	return false
}

// buildLookupKey joins criteria values, sorted by key name, with "_".
func buildLookupKey(criteria map[string]value.Value) string {
	names := make([]string, 0, len(criteria))
	for k := range criteria {
		names = append(names, k)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = valueToKey(criteria[name])
	}
	return strings.Join(parts, "_")
}

func valueToKey(v value.Value) string {
	switch {
	case v.IsNull():
		return "null"
	default:
		if s, ok := v.AsString(); ok {
			return s
		}
		if i, ok := v.AsInt(); ok {
			return strconv.FormatInt(i, 10)
		}
		if f, ok := v.AsFloat(); ok {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		return "complex"
	}
}

// Registry holds Sources in priority order (highest first) and resolves
// fields against them, first match wins.
type Registry struct {
	mu      sync.RWMutex
	sources []Source
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{}
}

// AddSource inserts src and keeps the list sorted by descending priority.
func (r *Registry) AddSource(src Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, src)
	sort.SliceStable(r.sources, func(i, j int) bool {
		return r.sources[i].Priority() > r.sources[j].Priority()
	})
}

// RemoveSource removes the source with the given name, reporting
// whether one was found.
func (r *Registry) RemoveSource(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.sources {
		if s.Name() == name {
			r.sources = append(r.sources[:i], r.sources[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every registered source.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = nil
}

// HasField reports whether any registered source can provide field.
func (r *Registry) HasField(field string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sources {
		if s.HasField(field) {
			return true
		}
	}
	return false
}

// Resolve queries sources in priority order and returns the first match
// for field.
func (r *Registry) Resolve(field string, criteria map[string]value.Value) (Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sources {
		if !s.HasField(field) {
			continue
		}
		if v, ok := s.Get(field, criteria); ok {
			return Match{Value: v, SourceName: s.Name(), SourceType: s.SourceType()}, true
		}
	}
	return Match{}, false
}

// SourceCount returns the number of registered sources.
func (r *Registry) SourceCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sources)
}

// ListSources returns source names in priority order.
func (r *Registry) ListSources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.sources))
	for i, s := range r.sources {
		names[i] = s.Name()
	}
	return names
}

// AllFields returns the union of fields across every registered source.
func (r *Registry) AllFields() map[string]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make(map[string]struct{})
	for _, s := range r.sources {
		for _, f := range s.Fields() {
			all[f] = struct{}{}
		}
	}
	return all
}
