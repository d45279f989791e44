// Package store holds the in-memory mirror of the mls_points table. The
// whole table is loaded once at process start and every read endpoint is
// answered from this snapshot; the only mutation after startup is a
// point patch applied by the update flow once the backing table write has
// succeeded. Reads take the shared lock, patches swap the whole record
// under the write lock so a concurrent reader observes either the old or
// the new record, never a half-applied field map.
package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/jpkrishna28/mls-point-locator/internal/model"
)

// FacilityStore is the process-wide facility snapshot keyed by
// mls_point_code. Iteration order is table load order; only the district
// and mandal listings are sorted.
type FacilityStore struct {
	mu      sync.RWMutex
	records []model.Record
	byCode  map[string]int
}

// New builds a store from loaded records. Rows without a code are dropped;
// a duplicated code keeps the later row, matching a reload of the table
// where the last write wins.
func New(records []model.Record) *FacilityStore {
	s := &FacilityStore{byCode: make(map[string]int, len(records))}
	for _, rec := range records {
		code := rec.Get(model.CodeColumn)
		if code == "" {
			continue
		}
		if idx, ok := s.byCode[code]; ok {
			s.records[idx] = rec
			continue
		}
		s.byCode[code] = len(s.records)
		s.records = append(s.records, rec)
	}
	return s
}

// Len reports how many facilities are known.
func (s *FacilityStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// GetByCode returns a copy of the record with an exact code match.
func (s *FacilityStore) GetByCode(code string) (model.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byCode[code]
	if !ok {
		return nil, false
	}
	return s.records[idx].Clone(), true
}

// wildcard reports whether a filter value means "no filter".
func wildcard(v string) bool { return v == "" || v == "All" }

// Filter returns copies of the records matching the district and mandal
// filters. Either filter may be "All" or empty to match everything; both
// are exact string comparisons and combine with AND semantics. Result
// order is store iteration order.
func (s *FacilityStore) Filter(district, mandal string) []model.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Record, 0, len(s.records))
	for _, rec := range s.records {
		if !wildcard(district) && rec.Get("district_name") != district {
			continue
		}
		if !wildcard(mandal) && rec.Get("mandal_name") != mandal {
			continue
		}
		out = append(out, rec.Clone())
	}
	return out
}

// Districts returns the sorted distinct non-empty district names.
func (s *FacilityStore) Districts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinct(s.records, "district_name", "")
}

// Mandals returns the sorted distinct non-empty mandal names within one
// district. An unknown district yields an empty list, not an error.
func (s *FacilityStore) Mandals(district string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinct(s.records, "mandal_name", district)
}

func distinct(records []model.Record, col, district string) []string {
	seen := map[string]bool{}
	// Non-nil so an empty listing serializes as [] rather than null.
	out := []string{}
	for _, rec := range records {
		if district != "" && rec.Get("district_name") != district {
			continue
		}
		v := rec.Get(col)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// SearchCode returns copies of every record whose code contains term as a
// case-insensitive substring. Zero matches is an empty slice, not an error.
func (s *FacilityStore) SearchCode(term string) []model.Record {
	needle := strings.ToLower(term)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []model.Record{}
	for _, rec := range s.records {
		if strings.Contains(strings.ToLower(rec.Get(model.CodeColumn)), needle) {
			out = append(out, rec.Clone())
		}
	}
	return out
}

// Apply patches the record for code with the given (already allow-listed)
// field map. The stored record is replaced wholesale so concurrent readers
// never observe a partially patched map. It reports false when the code is
// unknown.
func (s *FacilityStore) Apply(code string, fields map[string]string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.byCode[code]
	if !ok {
		return false
	}
	next := s.records[idx].Clone()
	for k, v := range fields {
		next[k] = v
	}
	s.records[idx] = next
	return true
}

// Project reduces records to the requested columns. A column a record does
// not carry is omitted from that row rather than erred, mirroring how the
// dashboard tolerates older table snapshots.
func Project(records []model.Record, cols []string) []map[string]string {
	out := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		row := make(map[string]string, len(cols))
		for _, c := range cols {
			if v, ok := rec[c]; ok {
				row[c] = v
			}
		}
		out = append(out, row)
	}
	return out
}

// WithDefaults returns the record reduced to keys, filling absent keys
// with empty strings so required display fields are always present.
func WithDefaults(rec model.Record, keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = rec.Get(k)
	}
	return out
}
