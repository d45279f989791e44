package store

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/jpkrishna28/mls-point-locator/internal/model"
)

func testRecords() []model.Record {
	return []model.Record{
		{
			"mls_point_code": "M1", "mls_point_name": "Alpha Godown",
			"district_name": "X", "mandal_name": "A", "phone_number": "111",
		},
		{
			"mls_point_code": "M2", "mls_point_name": "Beta Godown",
			"district_name": "X", "mandal_name": "B",
		},
		{
			"mls_point_code": "K7", "mls_point_name": "Gamma Godown",
			"district_name": "Y", "mandal_name": "C",
		},
	}
}

func TestGetByCodeExactMatch(t *testing.T) {
	s := New(testRecords())
	rec, ok := s.GetByCode("M1")
	if !ok {
		t.Fatalf("expected M1 to exist")
	}
	if rec.Get("mls_point_name") != "Alpha Godown" {
		t.Fatalf("got name %q", rec.Get("mls_point_name"))
	}
	if _, ok := s.GetByCode("m1"); ok {
		t.Fatalf("code lookup must be exact, matched lowercase")
	}
	if _, ok := s.GetByCode("NOPE"); ok {
		t.Fatalf("unknown code must not match")
	}
}

func TestGetByCodeReturnsCopy(t *testing.T) {
	s := New(testRecords())
	rec, _ := s.GetByCode("M1")
	rec["mls_point_name"] = "mutated"
	again, _ := s.GetByCode("M1")
	if again.Get("mls_point_name") != "Alpha Godown" {
		t.Fatalf("store record mutated through a returned copy")
	}
}

func TestFilterWildcards(t *testing.T) {
	s := New(testRecords())

	all := s.Filter("All", "All")
	if len(all) != 3 {
		t.Fatalf("district=All must return everything, got %d", len(all))
	}
	none := s.Filter("", "")
	if len(none) != 3 {
		t.Fatalf("absent filters must return everything, got %d", len(none))
	}

	xOnly := s.Filter("X", "All")
	if len(xOnly) != 2 {
		t.Fatalf("district=X expected 2, got %d", len(xOnly))
	}
	for _, rec := range xOnly {
		if rec.Get("district_name") != "X" {
			t.Fatalf("filter leaked district %q", rec.Get("district_name"))
		}
	}

	xa := s.Filter("X", "A")
	if len(xa) != 1 || xa[0].Get("mls_point_code") != "M1" {
		t.Fatalf("district=X mandal=A expected only M1, got %v", xa)
	}
}

func TestFilterPreservesLoadOrder(t *testing.T) {
	s := New(testRecords())
	got := s.Filter("", "")
	codes := []string{}
	for _, rec := range got {
		codes = append(codes, rec.Get("mls_point_code"))
	}
	want := []string{"M1", "M2", "K7"}
	if !reflect.DeepEqual(codes, want) {
		t.Fatalf("iteration order changed: got %v want %v", codes, want)
	}
}

func TestDistrictsAndMandalsSorted(t *testing.T) {
	s := New([]model.Record{
		{"mls_point_code": "1", "district_name": "Zeta", "mandal_name": "m2"},
		{"mls_point_code": "2", "district_name": "Alpha", "mandal_name": "m1"},
		{"mls_point_code": "3", "district_name": "Zeta", "mandal_name": "m1"},
		{"mls_point_code": "4", "district_name": "", "mandal_name": "ignored"},
	})
	if got, want := s.Districts(), []string{"Alpha", "Zeta"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("districts: got %v want %v", got, want)
	}
	if got, want := s.Mandals("Zeta"), []string{"m1", "m2"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("mandals: got %v want %v", got, want)
	}
	if got := s.Mandals("Missing"); len(got) != 0 {
		t.Fatalf("unknown district must list no mandals, got %v", got)
	}
}

func TestEmptyListingsEncodeAsArrays(t *testing.T) {
	s := New(nil)

	for name, got := range map[string][]string{
		"districts": s.Districts(),
		"mandals":   s.Mandals("Missing"),
	} {
		if got == nil {
			t.Errorf("%s: empty listing must be a non-nil slice so it encodes as []", name)
		}
		body, err := json.Marshal(got)
		if err != nil {
			t.Fatalf("%s: marshal: %v", name, err)
		}
		if string(body) != "[]" {
			t.Errorf("%s: encoded as %s, want []", name, body)
		}
	}
}

func TestListMandalsScenario(t *testing.T) {
	s := New([]model.Record{
		{"mls_point_code": "M1", "district_name": "X", "mandal_name": "A"},
		{"mls_point_code": "M2", "district_name": "X", "mandal_name": "B"},
	})
	if got, want := s.Mandals("X"), []string{"A", "B"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("mandals of X: got %v want %v", got, want)
	}
	got := s.Filter("X", "A")
	if len(got) != 1 || got[0].Get("mls_point_code") != "M1" {
		t.Fatalf("filter(X, A): got %v", got)
	}
}

func TestSearchCodeCaseInsensitiveSubstring(t *testing.T) {
	s := New(testRecords())

	for _, term := range []string{"m", "M"} {
		got := s.SearchCode(term)
		if len(got) != 2 {
			t.Fatalf("search %q expected M1,M2 got %d results", term, len(got))
		}
	}
	if got := s.SearchCode("k7"); len(got) != 1 || got[0].Get("mls_point_code") != "K7" {
		t.Fatalf("search k7: got %v", got)
	}
	if got := s.SearchCode("zzz"); len(got) != 0 {
		t.Fatalf("zero matches must be an empty result, got %v", got)
	}
}

func TestApplySwapsRecord(t *testing.T) {
	s := New(testRecords())
	if !s.Apply("M1", map[string]string{"phone_number": "999"}) {
		t.Fatalf("apply to known code failed")
	}
	rec, _ := s.GetByCode("M1")
	if rec.Get("phone_number") != "999" {
		t.Fatalf("patch not visible, phone=%q", rec.Get("phone_number"))
	}
	if rec.Get("mls_point_name") != "Alpha Godown" {
		t.Fatalf("untouched field lost in swap")
	}
	if s.Apply("NOPE", map[string]string{"phone_number": "1"}) {
		t.Fatalf("apply to unknown code must report false")
	}
}

func TestProjectOmitsMissingColumns(t *testing.T) {
	recs := []model.Record{
		{"mls_point_code": "M1", "phone_number": "111"},
	}
	rows := Project(recs, []string{"mls_point_code", "phone_number", "no_such_column"})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if _, present := rows[0]["no_such_column"]; present {
		t.Fatalf("unknown column must be omitted, not defaulted")
	}
	if rows[0]["mls_point_code"] != "M1" {
		t.Fatalf("projection lost known column")
	}
}

func TestWithDefaultsFillsEmptyStrings(t *testing.T) {
	rec := model.Record{"mls_point_code": "M1"}
	out := WithDefaults(rec, []string{"mls_point_code", "phone_number"})
	if out["mls_point_code"] != "M1" {
		t.Fatalf("known key wrong: %v", out)
	}
	v, present := out["phone_number"]
	if !present || v != "" {
		t.Fatalf("missing key must default to empty string, got %v", out)
	}
}

func TestNewDropsCodelessRowsAndDedupes(t *testing.T) {
	s := New([]model.Record{
		{"district_name": "X"}, // no code
		{"mls_point_code": "M1", "phone_number": "old"},
		{"mls_point_code": "M1", "phone_number": "new"},
	})
	if s.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", s.Len())
	}
	rec, _ := s.GetByCode("M1")
	if rec.Get("phone_number") != "new" {
		t.Fatalf("duplicate code must keep the later row")
	}
}
