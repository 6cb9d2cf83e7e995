package main

import "testing"

func TestListFlagsPaginateOptionsDefaultRange(t *testing.T) {
	lf := &listFlags{fromPage: 1, toPage: 0}
	opts := lf.paginateOptions(5)
	if opts.FromPage != 1 || opts.ToPage != 0 || opts.MaxPages != 5 {
		t.Fatalf("paginateOptions() = %+v, want FromPage=1 ToPage=0 MaxPages=5", opts)
	}
}

func TestListFlagsPaginateOptionsSinglePageShorthand(t *testing.T) {
	lf := &listFlags{page: 3, fromPage: 1, toPage: 0}
	opts := lf.paginateOptions(0)
	if opts.FromPage != 3 || opts.ToPage != 3 {
		t.Fatalf("paginateOptions() = %+v, want FromPage=3 ToPage=3", opts)
	}
}

func TestListFlagsOverrideFixedThrottle(t *testing.T) {
	lf := &listFlags{throttleMs: 250}
	o, err := lf.override()
	if err != nil {
		t.Fatalf("override() error = %v", err)
	}
	if !o.HasFixed || o.FixedMillis != 250 {
		t.Fatalf("override() = %+v, want HasFixed=true FixedMillis=250", o)
	}
}

func TestListFlagsOverrideRange(t *testing.T) {
	lf := &listFlags{throttleRange: "100-500"}
	o, err := lf.override()
	if err != nil {
		t.Fatalf("override() error = %v", err)
	}
	if !o.HasRange || o.RangeLowMillis != 100 || o.RangeHighMillis != 500 {
		t.Fatalf("override() = %+v, want HasRange=true 100-500", o)
	}
}

func TestListFlagsOverrideInvalidRange(t *testing.T) {
	lf := &listFlags{throttleRange: "notarange"}
	if _, err := lf.override(); err == nil {
		t.Fatal("override() error = nil, want error for malformed range")
	}
}

func TestListFlagsSortAscending(t *testing.T) {
	lf := &listFlags{sort: "asc"}
	if !lf.sortAscending() {
		t.Fatal("sortAscending() = false, want true for sort=asc")
	}
	lf.sort = "desc"
	if lf.sortAscending() {
		t.Fatal("sortAscending() = true, want false for sort=desc")
	}
}

func TestListFlagsParseCreatedAfterEmpty(t *testing.T) {
	lf := &listFlags{}
	ts, err := lf.parseCreatedAfter()
	if err != nil {
		t.Fatalf("parseCreatedAfter() error = %v", err)
	}
	if !ts.IsZero() {
		t.Fatalf("parseCreatedAfter() = %v, want zero time for empty flag", ts)
	}
}

func TestListFlagsParseCreatedAfterInvalid(t *testing.T) {
	lf := &listFlags{createdAfter: "not-a-date"}
	if _, err := lf.parseCreatedAfter(); err == nil {
		t.Fatal("parseCreatedAfter() error = nil, want error for malformed date")
	}
}

func TestListFlagsParseCreatedBeforeValid(t *testing.T) {
	lf := &listFlags{createdBefore: "2026-01-15"}
	ts, err := lf.parseCreatedBefore()
	if err != nil {
		t.Fatalf("parseCreatedBefore() error = %v", err)
	}
	if ts.Year() != 2026 || ts.Month() != 1 || ts.Day() != 15 {
		t.Fatalf("parseCreatedBefore() = %v, want 2026-01-15", ts)
	}
}
