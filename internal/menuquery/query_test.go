// Copyright (c) 2025-2026 Adam Taylor
// SPDX-License-Identifier: GPL-3.0-or-later

package menuquery

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/AdamEDGECreative/WP-Menu-Query/internal/model"
)

// fakeSource is an in-memory Source with call-count instrumentation.
type fakeSource struct {
	registered map[string]bool
	menus      map[string]*model.Menu
	items      map[int64][]model.RawItem

	resolveCalls int
	itemCalls    int
}

func (f *fakeSource) LocationIsRegistered(_ context.Context, location string) (bool, error) {
	return f.registered[location], nil
}

func (f *fakeSource) LocationHasMenu(_ context.Context, location string) (bool, error) {
	return f.menus[location] != nil, nil
}

func (f *fakeSource) ResolveLocation(_ context.Context, location string) (*model.Menu, error) {
	f.resolveCalls++
	return f.menus[location], nil
}

func (f *fakeSource) MenuItems(_ context.Context, menuID int64) ([]model.RawItem, error) {
	f.itemCalls++
	return f.items[menuID], nil
}

const testBase = "https://example.com"

// newTestSource builds a source with one header menu: five top level
// items and two children under item 2.
func newTestSource() *fakeSource {
	menu := &model.Menu{ID: 7, Name: "Header", Slug: "header"}
	items := []model.RawItem{
		{ID: 1, MenuID: 7, Type: model.TypeCustom, URL: "/", Title: "Home"},
		{ID: 2, MenuID: 7, Type: model.TypePostType, Object: "page", ObjectID: 11, URL: "/about", Title: "About"},
		{ID: 3, MenuID: 7, Type: model.TypePostTypeArchive, Object: "product", URL: "/products", Title: "Products"},
		{ID: 4, MenuID: 7, Type: model.TypeTaxonomy, Object: "category", ObjectID: 9, URL: "/category/news", Title: "News"},
		{ID: 5, MenuID: 7, Type: model.TypeCustom, URL: "https://partner.example.org/", Title: "Partner"},
		{ID: 6, MenuID: 7, ParentID: 2, Type: model.TypePostType, Object: "page", ObjectID: 12, URL: "/about/team", Title: "Team"},
		{ID: 8, MenuID: 7, ParentID: 2, Type: model.TypePostType, Object: "page", ObjectID: 13, URL: "/about/history", Title: "History"},
	}
	return &fakeSource{
		registered: map[string]bool{"header": true, "sidebar": true},
		menus:      map[string]*model.Menu{"header": menu},
		items:      map[int64][]model.RawItem{7: items},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestLookup(src Source, env Env) *Lookup {
	if env == nil {
		env = &SiteEnv{BaseURL: testBase}
	}
	return NewLookup(src, env, testLogger())
}

func titles(items []*Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func wantTitles(t *testing.T, q *Query, want ...string) {
	t.Helper()
	got := titles(q.Items)
	if len(got) != len(want) {
		t.Fatalf("items = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("items = %v, want %v", got, want)
		}
	}
}

func TestQueryTopLevel(t *testing.T) {
	q := RunQuery(context.Background(), newTestLookup(newTestSource(), nil), &Options{Location: "header"})

	wantTitles(t, q, "Home", "About", "Products", "News", "Partner")
	if q.ItemCount != 5 {
		t.Errorf("ItemCount = %d, want 5", q.ItemCount)
	}
	if q.FoundItems != q.ItemCount {
		t.Errorf("FoundItems = %d, want %d", q.FoundItems, q.ItemCount)
	}
	if len(q.Diagnostics()) != 0 {
		t.Errorf("Diagnostics() = %v, want none", q.Diagnostics())
	}
}

func TestQueryLimitOffset(t *testing.T) {
	q := RunQuery(context.Background(), newTestLookup(newTestSource(), nil), &Options{
		Location: "header",
		Limit:    Limited(2),
		Offset:   Limited(1),
	})

	// Positions 1 and 2 of the five top level items.
	wantTitles(t, q, "About", "Products")
}

func TestQueryOffsetBeyondEnd(t *testing.T) {
	q := RunQuery(context.Background(), newTestLookup(newTestSource(), nil), &Options{
		Location: "header",
		Offset:   Limited(9),
	})

	if q.ItemCount != 0 {
		t.Errorf("ItemCount = %d, want 0", q.ItemCount)
	}
}

func TestQueryLimitExceedsRemaining(t *testing.T) {
	q := RunQuery(context.Background(), newTestLookup(newTestSource(), nil), &Options{
		Location: "header",
		Limit:    Limited(10),
		Offset:   Limited(3),
	})

	wantTitles(t, q, "News", "Partner")
}

func TestQueryIncludeByURL(t *testing.T) {
	q := RunQuery(context.Background(), newTestLookup(newTestSource(), nil), &Options{
		Location: "header",
		Include:  []string{"/about", "/products"},
	})

	wantTitles(t, q, "About", "Products")
}

func TestQueryExcludeByURL(t *testing.T) {
	q := RunQuery(context.Background(), newTestLookup(newTestSource(), nil), &Options{
		Location: "header",
		Exclude:  []string{"https://partner.example.org/"},
	})

	wantTitles(t, q, "Home", "About", "Products", "News")
}

func TestQueryExcludeWinsOverInclude(t *testing.T) {
	q := RunQuery(context.Background(), newTestLookup(newTestSource(), nil), &Options{
		Location: "header",
		Include:  []string{"/about", "/products"},
		Exclude:  []string{"/about"},
	})

	wantTitles(t, q, "Products")
}

func TestQueryParentByID(t *testing.T) {
	q := RunQuery(context.Background(), newTestLookup(newTestSource(), nil), &Options{
		Location: "header",
		Parent:   ParentID(2),
	})

	wantTitles(t, q, "Team", "History")
}

func TestQueryParentByURL(t *testing.T) {
	q := RunQuery(context.Background(), newTestLookup(newTestSource(), nil), &Options{
		Location: "header",
		Parent:   ParentURL("/about"),
	})

	wantTitles(t, q, "Team", "History")
}

func TestQueryParentURLNoMatchFallsBackToTopLevel(t *testing.T) {
	q := RunQuery(context.Background(), newTestLookup(newTestSource(), nil), &Options{
		Location: "header",
		Parent:   ParentURL("/nowhere"),
	})

	wantTitles(t, q, "Home", "About", "Products", "News", "Partner")
}

func TestQueryLimitChildren(t *testing.T) {
	q := RunQuery(context.Background(), newTestLookup(newTestSource(), nil), &Options{
		Location:      "header",
		Parent:        ParentID(2),
		LimitChildren: Limited(1),
		// The top level limit must not apply to a child query.
		Limit: Limited(0),
	})

	wantTitles(t, q, "Team")
}

func TestQueryMissingLocation(t *testing.T) {
	q := RunQuery(context.Background(), newTestLookup(newTestSource(), nil), &Options{})

	if q.ItemCount != 0 {
		t.Errorf("ItemCount = %d, want 0", q.ItemCount)
	}
	if !q.HasDiagnostic(ErrMissingLocation) {
		t.Fatalf("Diagnostics() = %v, want ErrMissingLocation", q.Diagnostics())
	}
	if q.Diagnostics()[0].Severity != SeverityError {
		t.Errorf("Severity = %q, want %q", q.Diagnostics()[0].Severity, SeverityError)
	}
}

func TestQueryUnregisteredLocation(t *testing.T) {
	q := RunQuery(context.Background(), newTestLookup(newTestSource(), nil), &Options{Location: "footer"})

	if q.ItemCount != 0 {
		t.Errorf("ItemCount = %d, want 0", q.ItemCount)
	}
	if !q.HasDiagnostic(ErrLocationNotRegistered) {
		t.Fatalf("Diagnostics() = %v, want ErrLocationNotRegistered", q.Diagnostics())
	}
	if q.Diagnostics()[0].Severity != SeverityWarning {
		t.Errorf("Severity = %q, want %q", q.Diagnostics()[0].Severity, SeverityWarning)
	}
}

func TestQueryLocationWithoutMenu(t *testing.T) {
	q := RunQuery(context.Background(), newTestLookup(newTestSource(), nil), &Options{Location: "sidebar"})

	if q.ItemCount != 0 {
		t.Errorf("ItemCount = %d, want 0", q.ItemCount)
	}
	if !q.HasDiagnostic(ErrNoMenuAttached) {
		t.Fatalf("Diagnostics() = %v, want ErrNoMenuAttached", q.Diagnostics())
	}
}

// brokenSource claims a menu is attached but cannot resolve it, as an
// inconsistent or failing data source might.
type brokenSource struct {
	*fakeSource
}

func (b *brokenSource) LocationHasMenu(context.Context, string) (bool, error) {
	return true, nil
}

func (b *brokenSource) ResolveLocation(context.Context, string) (*model.Menu, error) {
	return nil, nil
}

func TestQueryUnresolvedMenuEmitsDiagnostic(t *testing.T) {
	src := &brokenSource{fakeSource: newTestSource()}
	q := RunQuery(context.Background(), newTestLookup(src, nil), &Options{Location: "sidebar"})

	if q.ItemCount != 0 {
		t.Errorf("ItemCount = %d, want 0", q.ItemCount)
	}
	if !q.HasDiagnostic(ErrMenuNotResolved) {
		t.Fatalf("Diagnostics() = %v, want ErrMenuNotResolved", q.Diagnostics())
	}
	if q.Diagnostics()[0].Severity != SeverityError {
		t.Errorf("Severity = %q, want %q", q.Diagnostics()[0].Severity, SeverityError)
	}
}

func TestQueryDiagnosticCarriesCaller(t *testing.T) {
	q := RunQuery(context.Background(), newTestLookup(newTestSource(), nil), &Options{})

	d := q.Diagnostics()[0]
	if d.Caller == "" || d.Caller == "unknown" {
		t.Errorf("Caller = %q, want a call site reference", d.Caller)
	}
}

func TestQueryMergePreservesOptions(t *testing.T) {
	ctx := context.Background()
	q := NewQuery(newTestLookup(newTestSource(), nil))

	q.Query(ctx, &Options{Location: "header", Limit: Limited(2)})
	wantTitles(t, q, "Home", "About")

	// Re-query with only a new offset: location and limit must survive.
	q.Query(ctx, &Options{Offset: Limited(1)})
	wantTitles(t, q, "About", "Products")
}

func TestQueryRequeryResetsCursor(t *testing.T) {
	ctx := context.Background()
	q := NewQuery(newTestLookup(newTestSource(), nil))
	q.Query(ctx, &Options{Location: "header"})

	q.TheItem()
	q.TheItem()
	q.Query(ctx, nil)

	if it := q.TheItem(); it == nil || it.Title != "Home" {
		t.Errorf("TheItem() after re-query = %v, want Home", it)
	}
}

func TestCursorContract(t *testing.T) {
	q := RunQuery(context.Background(), newTestLookup(newTestSource(), nil), &Options{Location: "header"})

	var seen int
	for q.HaveItems() {
		if q.TheItem() == nil {
			t.Fatal("TheItem() = nil while HaveItems() is true")
		}
		seen++
	}
	if seen != q.ItemCount {
		t.Errorf("loop produced %d items, want %d", seen, q.ItemCount)
	}
	if q.TheItem() != nil {
		t.Error("TheItem() after exhaustion should be nil")
	}

	q.RewindItems()
	if !q.HaveItems() {
		t.Error("HaveItems() = false after rewind with items present")
	}
	if it := q.TheItem(); it == nil || it.Title != "Home" {
		t.Errorf("TheItem() after rewind = %v, want Home", it)
	}
	if q.CurrentItem() == nil || q.CurrentItem().Title != "Home" {
		t.Error("CurrentItem() should return the last produced item")
	}
}

func TestCursorEmptyResult(t *testing.T) {
	q := RunQuery(context.Background(), newTestLookup(newTestSource(), nil), &Options{Location: "footer"})

	q.RewindItems()
	if q.HaveItems() {
		t.Error("HaveItems() = true on empty result")
	}
}

func TestQueryResultsAreIndependent(t *testing.T) {
	lookup := newTestLookup(newTestSource(), nil)
	ctx := context.Background()

	a := RunQuery(ctx, lookup, &Options{Location: "header"})
	b := RunQuery(ctx, lookup, &Options{Location: "header"})

	a.Items[0].Title = "changed"
	if b.Items[0].Title == "changed" {
		t.Error("mutating one query's items affected another query")
	}
}
