// Copyright (c) 2025-2026 Adam Taylor
// SPDX-License-Identifier: GPL-3.0-or-later

// Package menuquery implements a query layer over navigation menus: it
// classifies the store's flat menu item records, applies parent,
// include/exclude and limit/offset rules, and exposes the result for
// loop-style iteration. Failures never surface as errors; a failed query
// yields an empty item list plus structured diagnostics.
package menuquery

import (
	"context"

	"github.com/AdamEDGECreative/WP-Menu-Query/internal/model"
)

// Query holds one option set and its filtered, ordered result. Create it
// with NewQuery and call Query, or use RunQuery to construct and fetch
// in one step. Repeated Query calls merge new options over the ones
// already set.
type Query struct {
	lookup *Lookup
	vars   queryVars

	// Items is the filtered result, in menu order.
	Items []*Item

	// ItemCount is the number of items in the result.
	ItemCount int

	// FoundItems equals ItemCount. The query has no separate pagination
	// total, the alias exists for callers that expect one.
	FoundItems int

	currentItem int
	current     *Item
	diags       []Diagnostic
}

// NewQuery creates an empty query over the given lookup. No fetching
// happens until Query is called.
func NewQuery(lookup *Lookup) *Query {
	return &Query{
		lookup: lookup,
		vars:   defaultVars(),
	}
}

// RunQuery creates a query, applies the options and fetches immediately.
func RunQuery(ctx context.Context, lookup *Lookup, opts *Options) *Query {
	q := NewQuery(lookup)
	q.vars.merge(opts)
	q.fetch(ctx, callerAttribution(1))
	return q
}

// Query merges the given options over the current ones and re-fetches.
// Options left unset keep their previously set values.
func (q *Query) Query(ctx context.Context, opts *Options) {
	q.vars.merge(opts)
	q.fetch(ctx, callerAttribution(1))
}

// Diagnostics returns the failure reports recorded by the last fetch.
func (q *Query) Diagnostics() []Diagnostic {
	return q.diags
}

// HasDiagnostic reports whether the last fetch recorded the given
// failure condition.
func (q *Query) HasDiagnostic(target error) bool {
	for _, d := range q.diags {
		if d.Is(target) {
			return true
		}
	}
	return false
}

// fetch runs the filter pipeline and replaces the query result.
func (q *Query) fetch(ctx context.Context, caller string) {
	q.RewindItems()
	q.Items = nil
	q.diags = nil
	q.updateCounts()

	if !q.checkLocation(ctx, caller) {
		return
	}

	handle := q.lookup.Handle(ctx, q.vars.location)
	if !handle.Resolved() {
		// Registration checks passed but the menu row itself could not
		// be loaded.
		q.report(Diagnostic{
			Severity: SeverityError,
			Err:      ErrMenuNotResolved,
			Location: q.vars.location,
			Caller:   caller,
		})
		return
	}

	raw, err := q.lookup.RawItems(ctx, handle.ID())
	if err != nil {
		q.report(Diagnostic{
			Severity: SeverityError,
			Err:      err,
			Location: q.vars.location,
			Caller:   caller,
		})
		return
	}

	q.resolveParentArg(raw)
	raw = q.filterToParent(raw)

	items := make([]*Item, 0, len(raw))
	for _, r := range raw {
		items = append(items, NewItem(r, q.lookup.env))
	}

	items = q.filterIncludeExclude(items)
	q.Items = q.applyLimits(items)
	q.updateCounts()
}

// checkLocation validates the location option. A missing location is an
// error; an unregistered location or a location without a menu is a
// warning. All three abort the fetch and leave the result empty.
func (q *Query) checkLocation(ctx context.Context, caller string) bool {
	location := q.vars.location
	if location == "" {
		q.report(Diagnostic{
			Severity: SeverityError,
			Err:      ErrMissingLocation,
			Caller:   caller,
		})
		return false
	}

	registered, err := q.lookup.src.LocationIsRegistered(ctx, location)
	if err != nil {
		q.report(Diagnostic{Severity: SeverityError, Err: err, Location: location, Caller: caller})
		return false
	}
	if !registered {
		q.report(Diagnostic{
			Severity: SeverityWarning,
			Err:      ErrLocationNotRegistered,
			Location: location,
			Caller:   caller,
		})
		return false
	}

	hasMenu, err := q.lookup.src.LocationHasMenu(ctx, location)
	if err != nil {
		q.report(Diagnostic{Severity: SeverityError, Err: err, Location: location, Caller: caller})
		return false
	}
	if !hasMenu {
		q.report(Diagnostic{
			Severity: SeverityWarning,
			Err:      ErrNoMenuAttached,
			Location: location,
			Caller:   caller,
		})
		return false
	}

	return true
}

// report records a diagnostic and logs it with caller attribution.
func (q *Query) report(d Diagnostic) {
	q.diags = append(q.diags, d)

	log := q.lookup.log
	if d.Severity == SeverityError {
		log.Error(d.Message(), "caller", d.Caller)
	} else {
		log.Warn(d.Message(), "caller", d.Caller)
	}
}

// resolveParentArg replaces a URL parent option with the id of the first
// raw item whose URL matches, scanning the pre-filter items in their
// given order. No match collapses to 0, i.e. top level.
func (q *Query) resolveParentArg(raw []model.RawItem) {
	if q.vars.parent.URL == "" {
		return
	}

	target := q.lookup.env.NormalizeURL(q.vars.parent.URL)
	resolved := Parent{}
	for _, r := range raw {
		if q.lookup.env.NormalizeURL(r.URL) == target {
			resolved.ID = r.ID
			break
		}
	}
	q.vars.parent = resolved
}

// filterToParent keeps only direct children of the resolved parent.
// Exact top level or exact child filtering only; there is no subtree
// selection.
func (q *Query) filterToParent(raw []model.RawItem) []model.RawItem {
	parent := q.vars.parentID()
	kept := make([]model.RawItem, 0, len(raw))
	for _, r := range raw {
		if r.ParentID == parent {
			kept = append(kept, r)
		}
	}
	return kept
}

// filterIncludeExclude applies the include and exclude URL filters.
// Include is evaluated first; an item matching both lists is excluded.
func (q *Query) filterIncludeExclude(items []*Item) []*Item {
	if len(q.vars.include) > 0 {
		include := q.normalizeAll(q.vars.include)
		kept := items[:0]
		for _, it := range items {
			if matchesAnyURL(it, include) {
				kept = append(kept, it)
			}
		}
		items = kept
	}

	if len(q.vars.exclude) > 0 {
		exclude := q.normalizeAll(q.vars.exclude)
		kept := items[:0]
		for _, it := range items {
			if !matchesAnyURL(it, exclude) {
				kept = append(kept, it)
			}
		}
		items = kept
	}

	return items
}

// applyLimits slices the result to offset/limit. The limit option
// applies to top level queries, limit_children to child queries.
func (q *Query) applyLimits(items []*Item) []*Item {
	limit := len(items)
	if q.vars.parentID() == 0 {
		if q.vars.limit > Unlimited {
			limit = q.vars.limit
		}
	} else {
		if q.vars.limitChildren > Unlimited {
			limit = q.vars.limitChildren
		}
	}

	offset := q.vars.offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}

	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (q *Query) normalizeAll(urls []string) []string {
	out := make([]string, len(urls))
	for i, u := range urls {
		out[i] = q.lookup.env.NormalizeURL(u)
	}
	return out
}

func matchesAnyURL(it *Item, urls []string) bool {
	for _, u := range urls {
		if it.URL == u {
			return true
		}
	}
	return false
}

// updateCounts refreshes ItemCount and FoundItems from the result.
func (q *Query) updateCounts() {
	q.ItemCount = len(q.Items)
	q.FoundItems = q.ItemCount
}

// HaveItems reports whether the loop cursor has items left.
func (q *Query) HaveItems() bool {
	return q.currentItem < len(q.Items)
}

// TheItem returns the item at the cursor and advances it, or nil when
// the loop is exhausted.
func (q *Query) TheItem() *Item {
	if q.currentItem < len(q.Items) {
		q.current = q.Items[q.currentItem]
		q.currentItem++
		return q.current
	}
	return nil
}

// CurrentItem returns the item most recently produced by TheItem.
func (q *Query) CurrentItem() *Item {
	return q.current
}

// RewindItems resets the loop cursor back to the start.
func (q *Query) RewindItems() {
	q.currentItem = 0
	q.current = nil
}

// ResetItems is an alias for RewindItems.
func (q *Query) ResetItems() {
	q.RewindItems()
}
