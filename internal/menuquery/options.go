// Copyright (c) 2025-2026 Adam Taylor
// SPDX-License-Identifier: GPL-3.0-or-later

package menuquery

// Unlimited disables a limit option.
const Unlimited = -1

// Parent restricts a query to the children of one menu item. Set either
// ID (a menu item id, 0 meaning top level) or URL (resolved against the
// raw item list before filtering). URL takes precedence when non-empty.
type Parent struct {
	ID  int64
	URL string
}

// ParentID returns a Parent referencing a menu item by id.
func ParentID(id int64) *Parent {
	return &Parent{ID: id}
}

// ParentURL returns a Parent referencing a menu item by URL. Relative
// URLs are resolved against the site base URL.
func ParentURL(u string) *Parent {
	return &Parent{URL: u}
}

// Options is the query option set. All fields are optional except
// Location. Nil pointer fields (and nil slices / empty Location) mean
// "leave the previously set value alone", so repeated Query calls merge
// rather than replace.
type Options struct {
	// Location is the menu location key to query. Required.
	Location string

	// Include keeps only items whose URL matches at least one entry.
	// Relative URLs are resolved against the site base URL.
	Include []string

	// Exclude drops items whose URL matches at least one entry.
	// Evaluated after Include; an item matching both is excluded.
	Exclude []string

	// Limit caps the number of top level items returned.
	// Unlimited (-1) by default.
	Limit *int

	// LimitChildren caps the number of child items returned when Parent
	// selects a non top level parent. Unlimited (-1) by default.
	LimitChildren *int

	// Offset skips that many items before the limit is applied.
	Offset *int

	// Parent restricts results to direct children of one item.
	// Defaults to top level (parent id 0).
	Parent *Parent
}

// Limited returns an Options limit value.
func Limited(n int) *int {
	return &n
}

// queryVars is the fully resolved option set a query runs with.
type queryVars struct {
	location      string
	include       []string
	exclude       []string
	limit         int
	limitChildren int
	offset        int
	parent        Parent
}

func defaultVars() queryVars {
	return queryVars{
		limit:         Unlimited,
		limitChildren: Unlimited,
	}
}

// merge overlays the specified options onto the current vars. Options
// left at their zero value keep whatever was set before.
func (v *queryVars) merge(o *Options) {
	if o == nil {
		return
	}
	if o.Location != "" {
		v.location = o.Location
	}
	if o.Include != nil {
		v.include = o.Include
	}
	if o.Exclude != nil {
		v.exclude = o.Exclude
	}
	if o.Limit != nil {
		v.limit = *o.Limit
	}
	if o.LimitChildren != nil {
		v.limitChildren = *o.LimitChildren
	}
	if o.Offset != nil {
		v.offset = *o.Offset
	}
	if o.Parent != nil {
		v.parent = *o.Parent
	}
}

// parentID is the numeric parent filter in effect. Anything that is not
// a positive id collapses to 0, i.e. top level.
func (v *queryVars) parentID() int64 {
	if v.parent.ID > 0 {
		return v.parent.ID
	}
	return 0
}
