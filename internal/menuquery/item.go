// Copyright (c) 2025-2026 Adam Taylor
// SPDX-License-Identifier: GPL-3.0-or-later

package menuquery

import (
	"strconv"

	"github.com/AdamEDGECreative/WP-Menu-Query/internal/model"
)

// Kind is the type of a classified menu item. The four known kinds map
// one-to-one onto the store's item types; unknown store types are passed
// through verbatim and simply never match current-page detection.
type Kind string

// Known item kinds.
const (
	KindPostType        Kind = model.TypePostType
	KindPostTypeArchive Kind = model.TypePostTypeArchive
	KindTaxonomy        Kind = model.TypeTaxonomy
	KindCustom          Kind = model.TypeCustom
)

// Item is a classified, queryable menu item derived from a store
// RawItem. Its ObjectID representation is fixed by Kind: the post id for
// post_type items, the post type slug for post_type_archive items, the
// term id for taxonomy items and the item URL for custom items. That
// mapping is decided once at classification and never reinterpreted.
type Item struct {
	ID          int64    `json:"id"`
	ParentID    int64    `json:"parent_id"`
	Kind        Kind     `json:"kind"`
	Object      string   `json:"object"`
	ObjectID    string   `json:"object_id"`
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Target      string   `json:"target"`
	Description string   `json:"description"`
	Classes     []string `json:"classes"`

	// IsCurrent reports whether this item links to the page currently
	// being viewed. Computed once at classification time; callers may
	// overwrite it afterwards.
	IsCurrent bool `json:"is_current"`
}

// NewItem classifies a raw store item. Classification never fails:
// unknown types degrade to "not current" unless the URL fallback matches.
func NewItem(raw model.RawItem, env Env) *Item {
	it := &Item{
		ID:          raw.ID,
		ParentID:    raw.ParentID,
		Kind:        Kind(raw.Type),
		Object:      raw.Object,
		ObjectID:    strconv.FormatInt(raw.ObjectID, 10),
		URL:         env.NormalizeURL(raw.URL),
		Title:       raw.Title,
		Target:      raw.Target,
		Description: raw.Description,
		Classes:     raw.Classes,
	}

	// Archives carry no object id of their own; identify them by the
	// post type slug. Custom links are identified by their URL.
	switch it.Kind {
	case KindPostTypeArchive:
		it.ObjectID = raw.Object
	case KindCustom:
		it.ObjectID = raw.URL
	}

	current := it.matchesQueriedObject(env.QueriedObject())
	if !current {
		// Fall back to comparing against the current page URL.
		if cur := env.CurrentURL(); cur != "" && cur == it.URL {
			current = true
		}
	}
	if f, ok := env.(CurrentItemFilter); ok {
		current = f.FilterItemIsCurrent(current, it)
	}
	it.IsCurrent = current

	return it
}

// matchesQueriedObject reports whether the item points at the object
// currently being viewed. Custom and unknown kinds never match here.
func (it *Item) matchesQueriedObject(qo QueriedObject) bool {
	if qo == nil {
		return false
	}

	switch it.Kind {
	case KindPostType:
		if p, ok := qo.(QueriedPost); ok {
			return it.ObjectID == strconv.FormatInt(p.ID, 10)
		}
	case KindPostTypeArchive:
		if a, ok := qo.(QueriedArchive); ok {
			return it.ObjectID == a.PostType
		}
	case KindTaxonomy:
		if term, ok := qo.(QueriedTerm); ok {
			return it.ObjectID == strconv.FormatInt(term.ID, 10) && it.Object == term.Taxonomy
		}
	}
	return false
}
