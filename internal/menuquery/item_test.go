// Copyright (c) 2025-2026 Adam Taylor
// SPDX-License-Identifier: GPL-3.0-or-later

package menuquery

import (
	"testing"

	"github.com/AdamEDGECreative/WP-Menu-Query/internal/model"
)

func TestClassifyPostType(t *testing.T) {
	env := &SiteEnv{BaseURL: testBase}
	it := NewItem(model.RawItem{
		ID:          2,
		ParentID:    1,
		Type:        model.TypePostType,
		Object:      "page",
		ObjectID:    11,
		URL:         "/about",
		Title:       "About",
		Target:      model.TargetSelf,
		Description: "About us",
		Classes:     []string{"nav-item", "highlight"},
	}, env)

	if it.Kind != KindPostType {
		t.Errorf("Kind = %q, want %q", it.Kind, KindPostType)
	}
	if it.ObjectID != "11" {
		t.Errorf("ObjectID = %q, want %q", it.ObjectID, "11")
	}
	if it.URL != "https://example.com/about/" {
		t.Errorf("URL = %q, want %q", it.URL, "https://example.com/about/")
	}
	if it.ParentID != 1 {
		t.Errorf("ParentID = %d, want 1", it.ParentID)
	}
	if len(it.Classes) != 2 {
		t.Errorf("Classes = %v, want 2 entries", it.Classes)
	}
}

func TestClassifyArchiveUsesObjectSlug(t *testing.T) {
	env := &SiteEnv{BaseURL: testBase}
	it := NewItem(model.RawItem{
		Type:     model.TypePostTypeArchive,
		Object:   "product",
		ObjectID: 42, // must be ignored for archives
		URL:      "/products",
	}, env)

	if it.ObjectID != "product" {
		t.Errorf("ObjectID = %q, want %q", it.ObjectID, "product")
	}
}

func TestClassifyCustomUsesRawURL(t *testing.T) {
	env := &SiteEnv{BaseURL: testBase}
	it := NewItem(model.RawItem{
		Type: model.TypeCustom,
		URL:  "https://partner.example.org/",
	}, env)

	if it.ObjectID != "https://partner.example.org/" {
		t.Errorf("ObjectID = %q, want the raw URL", it.ObjectID)
	}
}

func TestClassifyUnknownTypePassthrough(t *testing.T) {
	env := &SiteEnv{BaseURL: testBase, Queried: QueriedPost{ID: 5}}
	it := NewItem(model.RawItem{
		Type:     "widget",
		ObjectID: 5,
		URL:      "/w",
	}, env)

	if it.Kind != Kind("widget") {
		t.Errorf("Kind = %q, want passthrough %q", it.Kind, "widget")
	}
	if it.ObjectID != "5" {
		t.Errorf("ObjectID = %q, want %q", it.ObjectID, "5")
	}
	// Unknown kinds never match the queried object.
	if it.IsCurrent {
		t.Error("IsCurrent = true for unknown kind without URL match")
	}
}

func TestCurrentByQueriedPost(t *testing.T) {
	env := &SiteEnv{BaseURL: testBase, Queried: QueriedPost{ID: 11}}
	it := NewItem(model.RawItem{Type: model.TypePostType, Object: "page", ObjectID: 11, URL: "/about"}, env)

	if !it.IsCurrent {
		t.Error("IsCurrent = false, want true for matching queried post")
	}
}

func TestCurrentByQueriedArchive(t *testing.T) {
	env := &SiteEnv{BaseURL: testBase, Queried: QueriedArchive{PostType: "product"}}
	it := NewItem(model.RawItem{Type: model.TypePostTypeArchive, Object: "product", URL: "/products"}, env)

	if !it.IsCurrent {
		t.Error("IsCurrent = false, want true for matching archive")
	}
}

func TestCurrentByQueriedTerm(t *testing.T) {
	env := &SiteEnv{BaseURL: testBase, Queried: QueriedTerm{ID: 9, Taxonomy: "category"}}
	it := NewItem(model.RawItem{Type: model.TypeTaxonomy, Object: "category", ObjectID: 9, URL: "/category/news"}, env)

	if !it.IsCurrent {
		t.Error("IsCurrent = false, want true for matching term")
	}

	// Same term id in a different taxonomy must not match.
	env.Queried = QueriedTerm{ID: 9, Taxonomy: "post_tag"}
	it = NewItem(model.RawItem{Type: model.TypeTaxonomy, Object: "category", ObjectID: 9, URL: "/category/news"}, env)
	if it.IsCurrent {
		t.Error("IsCurrent = true for term in a different taxonomy")
	}
}

func TestCurrentByURLFallback(t *testing.T) {
	env := &SiteEnv{BaseURL: testBase, Current: "https://example.com/contact/"}
	it := NewItem(model.RawItem{Type: model.TypeCustom, URL: "/contact"}, env)

	if !it.IsCurrent {
		t.Error("IsCurrent = false, want true via URL fallback")
	}
}

func TestCurrentHookOverride(t *testing.T) {
	env := &SiteEnv{
		BaseURL: testBase,
		ItemCurrentHook: func(current bool, item *Item) bool {
			return item.Title == "Pinned"
		},
	}

	it := NewItem(model.RawItem{Type: model.TypeCustom, URL: "/x", Title: "Pinned"}, env)
	if !it.IsCurrent {
		t.Error("IsCurrent = false, want true via hook override")
	}

	it = NewItem(model.RawItem{Type: model.TypeCustom, URL: "/y", Title: "Other"}, env)
	if it.IsCurrent {
		t.Error("IsCurrent = true, want false via hook override")
	}
}

func TestSetCurrentOverridable(t *testing.T) {
	env := &SiteEnv{BaseURL: testBase}
	it := NewItem(model.RawItem{Type: model.TypeCustom, URL: "/z"}, env)

	if it.IsCurrent {
		t.Fatal("IsCurrent = true, want false")
	}
	it.IsCurrent = true
	if !it.IsCurrent {
		t.Error("IsCurrent not overridable after construction")
	}
}
