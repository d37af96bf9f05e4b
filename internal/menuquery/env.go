// Copyright (c) 2025-2026 Adam Taylor
// SPDX-License-Identifier: GPL-3.0-or-later

package menuquery

import (
	"net/url"
	"strings"
)

// QueriedObject describes what the site visitor is currently viewing.
// It is resolved by the host environment before the query runs and is
// one of QueriedPost, QueriedArchive or QueriedTerm, or nil when nothing
// relevant is being viewed.
type QueriedObject interface {
	queriedObject()
}

// QueriedPost identifies a single content entity being viewed.
type QueriedPost struct {
	ID int64
}

// QueriedArchive identifies a post type archive listing being viewed.
type QueriedArchive struct {
	PostType string
}

// QueriedTerm identifies a taxonomy term being viewed.
type QueriedTerm struct {
	ID       int64
	Taxonomy string
}

func (QueriedPost) queriedObject()    {}
func (QueriedArchive) queriedObject() {}
func (QueriedTerm) queriedObject()    {}

// Env supplies the host-environment primitives consumed during
// classification and filtering: URL normalization, the URL of the page
// currently being served, and the queried object for current-item
// detection.
type Env interface {
	// NormalizeURL returns the absolute, escaped form of a URL.
	// Relative URLs are resolved against the site base URL.
	NormalizeURL(raw string) string

	// CurrentURL returns the absolute URL of the page currently being
	// served, or an empty string when unknown.
	CurrentURL() string

	// QueriedObject returns the object currently being viewed, or nil.
	QueriedObject() QueriedObject
}

// CurrentItemFilter is an optional extension point an Env may implement
// to override the computed current flag of an item before it is stored.
type CurrentItemFilter interface {
	FilterItemIsCurrent(current bool, item *Item) bool
}

// SiteEnv is the standard Env implementation, backed by a fixed site
// base URL and per-request view state.
type SiteEnv struct {
	// BaseURL is the site root, e.g. "https://example.com". Relative
	// menu item URLs are resolved against it.
	BaseURL string

	// Current is the absolute URL of the page being served.
	Current string

	// Queried is the object being viewed, if any.
	Queried QueriedObject

	// ItemCurrentHook, when set, may replace the computed current flag
	// of each classified item.
	ItemCurrentHook func(current bool, item *Item) bool
}

// NormalizeURL implements Env. Absolute http(s) URLs are escaped and
// returned as-is; anything else is treated as a path relative to the
// site base URL and gets a trailing slash.
func (e *SiteEnv) NormalizeURL(raw string) string {
	if raw == "" {
		return ""
	}

	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return escapeURL(raw)
	}

	base := strings.TrimSuffix(e.BaseURL, "/")
	joined := base + "/" + strings.TrimPrefix(raw, "/")
	if !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	return escapeURL(joined)
}

// CurrentURL implements Env.
func (e *SiteEnv) CurrentURL() string {
	return e.Current
}

// QueriedObject implements Env.
func (e *SiteEnv) QueriedObject() QueriedObject {
	return e.Queried
}

// FilterItemIsCurrent implements CurrentItemFilter.
func (e *SiteEnv) FilterItemIsCurrent(current bool, item *Item) bool {
	if e.ItemCurrentHook == nil {
		return current
	}
	return e.ItemCurrentHook(current, item)
}

// escapeURL re-encodes a URL so that comparisons between stored and
// computed URLs are stable. Unparseable input is returned unchanged.
func escapeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.String()
}
