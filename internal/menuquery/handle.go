// Copyright (c) 2025-2026 Adam Taylor
// SPDX-License-Identifier: GPL-3.0-or-later

package menuquery

import (
	"context"

	"github.com/AdamEDGECreative/WP-Menu-Query/internal/model"
)

// Handle binds a menu location to its resolved menu identity. An
// unresolved handle (unregistered location, or no menu attached) never
// fails: its accessors degrade to zero values and Items yields an empty
// query with diagnostics.
type Handle struct {
	location string
	menu     *model.Menu
	lookup   *Lookup
}

// Location returns the location key the handle was resolved for.
func (h *Handle) Location() string {
	return h.location
}

// Resolved reports whether a menu is bound to the handle.
func (h *Handle) Resolved() bool {
	return h.menu != nil
}

// Menu returns the resolved menu, or nil.
func (h *Handle) Menu() *model.Menu {
	return h.menu
}

// ID returns the resolved menu id, or 0.
func (h *Handle) ID() int64 {
	if h.menu == nil {
		return 0
	}
	return h.menu.ID
}

// Name returns the resolved menu name, or an empty string.
func (h *Handle) Name() string {
	if h.menu == nil {
		return ""
	}
	return h.menu.Name
}

// Slug returns the resolved menu slug, or an empty string.
func (h *Handle) Slug() string {
	if h.menu == nil {
		return ""
	}
	return h.menu.Slug
}

// Items runs a fresh query scoped to the handle's location and returns
// it ready for iteration.
func (h *Handle) Items(ctx context.Context) *Query {
	return RunQuery(ctx, h.lookup, &Options{Location: h.location})
}
