// Copyright (c) 2025-2026 Adam Taylor
// SPDX-License-Identifier: GPL-3.0-or-later

package menuquery

import (
	"context"
	"log/slog"

	"github.com/AdamEDGECreative/WP-Menu-Query/internal/model"
)

// Source is the opaque menu data source: the content management store
// that owns menu definitions and location registrations.
type Source interface {
	// LocationIsRegistered reports whether the location key exists.
	LocationIsRegistered(ctx context.Context, location string) (bool, error)

	// LocationHasMenu reports whether a menu is attached to the location.
	LocationHasMenu(ctx context.Context, location string) (bool, error)

	// ResolveLocation returns the menu attached to the location, or nil
	// when the location is unknown or has no menu.
	ResolveLocation(ctx context.Context, location string) (*model.Menu, error)

	// MenuItems returns the flat, ordered item list of a menu.
	MenuItems(ctx context.Context, menuID int64) ([]model.RawItem, error)
}

// Lookup memoizes location resolution and raw item fetches so that
// repeated queries within one request never hit the data source twice
// for the same key. A Lookup must live for exactly one request: it is
// never invalidated, so a long-lived process has to construct a fresh
// one per request.
//
// A Lookup is not safe for concurrent use; one request owns it.
type Lookup struct {
	src Source
	env Env
	log *slog.Logger

	handles map[string]*Handle
	items   map[int64][]model.RawItem
}

// NewLookup creates a request-scoped lookup over the given source.
// A nil env falls back to a bare SiteEnv and a nil logger to the
// default slog logger.
func NewLookup(src Source, env Env, log *slog.Logger) *Lookup {
	if env == nil {
		env = &SiteEnv{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Lookup{
		src:     src,
		env:     env,
		log:     log,
		handles: make(map[string]*Handle),
		items:   make(map[int64][]model.RawItem),
	}
}

// Source returns the underlying data source.
func (l *Lookup) Source() Source {
	return l.src
}

// Env returns the host environment primitives bound to this lookup.
func (l *Lookup) Env() Env {
	return l.env
}

// Handle returns the menu handle for a location, resolving it on first
// use. Resolution never re-runs for the same location within the
// lookup's lifetime, failed resolutions included.
func (l *Lookup) Handle(ctx context.Context, location string) *Handle {
	if h, ok := l.handles[location]; ok {
		return h
	}

	h := &Handle{location: location, lookup: l}
	menu, err := l.src.ResolveLocation(ctx, location)
	if err != nil {
		l.log.Warn("resolving menu location failed",
			"location", location, "error", err)
	} else {
		h.menu = menu
	}

	l.handles[location] = h
	return h
}

// RawItems returns the item list of a menu, fetching it from the source
// on first use only.
func (l *Lookup) RawItems(ctx context.Context, menuID int64) ([]model.RawItem, error) {
	if items, ok := l.items[menuID]; ok {
		return items, nil
	}

	items, err := l.src.MenuItems(ctx, menuID)
	if err != nil {
		return nil, err
	}

	l.items[menuID] = items
	return items, nil
}
