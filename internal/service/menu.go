// Copyright (c) 2025-2026 Adam Taylor
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service wires the menu store and the process-level cache into
// the data source the query layer consumes.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AdamEDGECreative/WP-Menu-Query/internal/cache"
	"github.com/AdamEDGECreative/WP-Menu-Query/internal/menuquery"
	"github.com/AdamEDGECreative/WP-Menu-Query/internal/model"
	"github.com/AdamEDGECreative/WP-Menu-Query/internal/store"
)

// locationState is the cached resolution of one location key: whether
// it is registered and which menu, if any, is attached.
type locationState struct {
	Registered bool        `json:"registered"`
	Menu       *model.Menu `json:"menu,omitempty"`
}

// MenuService is the store-backed menuquery.Source. It caches location
// resolutions and raw item lists in the process-level cache so that the
// per-request lookups on top of it rarely touch SQLite.
type MenuService struct {
	queries   *store.Queries
	baseURL   string
	log       *slog.Logger
	locations *cache.TypedCache[locationState]
	items     *cache.TypedCache[[]model.RawItem]
}

// NewMenuService creates a MenuService. A nil backend disables
// store-side caching; every lookup then goes to the database.
func NewMenuService(db *sql.DB, backend cache.Cacher, baseURL string, log *slog.Logger) *MenuService {
	if log == nil {
		log = slog.Default()
	}

	s := &MenuService{
		queries: store.New(db),
		baseURL: baseURL,
		log:     log,
	}
	if backend != nil {
		s.locations = cache.NewTypedCache[locationState](backend, time.Hour)
		s.items = cache.NewTypedCache[[]model.RawItem](backend, time.Hour)
	}
	return s
}

// NewLookup creates a fresh request-scoped lookup bound to the given
// environment. Callers must create one per request; lookups are never
// invalidated.
func (s *MenuService) NewLookup(env menuquery.Env) *menuquery.Lookup {
	return menuquery.NewLookup(s, env, s.log)
}

// NewEnv builds the standard host environment for one request.
func (s *MenuService) NewEnv(currentURL string, queried menuquery.QueriedObject) *menuquery.SiteEnv {
	return &menuquery.SiteEnv{
		BaseURL: s.baseURL,
		Current: currentURL,
		Queried: queried,
	}
}

// LocationIsRegistered implements menuquery.Source.
func (s *MenuService) LocationIsRegistered(ctx context.Context, location string) (bool, error) {
	state, err := s.locationState(ctx, location)
	if err != nil {
		return false, err
	}
	return state.Registered, nil
}

// LocationHasMenu implements menuquery.Source.
func (s *MenuService) LocationHasMenu(ctx context.Context, location string) (bool, error) {
	state, err := s.locationState(ctx, location)
	if err != nil {
		return false, err
	}
	return state.Menu != nil, nil
}

// ResolveLocation implements menuquery.Source.
func (s *MenuService) ResolveLocation(ctx context.Context, location string) (*model.Menu, error) {
	state, err := s.locationState(ctx, location)
	if err != nil {
		return nil, err
	}
	return state.Menu, nil
}

// MenuItems implements menuquery.Source.
func (s *MenuService) MenuItems(ctx context.Context, menuID int64) ([]model.RawItem, error) {
	load := func() (*[]model.RawItem, error) {
		items, err := s.queries.ListMenuItems(ctx, menuID)
		if err != nil {
			return nil, err
		}
		return &items, nil
	}

	if s.items == nil {
		items, err := load()
		if err != nil {
			return nil, err
		}
		return *items, nil
	}

	items, err := s.items.GetOrSet(ctx, itemsKey(menuID), load)
	if err != nil {
		return nil, err
	}
	return *items, nil
}

// Invalidate drops the cached state of one location and its menu's
// items, forcing a reload on next access. Used when menus are edited
// out of band.
func (s *MenuService) Invalidate(ctx context.Context, location string) {
	if s.locations == nil {
		return
	}

	if state, ok := s.locations.Get(ctx, locationKey(location)); ok && state.Menu != nil {
		_ = s.items.Delete(ctx, itemsKey(state.Menu.ID))
	}
	_ = s.locations.Delete(ctx, locationKey(location))
}

// locationState resolves a location through the cache.
func (s *MenuService) locationState(ctx context.Context, location string) (*locationState, error) {
	load := func() (*locationState, error) {
		return s.loadLocationState(ctx, location)
	}

	if s.locations == nil {
		return load()
	}
	return s.locations.GetOrSet(ctx, locationKey(location), load)
}

// loadLocationState resolves a location against the store.
func (s *MenuService) loadLocationState(ctx context.Context, location string) (*locationState, error) {
	registered, err := s.queries.LocationIsRegistered(ctx, location)
	if err != nil {
		return nil, err
	}
	if !registered {
		return &locationState{}, nil
	}

	state := &locationState{Registered: true}
	menu, err := s.queries.GetMenuForLocation(ctx, location)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Registered but nothing attached.
			return state, nil
		}
		return nil, err
	}
	state.Menu = &menu
	return state, nil
}

func locationKey(location string) string {
	return "menuquery:location:" + location
}

func itemsKey(menuID int64) string {
	return fmt.Sprintf("menuquery:items:%d", menuID)
}
