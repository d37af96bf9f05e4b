// Copyright (c) 2025-2026 Adam Taylor
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdamEDGECreative/WP-Menu-Query/internal/cache"
	"github.com/AdamEDGECreative/WP-Menu-Query/internal/menuquery"
	"github.com/AdamEDGECreative/WP-Menu-Query/internal/store"
	"github.com/AdamEDGECreative/WP-Menu-Query/internal/testutil"
)

const testBase = "https://example.com"

func newSeededService(t *testing.T, backend cache.Cacher) *MenuService {
	t.Helper()

	db := testutil.TestDB(t)
	require.NoError(t, store.Seed(context.Background(), db))
	return NewMenuService(db, backend, testBase, testutil.TestLogger())
}

func TestSourceContract(t *testing.T) {
	svc := newSeededService(t, nil)
	ctx := context.Background()

	registered, err := svc.LocationIsRegistered(ctx, store.LocationHeader)
	require.NoError(t, err)
	assert.True(t, registered)

	registered, err = svc.LocationIsRegistered(ctx, "nowhere")
	require.NoError(t, err)
	assert.False(t, registered)

	hasMenu, err := svc.LocationHasMenu(ctx, store.LocationFooter)
	require.NoError(t, err)
	assert.False(t, hasMenu)

	menu, err := svc.ResolveLocation(ctx, store.LocationHeader)
	require.NoError(t, err)
	require.NotNil(t, menu)

	items, err := svc.MenuItems(ctx, menu.ID)
	require.NoError(t, err)
	assert.Len(t, items, 6)

	// Unregistered locations resolve to nil without error.
	menu, err = svc.ResolveLocation(ctx, "nowhere")
	require.NoError(t, err)
	assert.Nil(t, menu)
}

func TestQueryThroughService(t *testing.T) {
	svc := newSeededService(t, nil)
	ctx := context.Background()

	lookup := svc.NewLookup(svc.NewEnv(testBase+"/about/", nil))
	q := menuquery.RunQuery(ctx, lookup, &menuquery.Options{Location: store.LocationHeader})

	require.Equal(t, 4, q.ItemCount)
	assert.Equal(t, "Home", q.Items[0].Title)

	// The current page URL marks the About item current.
	assert.True(t, q.Items[1].IsCurrent, "About item should be current")
	assert.False(t, q.Items[0].IsCurrent)
}

func TestQueryChildrenThroughService(t *testing.T) {
	svc := newSeededService(t, nil)
	ctx := context.Background()

	lookup := svc.NewLookup(svc.NewEnv("", nil))
	q := menuquery.RunQuery(ctx, lookup, &menuquery.Options{
		Location: store.LocationHeader,
		Parent:   menuquery.ParentURL("/about"),
	})

	require.Equal(t, 2, q.ItemCount)
	assert.Equal(t, "Team", q.Items[0].Title)
	assert.Equal(t, "Contact", q.Items[1].Title)
}

func TestStoreSideCaching(t *testing.T) {
	backend := cache.NewSimpleMemoryCache(time.Minute)
	t.Cleanup(func() { _ = backend.Close() })

	svc := newSeededService(t, backend)
	ctx := context.Background()

	menu, err := svc.ResolveLocation(ctx, store.LocationHeader)
	require.NoError(t, err)
	require.NotNil(t, menu)

	_, err = svc.MenuItems(ctx, menu.ID)
	require.NoError(t, err)
	_, err = svc.MenuItems(ctx, menu.ID)
	require.NoError(t, err)

	stats := backend.Stats()
	assert.Positive(t, stats.Hits, "second item fetch should hit the cache")

	// Invalidation forces a reload without breaking resolution.
	svc.Invalidate(ctx, store.LocationHeader)
	menu, err = svc.ResolveLocation(ctx, store.LocationHeader)
	require.NoError(t, err)
	require.NotNil(t, menu)
}

func TestNoMenuAttachedThroughService(t *testing.T) {
	svc := newSeededService(t, nil)
	ctx := context.Background()

	lookup := svc.NewLookup(svc.NewEnv("", nil))
	q := menuquery.RunQuery(ctx, lookup, &menuquery.Options{Location: store.LocationFooter})

	assert.Zero(t, q.ItemCount)
	assert.True(t, q.HasDiagnostic(menuquery.ErrNoMenuAttached))
}
