// Copyright (c) 2025-2026 Adam Taylor
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/AdamEDGECreative/WP-Menu-Query/internal/model"
	"github.com/AdamEDGECreative/WP-Menu-Query/internal/util"
)

// Seed locations.
const (
	LocationHeader = "header"
	LocationFooter = "footer"
)

// Seed populates an empty store with the default locations and a demo
// header menu. The footer location is registered without an attached
// menu. Seeding is skipped when any menu already exists.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM menus`).Scan(&count); err != nil {
		return fmt.Errorf("seeding: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, location := range []string{LocationHeader, LocationFooter} {
		if err := queries.RegisterLocation(ctx, location); err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
	}

	name := "Main Menu"
	menu, err := queries.CreateMenu(ctx, CreateMenuParams{Name: name, Slug: util.Slugify(name)})
	if err != nil {
		return fmt.Errorf("seeding: %w", err)
	}

	items := []CreateMenuItemParams{
		{Type: model.TypeCustom, URL: "/", Title: "Home", Position: 0},
		{Type: model.TypePostType, Object: "page", ObjectID: 2, URL: "/about", Title: "About", Position: 1},
		{Type: model.TypePostTypeArchive, Object: "post", URL: "/blog", Title: "Blog", Position: 2},
		{Type: model.TypeTaxonomy, Object: "category", ObjectID: 1, URL: "/category/news", Title: "News", Position: 3},
	}

	var aboutID int64
	for _, item := range items {
		item.MenuID = menu.ID
		id, err := queries.CreateMenuItem(ctx, item)
		if err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
		if item.Title == "About" {
			aboutID = id
		}
	}

	children := []CreateMenuItemParams{
		{MenuID: menu.ID, ParentID: aboutID, Type: model.TypeCustom, URL: "/about/team", Title: "Team", Position: 0},
		{MenuID: menu.ID, ParentID: aboutID, Type: model.TypeCustom, URL: "/about/contact", Title: "Contact", Position: 1},
	}
	for _, item := range children {
		if _, err := queries.CreateMenuItem(ctx, item); err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
	}

	return queries.AssignMenuToLocation(ctx, LocationHeader, menu.ID)
}
