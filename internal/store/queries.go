// Copyright (c) 2025-2026 Adam Taylor
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AdamEDGECreative/WP-Menu-Query/internal/model"
)

// DBTX is the connection surface the queries run against: either a
// *sql.DB or a *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries provides typed access to the menu store.
type Queries struct {
	db DBTX
}

// New creates a Queries instance over the given connection.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// CreateMenuParams are the inputs for CreateMenu.
type CreateMenuParams struct {
	Name string
	Slug string
}

// CreateMenu inserts a menu and returns it.
func (q *Queries) CreateMenu(ctx context.Context, params CreateMenuParams) (model.Menu, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO menus (name, slug, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		params.Name, params.Slug, now, now)
	if err != nil {
		return model.Menu{}, fmt.Errorf("creating menu: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Menu{}, fmt.Errorf("creating menu: %w", err)
	}

	return model.Menu{ID: id, Name: params.Name, Slug: params.Slug, CreatedAt: now, UpdatedAt: now}, nil
}

// GetMenuByID fetches a menu by id.
func (q *Queries) GetMenuByID(ctx context.Context, id int64) (model.Menu, error) {
	var m model.Menu
	err := q.db.QueryRowContext(ctx,
		`SELECT id, name, slug, created_at, updated_at FROM menus WHERE id = ?`, id).
		Scan(&m.ID, &m.Name, &m.Slug, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return model.Menu{}, fmt.Errorf("getting menu %d: %w", id, err)
	}
	return m, nil
}

// RegisterLocation registers a menu location key. Registering an
// existing location is a no-op.
func (q *Queries) RegisterLocation(ctx context.Context, location string) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO menu_locations (location) VALUES (?) ON CONFLICT (location) DO NOTHING`,
		location)
	if err != nil {
		return fmt.Errorf("registering location %q: %w", location, err)
	}
	return nil
}

// AssignMenuToLocation attaches a menu to a registered location.
func (q *Queries) AssignMenuToLocation(ctx context.Context, location string, menuID int64) error {
	res, err := q.db.ExecContext(ctx,
		`UPDATE menu_locations SET menu_id = ? WHERE location = ?`, menuID, location)
	if err != nil {
		return fmt.Errorf("assigning menu to location %q: %w", location, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("assigning menu to location %q: %w", location, err)
	}
	if n == 0 {
		return fmt.Errorf("assigning menu to location %q: location not registered", location)
	}
	return nil
}

// LocationIsRegistered reports whether a location key exists.
func (q *Queries) LocationIsRegistered(ctx context.Context, location string) (bool, error) {
	var one int
	err := q.db.QueryRowContext(ctx,
		`SELECT 1 FROM menu_locations WHERE location = ?`, location).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking location %q: %w", location, err)
	}
	return true, nil
}

// LocationHasMenu reports whether a menu is attached to the location.
func (q *Queries) LocationHasMenu(ctx context.Context, location string) (bool, error) {
	var menuID sql.NullInt64
	err := q.db.QueryRowContext(ctx,
		`SELECT menu_id FROM menu_locations WHERE location = ?`, location).Scan(&menuID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking location %q: %w", location, err)
	}
	return menuID.Valid, nil
}

// GetMenuForLocation fetches the menu attached to a location.
// Returns sql.ErrNoRows (wrapped) when the location is unknown or has
// no menu attached.
func (q *Queries) GetMenuForLocation(ctx context.Context, location string) (model.Menu, error) {
	var m model.Menu
	err := q.db.QueryRowContext(ctx,
		`SELECT m.id, m.name, m.slug, m.created_at, m.updated_at
		 FROM menu_locations l
		 JOIN menus m ON m.id = l.menu_id
		 WHERE l.location = ?`, location).
		Scan(&m.ID, &m.Name, &m.Slug, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return model.Menu{}, fmt.Errorf("resolving location %q: %w", location, err)
	}
	return m, nil
}

// ListLocations returns all registered locations.
func (q *Queries) ListLocations(ctx context.Context) ([]model.Location, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT location, COALESCE(menu_id, 0) FROM menu_locations ORDER BY location`)
	if err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	defer rows.Close()

	var locations []model.Location
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(&l.Location, &l.MenuID); err != nil {
			return nil, fmt.Errorf("listing locations: %w", err)
		}
		locations = append(locations, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing locations: %w", err)
	}
	return locations, nil
}

// CreateMenuItemParams are the inputs for CreateMenuItem.
type CreateMenuItemParams struct {
	MenuID      int64
	ParentID    int64
	Type        string
	Object      string
	ObjectID    int64
	URL         string
	Title       string
	Target      string
	Description string
	Classes     []string
	Position    int
}

// CreateMenuItem inserts a menu item and returns its id.
func (q *Queries) CreateMenuItem(ctx context.Context, params CreateMenuItemParams) (int64, error) {
	target := params.Target
	if target == "" {
		target = model.TargetSelf
	}

	res, err := q.db.ExecContext(ctx,
		`INSERT INTO menu_items
		 (menu_id, parent_id, item_type, object, object_id, url, title, target, description, classes, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		params.MenuID, params.ParentID, params.Type, params.Object, params.ObjectID,
		params.URL, params.Title, target, params.Description,
		strings.Join(params.Classes, " "), params.Position)
	if err != nil {
		return 0, fmt.Errorf("creating menu item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("creating menu item: %w", err)
	}
	return id, nil
}

// ListMenuItems returns the flat item list of a menu in position order.
func (q *Queries) ListMenuItems(ctx context.Context, menuID int64) ([]model.RawItem, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, menu_id, parent_id, item_type, object, object_id, url, title, target, description, classes, position
		 FROM menu_items WHERE menu_id = ? ORDER BY position, id`, menuID)
	if err != nil {
		return nil, fmt.Errorf("listing menu items: %w", err)
	}
	defer rows.Close()

	var items []model.RawItem
	for rows.Next() {
		var (
			item    model.RawItem
			classes string
		)
		if err := rows.Scan(&item.ID, &item.MenuID, &item.ParentID, &item.Type,
			&item.Object, &item.ObjectID, &item.URL, &item.Title, &item.Target,
			&item.Description, &classes, &item.Position); err != nil {
			return nil, fmt.Errorf("listing menu items: %w", err)
		}
		item.Classes = strings.Fields(classes)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing menu items: %w", err)
	}
	return items, nil
}
