// Copyright (c) 2025-2026 Adam Taylor
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the data types shared between the menu store
// and the query layer.
package model

import "time"

// Menu item types as stored by the content management store.
const (
	TypePostType        = "post_type"
	TypePostTypeArchive = "post_type_archive"
	TypeTaxonomy        = "taxonomy"
	TypeCustom          = "custom"
)

// Menu target values
const (
	TargetSelf   = "_self"
	TargetBlank  = "_blank"
	TargetParent = "_parent"
	TargetTop    = "_top"
)

// ValidTargets contains all valid link target values.
var ValidTargets = []string{TargetSelf, TargetBlank, TargetParent, TargetTop}

// Menu represents a navigation menu resolved from a location.
type Menu struct {
	ID        int64
	Name      string
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location represents a registered menu location. MenuID is zero when the
// location is registered but has no menu attached.
type Location struct {
	Location string
	MenuID   int64
}

// HasMenu reports whether a menu is attached to the location.
func (l Location) HasMenu() bool {
	return l.MenuID > 0
}

// RawItem is a menu item exactly as the content management store hands it
// out: flat, untyped, ordered by position. The query layer never mutates it.
type RawItem struct {
	ID          int64
	MenuID      int64
	ParentID    int64 // 0 = top level
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

// IsValidTarget checks if a target value is valid.
func IsValidTarget(target string) bool {
	for _, t := range ValidTargets {
		if t == target {
			return true
		}
	}
	return false
}
