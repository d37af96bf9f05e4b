// Copyright (c) 2025-2026 Adam Taylor
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AdamEDGECreative/WP-Menu-Query/internal/menuquery"
	"github.com/AdamEDGECreative/WP-Menu-Query/internal/service"
)

// MenuHandler serves menu metadata and filtered menu item lists.
type MenuHandler struct {
	svc *service.MenuService
	log *slog.Logger
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(svc *service.MenuService, log *slog.Logger) *MenuHandler {
	if log == nil {
		log = slog.Default()
	}
	return &MenuHandler{svc: svc, log: log}
}

// RegisterRoutes mounts the menu API routes.
func (h *MenuHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/menus/{location}", h.GetMenu)
	r.Get("/api/menus/{location}/items", h.GetMenuItems)
}

// menuResponse is the handle metadata payload.
type menuResponse struct {
	Location string `json:"location"`
	Resolved bool   `json:"resolved"`
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
}

// GetMenu returns the menu bound to a location. Unresolved locations
// still answer 200 with zero-valued fields, mirroring the handle's
// degrade-to-empty contract.
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")

	lookup := h.svc.NewLookup(h.envFromRequest(r))
	handle := lookup.Handle(r.Context(), location)

	WriteSuccess(w, menuResponse{
		Location: handle.Location(),
		Resolved: handle.Resolved(),
		ID:       handle.ID(),
		Name:     handle.Name(),
		Slug:     handle.Slug(),
	}, nil)
}

// GetMenuItems runs a filtered menu item query. Filter options map 1:1
// onto query parameters; view state (current URL, queried object) comes
// from the current_* parameters.
func (h *MenuHandler) GetMenuItems(w http.ResponseWriter, r *http.Request) {
	location := chi.URLParam(r, "location")

	opts, err := optionsFromRequest(location, r.URL.Query())
	if err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_option", err.Error())
		return
	}

	lookup := h.svc.NewLookup(h.envFromRequest(r))
	q := menuquery.RunQuery(r.Context(), lookup, opts)

	if code, status, ok := diagnosticStatus(q); ok {
		WriteError(w, status, code, q.Diagnostics()[0].Message())
		return
	}

	items := q.Items
	if items == nil {
		items = []*menuquery.Item{}
	}
	WriteSuccess(w, items, &Meta{Total: q.ItemCount})
}

// diagnosticStatus maps query diagnostics onto an HTTP error response.
func diagnosticStatus(q *menuquery.Query) (code string, status int, ok bool) {
	switch {
	case q.HasDiagnostic(menuquery.ErrMissingLocation):
		return "missing_location", http.StatusBadRequest, true
	case q.HasDiagnostic(menuquery.ErrLocationNotRegistered):
		return "location_not_registered", http.StatusNotFound, true
	case q.HasDiagnostic(menuquery.ErrNoMenuAttached):
		return "no_menu_attached", http.StatusNotFound, true
	case len(q.Diagnostics()) > 0:
		return "query_failed", http.StatusInternalServerError, true
	}
	return "", 0, false
}

// optionsFromRequest parses the filter query parameters.
func optionsFromRequest(location string, params url.Values) (*menuquery.Options, error) {
	opts := &menuquery.Options{Location: location}

	if include, ok := params["include"]; ok {
		opts.Include = include
	}
	if exclude, ok := params["exclude"]; ok {
		opts.Exclude = exclude
	}

	for name, target := range map[string]**int{
		"limit":          &opts.Limit,
		"limit_children": &opts.LimitChildren,
		"offset":         &opts.Offset,
	} {
		raw := params.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &optionError{name: name, value: raw}
		}
		*target = &n
	}

	if raw := params.Get("parent"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			opts.Parent = menuquery.ParentID(id)
		} else {
			opts.Parent = menuquery.ParentURL(raw)
		}
	}

	return opts, nil
}

// optionError reports an unparseable query parameter.
type optionError struct {
	name  string
	value string
}

func (e *optionError) Error() string {
	return "option " + e.name + " must be an integer, got " + strconv.Quote(e.value)
}

// envFromRequest builds the host environment for one request from the
// current_* view state parameters.
func (h *MenuHandler) envFromRequest(r *http.Request) *menuquery.SiteEnv {
	params := r.URL.Query()

	var queried menuquery.QueriedObject
	switch {
	case params.Get("current_post") != "":
		if id, err := strconv.ParseInt(params.Get("current_post"), 10, 64); err == nil {
			queried = menuquery.QueriedPost{ID: id}
		}
	case params.Get("current_archive") != "":
		queried = menuquery.QueriedArchive{PostType: params.Get("current_archive")}
	case params.Get("current_term") != "":
		if id, err := strconv.ParseInt(params.Get("current_term"), 10, 64); err == nil {
			queried = menuquery.QueriedTerm{
				ID:       id,
				Taxonomy: params.Get("current_taxonomy"),
			}
		}
	}

	return h.svc.NewEnv(params.Get("current"), queried)
}
