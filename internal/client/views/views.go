// Package views loads the data behind each protected view.
package views

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/nestify/internal/client/models"
)

var ErrNoView = errors.New("no such view")

// RecentNotices is how many notices the dashboard shows.
const RecentNotices = 5

// Getter fetches one JSON document. *client.APIClient satisfies it.
type Getter interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
}

// Endpoints maps a view path to the backend list it renders.
var Endpoints = map[string]string{
	"/societies":   "/societies/",
	"/residents":   "/residents/",
	"/maintenance": "/maintenance/invoices",
	"/complaints":  "/complaints/",
	"/visitors":    "/visitors/",
	"/notices":     "/notices/",
	"/bookings":    "/bookings/",
	"/polls":       "/polls/",
}

var dashboardEndpoints = map[models.DashboardVariant]string{
	models.DashboardAdmin:    "/dashboard/admin",
	models.DashboardResident: "/dashboard/resident",
}

// Row is one record of a list view, as the backend sent it.
type Row map[string]any

type Page struct {
	Path string
	Rows []Row
}

type Dashboard struct {
	Variant models.DashboardVariant
	Stats   map[string]any
	Notices []Row
}

type Loader struct {
	api Getter
}

func NewLoader(api Getter) *Loader {
	return &Loader{api: api}
}

// List loads the records of a list view.
func (l *Loader) List(ctx context.Context, path string) (*Page, error) {
	endpoint, ok := Endpoints[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoView, path)
	}
	var rows []Row
	if err := l.api.GetJSON(ctx, endpoint, nil, &rows); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return &Page{Path: path, Rows: rows}, nil
}

// Dashboard loads the statistics of variant and the recent notices
// concurrently. Either failure fails the whole view.
func (l *Loader) Dashboard(ctx context.Context, variant models.DashboardVariant) (*Dashboard, error) {
	endpoint, ok := dashboardEndpoints[variant]
	if !ok {
		return nil, fmt.Errorf("%w: dashboard %q", ErrNoView, variant)
	}

	out := &Dashboard{Variant: variant}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := l.api.GetJSON(gctx, endpoint, nil, &out.Stats); err != nil {
			return fmt.Errorf("load dashboard: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var notices []Row
		if err := l.api.GetJSON(gctx, Endpoints["/notices"], nil, &notices); err != nil {
			return fmt.Errorf("load notices: %w", err)
		}
		if len(notices) > RecentNotices {
			notices = notices[:RecentNotices]
		}
		out.Notices = notices
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Columns returns the sorted union of keys across rows.
func Columns(rows []Row) []string {
	seen := map[string]struct{}{}
	for _, r := range rows {
		for k := range r {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}
