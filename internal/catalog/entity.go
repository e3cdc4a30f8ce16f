// Package catalog models the pattern, shop, and yarn entities aggregated
// from the remote catalog, and keeps them indexed for fast lookup.
package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ilanamermelstein/fiber-arts-finder/internal/geo"
)

// NormalizeName trims and title-cases a display name. Applied once at
// construction and again on lookup input, so name matches are
// case-insensitive.
func NormalizeName(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

// Pattern is a craft pattern listing. Price, currency, recommended yarns,
// and categories are only present after hydration.
type Pattern struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Free     bool   `json:"free"`
	Link     string `json:"link"`
	Designer string `json:"designer"`

	Hydrated           bool     `json:"hydrated"`
	Price              *float64 `json:"price,omitempty"`
	Currency           string   `json:"currency,omitempty"`
	RecommendedYarnIDs []int    `json:"recommended_yarn_ids,omitempty"`
	Categories         []string `json:"categories,omitempty"`
}

// NewPattern constructs a pattern with name and designer normalized.
func NewPattern(id int, name string, free bool, link, designer string) *Pattern {
	return &Pattern{
		ID:       id,
		Name:     NormalizeName(name),
		Free:     free,
		Link:     link,
		Designer: NormalizeName(designer),
	}
}

/// Shop is a retail shop listing. Coordinates are nullable: a shop without
// both latitude and longitude is excluded from distance computations.
type Shop struct {
	ID   int             `json:"id"`
	Name string          `json:"name"`
	Lat  *geo.Coordinate `json:"lat"`
	Long *geo.Coordinate `json:"long"`
	City string          `json:"city"`
}

// NewShop constructs a shop with its name normalized.
func NewShop(id int, name string, lat, long *geo.Coordinate, city string) *Shop {
	return &Shop{
		ID:   id,
		Name: NormalizeName(name),
		Lat:  lat,
		Long: long,
		City: strings.TrimSpace(city),
	}
}

// Location returns the shop's position. Fails with geo.ErrInvalidCoordinate
// when either coordinate is absent.
func (s *Shop) Location() (geo.Point, error) {
	if s.Lat == nil || s.Long == nil {
		return geo.Point{}, fmt.Errorf("%w: shop %d (%s) has no coordinates", geo.ErrInvalidCoordinate, s.ID, s.Name)
	}
	return geo.Point{Lat: s.Lat.Float(), Long: s.Long.Float()}, nil
}

// Label returns the display label used for shop graph nodes.
func (s *Shop) Label() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.City)
}

// FiberShare is one entry of a yarn's fiber-content breakdown. Percent is
// nil when the source lists the fiber without a percentage; that is distinct
// from an explicit zero.
type FiberShare struct {
	Percent *int   `json:"percent"`
	Fiber   string `json:"fiber"`
}

// Yarn is a yarn listing. The fiber breakdown is only present after
// hydration.
type Yarn struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Brand  string `json:"brand"`
	Weight string `json:"weight"`

	Hydrated bool         `json:"hydrated"`
	Fibers   []FiberShare `json:"fibers,omitempty"`
}

// NewYarn constructs a yarn with name and brand normalized.
func NewYarn(id int, name, brand, weight string) *Yarn {
	return &Yarn{
		ID:     id,
		Name:   NormalizeName(name),
		Brand:  NormalizeName(brand),
		Weight: weight,
	}
}

// Label returns the display label used for yarn graph nodes and rankings.
func (y *Yarn) Label() string {
	return fmt.Sprintf("%s by %s", y.Name, y.Brand)
}
