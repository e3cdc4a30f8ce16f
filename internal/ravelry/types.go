package ravelry

import "github.com/ilanamermelstein/fiber-arts-finder/internal/geo"

// Wire types for the catalog API. Listing endpoints return a paginator plus
// one page of records; detail endpoints wrap the entity in a keyed object.

type paginator struct {
	PageCount int `json:"page_count"`
}

type patternsPage struct {
	Paginator paginator     `json:"paginator"`
	Patterns  []patternJSON `json:"patterns"`
}

type patternJSON struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Free      bool   `json:"free"`
	Permalink string `json:"permalink"`
	Designer  struct {
		Name string `json:"name"`
	} `json:"designer"`
}

type shopsPage struct {
	Paginator paginator  `json:"paginator"`
	Shops     []shopJSON `json:"shops"`
}

type shopJSON struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Latitude  *geo.Coordinate `json:"latitude"`
	Longitude *geo.Coordinate `json:"longitude"`
	City      string          `json:"city"`
}

type yarnsPage struct {
	Paginator paginator  `json:"paginator"`
	Yarns     []yarnJSON `json:"yarns"`
}

type yarnJSON struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	YarnCompanyName string `json:"yarn_company_name"`
	YarnWeight      *struct {
		Name string `json:"name"`
	} `json:"yarn_weight"`
}

type patternDetailResponse struct {
	Pattern struct {
		Currency string   `json:"currency"`
		Price    *float64 `json:"price"`
		Packs    []struct {
			YarnID *int `json:"yarn_id"`
		} `json:"packs"`
		Categories []struct {
			Name string `json:"name"`
		} `json:"pattern_categories"`
	} `json:"pattern"`
}

type yarnDetailResponse struct {
	Yarn struct {
		Fibers []struct {
			Percentage *float64 `json:"percentage"`
			FiberType  struct {
				Name string `json:"name"`
			} `json:"fiber_type"`
		} `json:"yarn_fibers"`
	} `json:"yarn"`
}
