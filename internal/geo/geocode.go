package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultGeocodeEndpoint is the forward-geocoding service queried by city name.
const DefaultGeocodeEndpoint = "https://geocode.maps.co"

// ErrNoMatch indicates the geocoding service returned no candidate for a city.
var ErrNoMatch = errors.New("no geocoding match")

// Geocoder resolves a city name to its best-match coordinates.
type Geocoder struct {
	endpoint string
	apiKey   string
	httpc    *http.Client
	log      *zap.SugaredLogger
}

// NewGeocoder creates a Geocoder. endpoint defaults to
// DefaultGeocodeEndpoint when empty. The API key is injected here rather than
// read from process-wide state.
func NewGeocoder(endpoint, apiKey string, log *zap.SugaredLogger) *Geocoder {
	if endpoint == "" {
		endpoint = DefaultGeocodeEndpoint
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Geocoder{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		apiKey:   apiKey,
		httpc:    &http.Client{Timeout: 15 * time.Second},
		log:      log,
	}
}

// Locate resolves city to a single best-match point. The first candidate
// returned by the service wins. Returns ErrNoMatch when the service has no
// candidates for the city.
func (g *Geocoder) Locate(ctx context.Context, city string) (Point, error) {
	city = strings.ToLower(strings.TrimSpace(city))
	q := url.Values{}
	q.Set("city", city)
	if g.apiKey != "" {
		q.Set("api_key", g.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"/search?"+q.Encode(), nil)
	if err != nil {
		return Point{}, errors.Wrap(err, "building geocode request")
	}

	resp, err := g.httpc.Do(req)
	if err != nil {
		return Point{}, errors.Wrapf(err, "geocoding city %q", city)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Point{}, errors.Errorf("geocoding city %q: unexpected status %d", city, resp.StatusCode)
	}

	var candidates []struct {
		Lat Coordinate `json:"lat"`
		Lon Coordinate `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&candidates); err != nil {
		return Point{}, errors.Wrapf(err, "decoding geocode response for %q", city)
	}
	if len(candidates) == 0 {
		return Point{}, errors.Wrapf(ErrNoMatch, "city %q", city)
	}

	p := Point{Lat: candidates[0].Lat.Float(), Long: candidates[0].Lon.Float()}
	g.log.Debugw("geocoded city", "city", city, "lat", p.Lat, "long", p.Long)
	return p, nil
}
