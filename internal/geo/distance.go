// Package geo provides coordinate handling and great-circle distance
// computation for shop proximity analysis.
package geo

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EarthRadiusMiles is the Earth radius used by the Haversine formula.
const EarthRadiusMiles = 3963.1

// ErrInvalidCoordinate indicates a latitude or longitude that could not be
// coerced to a number.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Point is a position in decimal degrees.
type Point struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

// Distance returns the great-circle distance between a and b in miles using
// the Haversine formula. Symmetric; zero for identical points.
func Distance(a, b Point) float64 {
	dLat := (a.Lat - b.Lat) * (math.Pi / 180)
	dLong := (a.Long - b.Long) * (math.Pi / 180)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*(math.Pi/180))*math.Cos(b.Lat*(math.Pi/180))*
			math.Sin(dLong/2)*math.Sin(dLong/2)
	return 2 * math.Asin(math.Sqrt(h)) * EarthRadiusMiles
}

// ParseCoordinate coerces a coordinate value to a float64. Accepted inputs
// are numeric types, numeric strings, and json.Number.
func ParseCoordinate(v any) (float64, error) {
	switch c := v.(type) {
	case float64:
		return c, nil
	case float32:
		return float64(c), nil
	case int:
		return float64(c), nil
	case int64:
		return float64(c), nil
	case json.Number:
		f, err := c.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidCoordinate, c.String())
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidCoordinate, c)
		}
		return f, nil
	case nil:
		return 0, fmt.Errorf("%w: missing value", ErrInvalidCoordinate)
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidCoordinate, v)
	}
}

// Coordinate is a single latitude or longitude component. It unmarshals from
// either a JSON number or a numeric string, since the catalog source emits
// both, and always marshals back as a number.
type Coordinate float64

// UnmarshalJSON implements json.Unmarshaler.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCoordinate, data)
	}
	f, err := ParseCoordinate(raw)
	if err != nil {
		return err
	}
	*c = Coordinate(f)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(c))
}

// Float returns the coordinate as a float64.
func (c Coordinate) Float() float64 { return float64(c) }
