package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Paralinkz/ParaTrackz/internal/models"
)

// ParseCoordinate parses a coordinate string in the form "lat,lon" or
// "lat,lon,accuracy", as accepted by config files and PARATRACKZ_LOCATION.
//
// Examples:
//   "51.503364,-0.127625"
//   "51.503364, -0.127625, 12.5"
func ParseCoordinate(input string) (*models.Coordinate, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return nil, fmt.Errorf("invalid coordinate %q: expected \"lat,lon\" or \"lat,lon,accuracy\"", input)
	}

	lat, err := parseComponent(parts[0], "latitude")
	if err != nil {
		return nil, err
	}
	lon, err := parseComponent(parts[1], "longitude")
	if err != nil {
		return nil, err
	}

	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return nil, fmt.Errorf("longitude %v out of range [-180, 180]", lon)
	}

	coord := &models.Coordinate{Latitude: lat, Longitude: lon}

	if len(parts) == 3 {
		acc, err := parseComponent(parts[2], "accuracy")
		if err != nil {
			return nil, err
		}
		if acc < 0 {
			return nil, fmt.Errorf("accuracy %v cannot be negative", acc)
		}
		coord.Accuracy = acc
	}

	return coord, nil
}

func parseComponent(raw, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, strings.TrimSpace(raw))
	}
	return v, nil
}

// FormatCoordinate renders a coordinate as "lat, lon" at 6-decimal precision,
// or "Location unavailable" when absent
func FormatCoordinate(c *models.Coordinate) string {
	if c == nil {
		return "Location unavailable"
	}
	return fmt.Sprintf("%.6f, %.6f", c.Latitude, c.Longitude)
}
