package geojson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	geometry "github.com/Nosudrum/train-stats/internal/geometry/domain"
)

// Loader reads per-journey geometry files from a directory. Each journey
// has one GeoJSON file named after it, holding a single LineString.
type Loader struct {
	dir string
}

// NewLoader constructs a Loader over a journey geometry directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

type geoJSON struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// JourneyCoordinates returns the ordered coordinate list of one journey.
func (l *Loader) JourneyCoordinates(journey string) ([]geometry.Coordinate, error) {
	path := filepath.Join(l.dir, journey+".geojson")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("geojson: read %s: %w", path, err)
	}
	var parsed geoJSON
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("geojson: parse %s: %w", path, err)
	}
	if len(parsed.Features) == 0 {
		return nil, fmt.Errorf("geojson: %s has no features", path)
	}
	raw := parsed.Features[0].Geometry.Coordinates
	coordinates := make([]geometry.Coordinate, 0, len(raw))
	for _, pair := range raw {
		if len(pair) < 2 {
			return nil, fmt.Errorf("geojson: %s has a malformed coordinate", path)
		}
		coordinates = append(coordinates, geometry.Coordinate{Lon: pair[0], Lat: pair[1]})
	}
	return coordinates, nil
}

// TravelCoordinates concatenates the geometry of every listed journey,
// de-duplicating points within each journey but keeping repeats across
// journeys so travel frequency stays visible in point clouds.
func (l *Loader) TravelCoordinates(journeys []string) ([]geometry.Coordinate, error) {
	var all []geometry.Coordinate
	for _, journey := range journeys {
		coordinates, err := l.JourneyCoordinates(journey)
		if err != nil {
			return nil, err
		}
		seen := make(map[geometry.Coordinate]struct{}, len(coordinates))
		for _, coordinate := range coordinates {
			if _, ok := seen[coordinate]; ok {
				continue
			}
			seen[coordinate] = struct{}{}
			all = append(all, coordinate)
		}
	}
	return all, nil
}

// TravelSegments builds grouped directed segments from every listed
// journey's geometry; one traversal is counted per listing.
func (l *Loader) TravelSegments(journeys []string) ([]geometry.Segment, error) {
	paths := make([][]geometry.Coordinate, 0, len(journeys))
	for _, journey := range journeys {
		coordinates, err := l.JourneyCoordinates(journey)
		if err != nil {
			return nil, err
		}
		paths = append(paths, coordinates)
	}
	return geometry.CoupleSegments(paths), nil
}
