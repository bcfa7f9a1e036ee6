package stations

import (
	"fmt"
	"time"
)

// Station is a named location with a canonical IANA timezone and, for
// custom entries, optional coordinates.
type Station struct {
	Name     string
	Timezone string
	Lat      float64
	Lon      float64
	HasCoord bool
}

// Validate checks station invariants.
func (s Station) Validate() error {
	if s.Name == "" {
		return ErrEmptyStationName
	}
	if s.Timezone == "" {
		return fmt.Errorf("%w: %s", ErrEmptyTimezone, s.Name)
	}
	return nil
}

// Directory is an immutable station lookup built from a custom override
// table and a standard table. Custom entries win; within a table the
// first exact name match wins.
type Directory struct {
	custom   []Station
	standard []Station
	zones    map[string]*time.Location
}

// NewDirectory constructs a Directory. Both tables are copied; the
// directory never aliases caller slices.
func NewDirectory(custom, standard []Station) (*Directory, error) {
	dir := &Directory{
		custom:   make([]Station, len(custom)),
		standard: make([]Station, len(standard)),
		zones:    make(map[string]*time.Location),
	}
	copy(dir.custom, custom)
	copy(dir.standard, standard)

	for _, station := range dir.custom {
		if err := station.Validate(); err != nil {
			return nil, err
		}
	}
	for _, station := range dir.standard {
		if err := station.Validate(); err != nil {
			return nil, err
		}
	}
	return dir, nil
}

// Lookup returns the station entry for a name, custom table first.
func (d *Directory) Lookup(name string) (Station, error) {
	for _, station := range d.custom {
		if station.Name == name {
			return station, nil
		}
	}
	for _, station := range d.standard {
		if station.Name == name {
			return station, nil
		}
	}
	return Station{}, fmt.Errorf("%w: [%s] absent from both standard and custom station tables", ErrStationNotFound, name)
}

// Resolve maps a station name to its timezone, preferring the custom table.
func (d *Directory) Resolve(name string) (*time.Location, error) {
	station, err := d.Lookup(name)
	if err != nil {
		return nil, err
	}
	if loc, ok := d.zones[station.Timezone]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(station.Timezone)
	if err != nil {
		return nil, fmt.Errorf("stations: invalid timezone %q for %s: %w", station.Timezone, name, err)
	}
	d.zones[station.Timezone] = loc
	return loc, nil
}
