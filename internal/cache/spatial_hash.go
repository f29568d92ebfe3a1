// PartyMap - Event Discovery and Party Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/partymap

package cache

import (
	"math"
	"sort"
	"sync"

	"github.com/tomtom215/partymap/internal/geo"
)

// SpatialHashGrid buckets points into fixed-size lat/lon cells so that radius
// queries only visit nearby cells instead of every point.
//
// Insert is O(1); QueryNearby is O(k) in the number of points in
// the visited cells. Distances are in miles.
type SpatialHashGrid struct {
	mu       sync.RWMutex
	cells    map[CellKey][]*SpatialEntry
	cellSize float64 // degrees
	columns  int     // cells around the globe at the equator
	entries  map[string]*SpatialEntry
}

// CellKey is a grid cell coordinate.
type CellKey struct {
	X, Y int
}

// SpatialEntry is one indexed point.
type SpatialEntry struct {
	ID      string
	Lat     float64
	Lon     float64
	Data    any
	cellKey CellKey
}

// Neighbor is a query result with its distance from the query point.
type Neighbor struct {
	SpatialEntry
	DistanceMiles float64
}

// NewSpatialHashGrid creates a grid with cells of roughly cellSizeMiles on a
// side (measured north-south). Non-positive sizes default to 10 miles.
func NewSpatialHashGrid(cellSizeMiles float64) *SpatialHashGrid {
	if cellSizeMiles <= 0 {
		cellSizeMiles = 10
	}
	size := geo.MilesToDegrees(cellSizeMiles)
	return &SpatialHashGrid{
		cells:    make(map[CellKey][]*SpatialEntry),
		cellSize: size,
		columns:  int(math.Ceil(360 / size)),
		entries:  make(map[string]*SpatialEntry),
	}
}

func normalizeLon(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}

func (g *SpatialHashGrid) cellKey(lat, lon float64) CellKey {
	return CellKey{
		X: wrapX(int(math.Floor(normalizeLon(lon)/g.cellSize)), g.columns),
		Y: int(math.Floor(lat / g.cellSize)),
	}
}

// Insert adds or replaces the point with the given ID.
func (g *SpatialHashGrid) Insert(id string, lat, lon float64, data any) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if existing, ok := g.entries[id]; ok {
		g.removeFromCellLocked(existing)
	}

	e := &SpatialEntry{ID: id, Lat: lat, Lon: lon, Data: data, cellKey: g.cellKey(lat, lon)}
	g.cells[e.cellKey] = append(g.cells[e.cellKey], e)
	g.entries[id] = e
}

func (g *SpatialHashGrid) removeFromCellLocked(e *SpatialEntry) {
	cell := g.cells[e.cellKey]
	for i, c := range cell {
		if c.ID == e.ID {
			cell[i] = cell[len(cell)-1]
			cell = cell[:len(cell)-1]
			break
		}
	}
	if len(cell) == 0 {
		delete(g.cells, e.cellKey)
		return
	}
	g.cells[e.cellKey] = cell
}

// QueryNearby returns every point within radiusMiles of (lat, lon), nearest
// first. Ties are ordered by ID so results are deterministic.
func (g *SpatialHashGrid) QueryNearby(lat, lon, radiusMiles float64) []Neighbor {
	if radiusMiles < 0 {
		return nil
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	center := g.cellKey(lat, lon)
	spanY := int(math.Ceil(geo.MilesToDegrees(radiusMiles)/g.cellSize)) + 1

	// Longitude degrees shrink with latitude; widen the x span accordingly.
	cosLat := math.Cos(math.Min(math.Abs(lat)+geo.MilesToDegrees(radiusMiles), 89.9) * math.Pi / 180)
	spanX := int(math.Ceil(float64(spanY) / cosLat))
	if spanX > g.columns/2 {
		spanX = g.columns / 2
	}

	var results []Neighbor
	seen := make(map[CellKey]bool)
	for dx := -spanX; dx <= spanX; dx++ {
		for dy := -spanY; dy <= spanY; dy++ {
			key := CellKey{X: wrapX(center.X+dx, g.columns), Y: center.Y + dy}
			if seen[key] {
				continue
			}
			seen[key] = true
			for _, e := range g.cells[key] {
				d := geo.HaversineMiles(lat, lon, e.Lat, e.Lon)
				if d <= radiusMiles {
					results = append(results, Neighbor{SpatialEntry: *e, DistanceMiles: d})
				}
			}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].DistanceMiles != results[j].DistanceMiles {
			return results[i].DistanceMiles < results[j].DistanceMiles
		}
		return results[i].ID < results[j].ID
	})
	return results
}

// wrapX maps a cell column across the antimeridian.
func wrapX(x, columns int) int {
	half := columns / 2
	for x >= columns-half {
		x -= columns
	}
	for x < -half {
		x += columns
	}
	return x
}

// Size returns the number of indexed points.
func (g *SpatialHashGrid) Size() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.entries)
}
