// Package mapview decouples merchant map rendering from any particular map SDK.
package mapview

import (
	"errors"
	"sync"

	"subsidy-dashboard/internal/display"
	"subsidy-dashboard/internal/models"
)

// DefaultCenter is used when no merchant has coordinates.
var DefaultCenter = LatLng{Lat: -6.2088, Lng: 106.8456}

// DefaultZoom frames a single district.
const DefaultZoom = 11

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Marker is one pin on the merchant map.
type Marker struct {
	ID         models.ID `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address,omitempty"`
	Position   LatLng    `json:"position"`
	ColorClass string    `json:"colorClass"`
	Label      string    `json:"label"`
}

// Provider is implemented by a concrete map backend.
type Provider interface {
	RenderMarkers(markers []Marker) error
	CenterOn(center LatLng, zoom int) error
	OnClick(handler func(Marker))
}

var ErrUnknownMarker = errors.New("unknown marker")

// Markers builds pins for merchants with coordinates; others are skipped.
func Markers(merchants []models.Merchant) []Marker {
	markers := make([]Marker, 0, len(merchants))
	for _, m := range merchants {
		if !m.HasLocation() {
			continue
		}
		status := display.ResolveActive(m.IsActive)
		markers = append(markers, Marker{
			ID:         m.ID,
			Name:       m.Name,
			Address:    m.Address,
			Position:   LatLng{Lat: *m.Latitude, Lng: *m.Longitude},
			ColorClass: status.ColorClass,
			Label:      status.Label,
		})
	}
	return markers
}

// Center is the mean position of markers, or DefaultCenter when there are none.
func Center(markers []Marker) LatLng {
	if len(markers) == 0 {
		return DefaultCenter
	}
	var sum LatLng
	for _, m := range markers {
		sum.Lat += m.Position.Lat
		sum.Lng += m.Position.Lng
	}
	n := float64(len(markers))
	return LatLng{Lat: sum.Lat / n, Lng: sum.Lng / n}
}

// Layer is a Provider that keeps the rendered state for serving as JSON
// to a browser-side map.
type Layer struct {
	mu       sync.RWMutex
	markers  []Marker
	center   LatLng
	zoom     int
	handlers []func(Marker)
}

func NewLayer() *Layer {
	return &Layer{center: DefaultCenter, zoom: DefaultZoom}
}

func (l *Layer) RenderMarkers(markers []Marker) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.markers = append([]Marker(nil), markers...)
	return nil
}

func (l *Layer) CenterOn(center LatLng, zoom int) error {
	if center.Lat < -90 || center.Lat > 90 || center.Lng < -180 || center.Lng > 180 {
		return errors.New("center out of range")
	}
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.center = center
	l.zoom = zoom
	return nil
}

func (l *Layer) OnClick(handler func(Marker)) {
	if handler == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers = append(l.handlers, handler)
}

// Click dispatches a click on marker id to the registered handlers.
func (l *Layer) Click(id models.ID) error {
	l.mu.RLock()
	var hit *Marker
	for i := range l.markers {
		if l.markers[i].ID == id {
			m := l.markers[i]
			hit = &m
			break
		}
	}
	handlers := append(([]func(Marker))(nil), l.handlers...)
	l.mu.RUnlock()

	if hit == nil {
		return ErrUnknownMarker
	}
	for _, h := range handlers {
		h(*hit)
	}
	return nil
}

// Snapshot is the JSON payload a browser map renders.
type Snapshot struct {
	Center  LatLng   `json:"center"`
	Zoom    int      `json:"zoom"`
	Markers []Marker `json:"markers"`
}

func (l *Layer) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	markers := append([]Marker{}, l.markers...)
	return Snapshot{Center: l.center, Zoom: l.zoom, Markers: markers}
}

// Show renders merchants on p and centers it on them.
func Show(p Provider, merchants []models.Merchant) error {
	markers := Markers(merchants)
	if err := p.RenderMarkers(markers); err != nil {
		return err
	}
	return p.CenterOn(Center(markers), DefaultZoom)
}
