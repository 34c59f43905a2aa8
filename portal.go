package railalign

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Portal tunnel entrance / exit at a station
type Portal struct {
	ID          uuid.UUID
	Name        string
	Station     string
	Description string

	stationValue float64
}

// StationValue returns station in feet
func (portal *Portal) StationValue() float64 {
	return portal.stationValue
}

// AddPortal registers portal. Empty description defaults to "Portal at station X".
func (alignment *Alignment) AddPortal(name, station, description string) (*Portal, error) {
	value, err := ParseStation(station)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't add portal '%s'", name)
	}
	if description == "" {
		description = fmt.Sprintf("Portal at station %s", station)
	}
	portal := &Portal{
		ID:           uuid.New(),
		Name:         name,
		Station:      station,
		Description:  description,
		stationValue: value,
	}
	alignment.portals = append(alignment.portals, portal)
	return portal, nil
}

// Portals returns registered portals
func (alignment *Alignment) Portals() []*Portal {
	return alignment.portals
}

// PortalFix portal located on realized geometry
type PortalFix struct {
	Portal *Portal
	Point  GeoPoint
}

// LocatePortals places portals of alignment on realized geometry
func (realized *RealizedAlignment) LocatePortals(alignment *Alignment) []PortalFix {
	output := make([]PortalFix, len(alignment.portals))
	for i, portal := range alignment.portals {
		output[i] = PortalFix{
			Portal: portal,
			Point:  realized.PointAtStation(portal.stationValue),
		}
	}
	return output
}

// Marker returns portal as marker
func (fix PortalFix) Marker() Marker {
	return Marker{
		Kind:    MARKER_PORTAL,
		Name:    fix.Portal.Name,
		Station: fix.Portal.stationValue,
		Point:   fix.Point,
	}
}
