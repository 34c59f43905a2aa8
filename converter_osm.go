package railalign

import (
	"encoding/xml"
	"fmt"
	"os"

	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

// ToOSM converts realized geometry into OSM nodes and one "railway=rail" way per segment.
//
// Identifiers are negative (new objects in OSM editors) and count down from -1.
// Coincident consecutive coordinates share a single node, so neighbouring ways are connected.
func (realized *RealizedAlignment) ToOSM() *osm.OSM {
	output := &osm.OSM{}
	nextNodeID := osm.NodeID(-1)
	var lastNode *osm.Node
	for i := range realized.Segments {
		seg := &realized.Segments[i]
		way := &osm.Way{
			ID:      osm.WayID(-(i + 1)),
			Visible: true,
			Tags: osm.Tags{
				{Key: "railway", Value: "rail"},
				{Key: "name", Value: realized.Name},
				{Key: "description", Value: seg.Segment.Name()},
				{Key: "railalign:kind", Value: seg.Segment.Kind().String()},
				{Key: "railalign:stations", Value: fmt.Sprintf("%s;%s", FormatStation(seg.Segment.StartStation()), FormatStation(seg.Segment.EndStation()))},
			},
		}
		for _, pt := range seg.Coords {
			if lastNode != nil && lastNode.Lat == pt.Lat && lastNode.Lon == pt.Lon {
				if len(way.Nodes) == 0 {
					way.Nodes = append(way.Nodes, osm.WayNode{ID: lastNode.ID})
				}
				continue
			}
			node := &osm.Node{
				ID:      nextNodeID,
				Lat:     pt.Lat,
				Lon:     pt.Lon,
				Visible: true,
			}
			nextNodeID--
			output.Nodes = append(output.Nodes, node)
			way.Nodes = append(way.Nodes, osm.WayNode{ID: node.ID})
			lastNode = node
		}
		output.Ways = append(output.Ways, way)
	}
	return output
}

// ExportToOSM writes realized geometry to OSM XML file
func (realized *RealizedAlignment) ExportToOSM(fname string) error {
	data, err := xml.MarshalIndent(realized.ToOSM(), "", " ")
	if err != nil {
		return errors.Wrap(err, "Can't marshal OSM data")
	}
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()
	if _, err = file.Write([]byte(xml.Header)); err != nil {
		return errors.Wrap(err, "Can't write XML header")
	}
	if _, err = file.Write(data); err != nil {
		return errors.Wrap(err, "Can't write OSM data")
	}
	return nil
}
