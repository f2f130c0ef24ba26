package overpass

import (
	"fmt"

	"github.com/urbaniq/urbaniq-cli/internal/core/domain"
)

// queryTimeout is the server-side timeout in seconds embedded in every query.
const queryTimeout = 25

// bboxBufferDegrees widens the query box so stops right on the district edge
// are included; the exact clip happens during harmonization.
const bboxBufferDegrees = 0.001

// stopQuery selects every node that represents a public transit stop. The tag
// patterns cover bus, tram, rail and ferry infrastructure as mapped in OSM.
const stopQuery = `[out:json][timeout:%d];
(
  node["public_transport"="stop_position"](%s);
  node["highway"="bus_stop"](%s);
  node["railway"="tram_stop"](%s);
  node["railway"="station"](%s);
  node["amenity"="ferry_terminal"](%s);
);
out body;`

// buildStopQuery renders the transit stop query for a WGS84 bounding box.
// Overpass expects (south,west,north,east).
func buildStopQuery(b domain.BBox) string {
	bbox := fmt.Sprintf("%f,%f,%f,%f", b.MinY, b.MinX, b.MaxY, b.MaxX)
	return fmt.Sprintf(stopQuery, queryTimeout, bbox, bbox, bbox, bbox, bbox)
}

// classifyTransportMode derives a transport mode from a node's OSM tags.
// Mode-specific tags win over the generic stop_position tag; rail stations
// split into subway and rail via the station subtag.
func classifyTransportMode(tags map[string]string) string {
	switch {
	case tags["railway"] == "tram_stop" || tags["tram"] == "yes":
		return "tram"
	case tags["railway"] == "station" && (tags["station"] == "subway" || tags["subway"] == "yes"):
		return "subway"
	case tags["railway"] == "station":
		return "rail"
	case tags["highway"] == "bus_stop" || tags["bus"] == "yes":
		return "bus"
	case tags["amenity"] == "ferry_terminal" || tags["ferry"] == "yes":
		return "ferry"
	default:
		return "unknown"
	}
}
