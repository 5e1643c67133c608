package encode

import (
	"github.com/osm-without-borders/cosmogony/internal/stats"
	"github.com/osm-without-borders/cosmogony/internal/zone"
)

// zoneRecord is the canonical per-zone JSON schema.
type zoneRecord struct {
	ID          int                 `json:"id"`
	OSMID       string              `json:"osm_id"`
	AdminLevel  *int                `json:"admin_level"`
	ZoneType    string              `json:"zone_type"`
	Name        string              `json:"name"`
	ZipCodes    []string            `json:"zip_codes"`
	Label       string              `json:"label"`
	Center      geoJSONPoint        `json:"center"`
	BBox        [4]float64          `json:"bbox"`
	Geometry    geoJSONMultiPolygon `json:"geometry"`
	Tags        map[string]string   `json:"tags"`
	Parent      *string             `json:"parent"`
	Wikidata    *string             `json:"wikidata"`
	CountryCode *string             `json:"country_code"`
}

func toRecord(id int, z *zone.Zone) zoneRecord {
	rec := zoneRecord{
		ID:         id,
		OSMID:      z.OSMID,
		AdminLevel: z.AdminLevel,
		ZoneType:   z.ZoneType.String(),
		Name:       z.Name,
		ZipCodes:   z.ZipCodes,
		Label:      z.Label,
		Center:     pointToGeoJSON(z.Center),
		BBox:       [4]float64{z.BBox.MinLon, z.BBox.MinLat, z.BBox.MaxLon, z.BBox.MaxLat},
		Geometry:   multiPolygonToGeoJSON(z.Geometry),
		Tags:       z.Tags,
		Parent:     z.Parent,
	}
	if z.Wikidata != "" {
		rec.Wikidata = &z.Wikidata
	}
	if z.CountryCode != "" {
		rec.CountryCode = &z.CountryCode
	}
	return rec
}

// metaRecord wraps the statistics bundle emitted as the trailing JSONL line
// or the "meta" key of a single-JSON document.
type metaRecord struct {
	Meta *stats.Bundle `json:"meta"`
}
