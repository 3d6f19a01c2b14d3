package export

import "strings"

// Basemap is a raster tile source offered in the exported map.
type Basemap struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

const DefaultBasemap = "POSITRON"

var Basemaps = map[string]Basemap{
	"POSITRON": {
		Name:        "CartoDB Positron",
		URL:         "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors &copy; <a href="https://carto.com/attributions">CARTO</a>`,
	},
	"OSM": {
		Name:        "OpenStreetMap",
		URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`,
	},
	"IMAGERY": {
		Name:        "World Imagery",
		URL:         "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
		Attribution: "Tiles &copy; Esri &mdash; Source: Esri, i-cubed, USDA, USGS, AEX, GeoEye, Getmapping, Aerogrid, IGN, IGP, UPR-EGP, and the GIS User Community",
	},
}

func BasemapNames() []string {
	return sortedKeys(Basemaps)
}

// LookupBasemap returns the named basemap, case-insensitively, or the default.
func LookupBasemap(name string) Basemap {
	if b, ok := Basemaps[strings.ToUpper(name)]; ok {
		return b
	}
	return Basemaps[DefaultBasemap]
}
