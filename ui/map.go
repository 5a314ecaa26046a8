package ui

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/civic-lens/site/geo"
	"github.com/civic-lens/site/marker"
	"github.com/civic-lens/site/mapstate"
	"github.com/civic-lens/site/searchapi"
)

// MapView renders the map container with its hidden state inputs and the
// initial data payload. The client-side map script reads the data container
// and draws markers or clusters from it.
func MapView(viewport geo.Viewport, data g.Node) g.Node {
	initScript := fmt.Sprintf("initMap({longitude: %f, latitude: %f, zoom: %f});",
		viewport.Longitude, viewport.Latitude, viewport.Zoom)

	return Div(
		ID("map-view"),
		Class("w-full h-full"),
		Div(
			Class("h-full w-full rounded border bg-gray-50"),
			Div(
				ID("map-container"),
				Class("h-full w-full"),
				Style("border-radius: inherit; overflow: hidden;"),
			),
			// Hidden inputs the map script keeps in sync with the camera
			Input(Type("hidden"), ID("map-bbox"), Name("bbox")),
			Input(Type("hidden"), ID("map-zoom"), Name("zoom")),
			data,
			Script(
				Type("text/javascript"),
				g.Raw(initScript),
			),
		),
	)
}

// MapData is the hidden data container htmx swaps on every viewport or
// filter change. It carries either marker elements or cluster elements,
// never both: the render selection is a hard cutover at the zoom threshold.
func MapData(children ...g.Node) g.Node {
	return Div(
		ID("map-data"),
		Class("hidden"),
		g.Group(children),
	)
}

// MarkerDataElements emits one hidden element per renderable video, carrying
// the server-rendered popup as its content. Videos with invalid coordinates
// were already excluded upstream; this renders whatever it is handed.
func MarkerDataElements(videos []searchapi.Video, selectedID, highlightedID string) []g.Node {
	var els []g.Node
	for _, v := range videos {
		el := Div(
			g.Attr("data-video-id", v.ID),
			g.Attr("data-lat", fmt.Sprintf("%f", v.Latitude)),
			g.Attr("data-lon", fmt.Sprintf("%f", v.Longitude)),
			g.Attr("data-title", v.Title),
			g.Attr("data-participant-count", fmt.Sprintf("%d", v.ParticipantCount)),
			g.If(v.ID == selectedID, g.Attr("data-selected", "true")),
			g.If(v.ID == highlightedID, g.Attr("data-highlighted", "true")),
			g.If(v.ThumbnailURL != "", g.Attr("data-thumbnail", v.ThumbnailURL)),
			MarkerPopup(v),
		)
		els = append(els, el)
	}
	return els
}

// ClusterDataElements emits one hidden element per renderable cluster, with
// the badge label and pixel size precomputed server-side.
func ClusterDataElements(clusters []searchapi.Cluster) []g.Node {
	var els []g.Node
	for _, c := range clusters {
		size := marker.SizeFor(c.Count)
		el := Div(
			g.Attr("data-cluster-id", c.ID),
			g.Attr("data-lat", fmt.Sprintf("%f", c.Latitude)),
			g.Attr("data-lon", fmt.Sprintf("%f", c.Longitude)),
			g.Attr("data-count", fmt.Sprintf("%d", c.Count)),
			g.Attr("data-label", marker.FormatCount(c.Count)),
			g.Attr("data-size-px", fmt.Sprintf("%d", size.Pixels())),
			g.If(c.ExpansionZoom != nil, expansionZoomAttr(c.ExpansionZoom)),
		)
		els = append(els, el)
	}
	return els
}

func expansionZoomAttr(zoom *float64) g.Node {
	if zoom == nil {
		return nil
	}
	return g.Attr("data-expansion-zoom", fmt.Sprintf("%f", *zoom))
}

// MarkerPopup renders the info popup for a single video. A video with
// invalid coordinates renders nothing at all.
func MarkerPopup(v searchapi.Video) g.Node {
	if !geo.ValidCoordinate(v.Latitude, v.Longitude) {
		return g.Group(nil)
	}

	return Div(
		Class("p-2 max-w-xs"),
		g.If(v.ThumbnailURL != "",
			Img(Src(v.ThumbnailURL), Alt(v.Title), Class("w-full rounded mb-2")),
		),
		Div(Class("font-semibold text-sm"), g.Text(v.Title)),
		Div(Class("text-xs text-gray-500"),
			g.Text(fmt.Sprintf("%d participants", v.ParticipantCount)),
		),
	)
}

// PendingCameraCommands serializes outstanding fly-to / fit-bounds requests
// for the map script. The script performs the move and acknowledges via the
// ack endpoints, which clear the one-shot slots.
func PendingCameraCommands(flyTo *mapstate.FlyToRequest, fitBounds *mapstate.FitBoundsRequest) g.Node {
	var children []g.Node
	if flyTo != nil {
		el := Div(
			g.Attr("data-command", "flyto"),
			g.Attr("data-lon", fmt.Sprintf("%f", flyTo.Longitude)),
			g.Attr("data-lat", fmt.Sprintf("%f", flyTo.Latitude)),
			g.If(flyTo.Zoom != nil, flyToZoomAttr(flyTo.Zoom)),
		)
		children = append(children, el)
	}
	if fitBounds != nil {
		children = append(children, Div(
			g.Attr("data-command", "fitbounds"),
			g.Attr("data-bbox", fitBounds.Bounds.String()),
		))
	}

	return Div(
		ID("map-camera-commands"),
		Class("hidden"),
		g.Group(children),
	)
}

func flyToZoomAttr(zoom *float64) g.Node {
	if zoom == nil {
		return nil
	}
	return g.Attr("data-zoom", fmt.Sprintf("%f", *zoom))
}
