package ui

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	"maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"github.com/civic-lens/site/config"
)

// ---- Page Layout ----

// Page is the HTML5 shell for the map pages.
func Page(title string, content []g.Node) g.Node {
	return components.HTML5(components.HTML5Props{
		Title:    title,
		Language: "en",
		Head: []g.Node{
			Link(
				Rel("stylesheet"),
				Href(config.TailwindCSSURL),
			),
			// Leaflet CSS for map functionality
			Link(
				Rel("stylesheet"),
				Href(config.LeafletCSSURL),
			),
			Script(
				Type("text/javascript"),
				Src(config.HTMXURL),
				Defer(),
			),
			Script(
				Type("text/javascript"),
				Src(config.HTMXSSEURL),
				Defer(),
			),
			// Leaflet JS for map functionality
			Script(
				Type("text/javascript"),
				Src(config.LeafletJSURL),
				Defer(),
			),
			// Map state sync: camera -> hidden inputs -> /map/data requests
			Script(
				Type("text/javascript"),
				Src("/js/map.js"),
				Defer(),
			),
		},
		Body: []g.Node{
			Div(
				Class("h-screen w-screen"),
				hx.Headers(`js:{'X-Viewport-Width': window.innerWidth}`),
				g.Group(content),
			),
		},
	})
}

// DesktopShell mounts the map beside a scrollable side panel holding the
// filter bar and video list.
func DesktopShell(mapView, filterBar, videoList g.Node) g.Node {
	return Div(
		ID("map-shell"),
		Class("flex h-full"),
		Div(
			Class("w-96 flex-shrink-0 h-full overflow-y-auto border-r bg-gray-50 flex flex-col gap-4 p-4"),
			Div(ID("map-filters-slot"), filterBar),
			Div(ID("video-list-slot"), videoList),
		),
		Div(Class("flex-1 h-full"), mapView),
	)
}

// MobileShell mounts the map full-screen with a bottom sheet for filters and
// results.
func MobileShell(mapView, filterBar, videoList g.Node) g.Node {
	return Div(
		ID("map-shell"),
		Class("relative h-full"),
		Div(Class("absolute inset-0"), mapView),
		Div(
			ID("bottom-sheet"),
			Class("absolute bottom-0 inset-x-0 max-h-[50%] overflow-y-auto bg-white rounded-t-xl shadow-lg flex flex-col gap-4 p-4"),
			Div(ID("map-filters-slot"), filterBar),
			Div(ID("video-list-slot"), videoList),
		),
	)
}
