package ui

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ---- Shared Components ----

// NoResultsMessage shows when a search returned nothing for the viewport.
func NoResultsMessage() g.Node {
	return Div(
		Class("text-center text-gray-500 text-sm py-8"),
		g.Text("No videos in this area. Try zooming out or clearing filters."),
	)
}

// SearchErrorMessage shows a failed fetch without breaking the map itself.
func SearchErrorMessage(message string) g.Node {
	return Div(
		Class("text-center text-red-600 text-sm py-8"),
		g.Text(message),
	)
}

// ErrorPage is the full-page error view used by the custom error handler.
func ErrorPage(code int, message string) g.Node {
	return Page("Error", []g.Node{
		Div(
			Class("flex flex-col items-center justify-center h-full gap-4"),
			H1(Class("text-4xl font-bold"), g.Text(fmt.Sprintf("Error %d", code))),
			P(Class("text-gray-600"), g.Text(message)),
			A(Href("/"), Class("text-blue-600 hover:underline"), g.Text("Back to the map")),
		),
	})
}

// ZoomInMessage shows in the panel while the map is zoomed out to the
// clustered representation.
func ZoomInMessage() g.Node {
	return Div(
		Class("text-center text-gray-500 text-sm py-8"),
		g.Text("Zoom in to browse individual videos."),
	)
}

// OOBInner wraps children for an htmx out-of-band innerHTML swap into the
// element matching selector.
func OOBInner(selector string, children ...g.Node) g.Node {
	return Div(
		g.Attr("hx-swap-oob", "innerHTML:"+selector),
		g.Group(children),
	)
}

// EmptyResponse is an empty swap target for htmx deletes.
func EmptyResponse() g.Node {
	return g.Raw("")
}
