package ui

import (
	"fmt"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/civic-lens/site/searchapi"
)

// VideoList renders the panel list for the current viewport. Clicking an
// item selects the video and asks the camera to fly to it.
func VideoList(videos []searchapi.Video, selectedID string) g.Node {
	if len(videos) == 0 {
		return Div(ID("video-list"), NoResultsMessage())
	}

	var items []g.Node
	for _, v := range videos {
		items = append(items, videoListItem(v, v.ID == selectedID))
	}

	return Div(
		ID("video-list"),
		Class("flex flex-col gap-2"),
		g.Group(items),
	)
}

func videoListItem(v searchapi.Video, selected bool) g.Node {
	itemClass := "flex gap-3 p-3 rounded border bg-white cursor-pointer hover:bg-gray-50 "
	if selected {
		itemClass += "border-blue-400 bg-blue-50"
	}

	return Div(
		Class(itemClass),
		g.Attr("data-video-id", v.ID),
		hx.Post("/map/select/"+v.ID),
		// Carry the video's coordinates so selection can fly the camera there
		hx.Vals(fmt.Sprintf(`{"lat": "%f", "lon": "%f"}`, v.Latitude, v.Longitude)),
		hx.Target("#map-camera-commands"),
		hx.Swap("outerHTML"),
		g.If(v.ThumbnailURL != "",
			Img(Src(v.ThumbnailURL), Alt(v.Title), Class("w-16 h-16 rounded object-cover flex-shrink-0")),
		),
		Div(
			Class("flex flex-col gap-1 min-w-0"),
			Div(Class("font-semibold text-sm truncate"), g.Text(v.Title)),
			Div(Class("text-xs text-gray-500"),
				g.Text(fmt.Sprintf("%d participants", v.ParticipantCount)),
			),
			amendmentBadges(v.Amendments),
		),
	)
}

func amendmentBadges(amendments []string) g.Node {
	if len(amendments) == 0 {
		return nil
	}

	var badges []g.Node
	for _, a := range amendments {
		badges = append(badges, Span(
			Class("text-[10px] uppercase bg-gray-200 text-gray-700 rounded px-1"),
			g.Text(a),
		))
	}
	return Div(Class("flex gap-1 flex-wrap"), g.Group(badges))
}
