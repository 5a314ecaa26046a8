package ui

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/civic-lens/site/mapstate"
)

// Filter options shown in the bar. Values are the backend's enum spellings;
// the backend owns the canonical list, this is only what the UI offers.
var amendmentOptions = []filterOption{
	{"FIRST", "1st Amendment"},
	{"SECOND", "2nd Amendment"},
	{"FOURTH", "4th Amendment"},
	{"FIFTH", "5th Amendment"},
	{"FOURTEENTH", "14th Amendment"},
}

var participantOptions = []filterOption{
	{"POLICE", "Police"},
	{"SECURITY", "Private Security"},
	{"FEDERAL", "Federal Agents"},
	{"CODE_ENFORCEMENT", "Code Enforcement"},
	{"PUBLIC_OFFICIAL", "Public Officials"},
}

type filterOption struct {
	Value string
	Label string
}

// FilterBar renders the amendment/participant/date filter controls. Every
// change posts the full form so array fields are always replaced wholesale.
func FilterBar(filters mapstate.Filters) g.Node {
	return Form(
		ID("map-filters"),
		Class("flex flex-col gap-4 p-4 bg-white rounded border"),
		hx.Post("/map/filters"),
		hx.Target("#map-data"),
		hx.Swap("outerHTML"),
		hx.Trigger("change"),

		filterGroup("Amendments", "amendments", amendmentOptions, filters.Amendments),
		filterGroup("Participants", "participants", participantOptions, filters.Participants),

		Div(
			Class("flex gap-2 items-center"),
			Label(Class("text-sm text-gray-700 w-24"), g.Text("From")),
			Input(Type("date"), Name("dateFrom"), Value(filters.DateFrom),
				Class("border rounded px-2 py-1 text-sm")),
			Label(Class("text-sm text-gray-700"), g.Text("To")),
			Input(Type("date"), Name("dateTo"), Value(filters.DateTo),
				Class("border rounded px-2 py-1 text-sm")),
		),

		Button(
			Type("button"),
			Class("text-sm text-blue-600 hover:underline self-start"),
			hx.Delete("/map/filters"),
			hx.Target("#map-data"),
			hx.Swap("outerHTML"),
			g.Text("Clear filters"),
		),
	)
}

func filterGroup(title, name string, options []filterOption, active []string) g.Node {
	activeSet := make(map[string]bool, len(active))
	for _, v := range active {
		activeSet[v] = true
	}

	var boxes []g.Node
	for _, opt := range options {
		boxes = append(boxes, Label(
			Class("flex items-center gap-2 text-sm text-gray-700 cursor-pointer"),
			Input(
				Type("checkbox"),
				Name(name),
				Value(opt.Value),
				g.If(activeSet[opt.Value], Checked()),
			),
			g.Text(opt.Label),
		))
	}

	return Div(
		Class("flex flex-col gap-1"),
		Div(Class("text-xs font-semibold uppercase text-gray-500"), g.Text(title)),
		g.Group(boxes),
	)
}
