package handlers

import (
	"github.com/gofiber/fiber/v2"
	g "maragu.dev/gomponents"

	"github.com/civic-lens/site/mapstate"
	"github.com/civic-lens/site/ui"
)

// HandleUpdateFilters replaces the active filters from the posted form. The
// filter form always submits every field, so array fields are replaced
// wholesale; an unchecked group arrives as an empty list.
func HandleUpdateFilters(c *fiber.Ctx) error {
	state := getMapState(c)

	state.SetFilters(mapstate.Filters{
		Amendments:   formValues(c, "amendments"),
		Participants: formValues(c, "participants"),
		DateFrom:     c.FormValue("dateFrom"),
		DateTo:       c.FormValue("dateTo"),
	})

	return renderMapDataResponse(c, state)
}

// HandleClearFilters resets to the empty filter value and re-renders the
// filter bar alongside the fresh data.
func HandleClearFilters(c *fiber.Ctx) error {
	state := getMapState(c)
	state.ClearFilters()

	data, list := buildMapData(c, state)
	return render(c, g.Group([]g.Node{
		data,
		ui.OOBInner("#video-list-slot", list),
		ui.OOBInner("#map-filters-slot", ui.FilterBar(state.Filters())),
	}))
}

func renderMapDataResponse(c *fiber.Ctx, state *mapstate.State) error {
	data, list := buildMapData(c, state)
	return render(c, g.Group([]g.Node{
		data,
		ui.OOBInner("#video-list-slot", list),
	}))
}

// formValues reads a repeated urlencoded form field.
func formValues(c *fiber.Ctx, key string) []string {
	vals := c.Context().PostArgs().PeekMulti(key)
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if len(v) > 0 {
			out = append(out, string(v))
		}
	}
	return out
}
