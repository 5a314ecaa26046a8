package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	g "maragu.dev/gomponents"

	"github.com/civic-lens/site/geo"
	"github.com/civic-lens/site/layout"
	"github.com/civic-lens/site/mapstate"
	"github.com/civic-lens/site/marker"
	"github.com/civic-lens/site/searchapi"
	"github.com/civic-lens/site/ui"
)

// HandleMapPage renders the full map page. The shell (desktop side panel vs
// mobile bottom sheet) is chosen from the client's width hint; without one
// the desktop guess is used until the client reports.
func HandleMapPage(c *fiber.Ctx) error {
	state := getMapState(c)

	// Returning users resume where they left off
	if state.Bounds() == nil {
		if bounds, ok := getCookieMapBounds(c); ok {
			state.SetBounds(bounds)
		}
	}

	data, list := buildMapData(c, state)
	mapArea := g.Group([]g.Node{
		ui.MapView(state.Viewport(), data),
		ui.PendingCameraCommands(state.PendingFlyTo(), state.PendingFitBounds()),
	})
	filterBar := ui.FilterBar(state.Filters())

	// Desktop guess until the client has reported a width
	shell := ui.DesktopShell(mapArea, filterBar, list)
	if w := viewportWidth(c); w > 0 && layout.IsMobileWidth(w) {
		shell = ui.MobileShell(mapArea, filterBar, list)
	}

	return render(c, ui.Page("Audit Video Map", []g.Node{shell}))
}

// HandleMapData is the htmx endpoint hit on every move-end: it replaces the
// viewport and bounds wholesale, persists bounds cookies, and returns the
// marker or cluster data for the new extent plus an out-of-band video list.
func HandleMapData(c *fiber.Ctx) error {
	state := getMapState(c)

	zoom, err := strconv.ParseFloat(c.Query("zoom"), 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid zoom")
	}

	bounds, err := geo.ParseBBox(c.Query("bbox"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid bbox")
	}

	lng, lat := bounds.Center()
	state.SetViewport(geo.Viewport{Longitude: lng, Latitude: lat, Zoom: zoom})
	state.SetBounds(bounds)
	saveCookieMapBounds(c, bounds)

	data, list := buildMapData(c, state)
	return render(c, g.Group([]g.Node{
		data,
		ui.OOBInner("#video-list-slot", list),
	}))
}

// buildMapData runs the fetcher the render selection calls for and returns
// the hidden map data container plus the side-panel list. A fetch failure on
// one representation surfaces as a panel message and never breaks the map.
func buildMapData(c *fiber.Ctx, state *mapstate.State) (data g.Node, list g.Node) {
	bounds := state.Bounds()
	vp := state.Viewport()
	filters := state.Filters()

	if marker.UseClusters(vp.Zoom) {
		page, err := clusterFetcher.Fetch(c.Context(), bounds, vp.Zoom, filters, true)
		if err != nil {
			return ui.MapData(), ui.SearchErrorMessage("Could not load map clusters. Pan or zoom to retry.")
		}
		if page == nil {
			return ui.MapData(), ui.NoResultsMessage()
		}
		renderable := marker.RenderableClusters(page.Clusters)
		return ui.MapData(ui.ClusterDataElements(renderable)...),
			ui.ZoomInMessage()
	}

	page, err := videoFetcher.Fetch(c.Context(), bounds, filters, true)
	if err != nil {
		return ui.MapData(), ui.SearchErrorMessage("Could not load videos for this area.")
	}
	if page == nil {
		return ui.MapData(), ui.NoResultsMessage()
	}
	renderable := marker.RenderableVideos(page.Videos)
	return ui.MapData(ui.MarkerDataElements(renderable, state.SelectedVideoID(), state.HighlightedVideoID())...),
		ui.VideoList(renderable, state.SelectedVideoID())
}

// HandleClusterClick computes the expansion viewport for a clicked cluster
// and records a fly-to request for the map renderer to consume.
func HandleClusterClick(c *fiber.Ctx) error {
	state := getMapState(c)

	lat, err1 := strconv.ParseFloat(c.FormValue("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.FormValue("lon"), 64)
	if err1 != nil || err2 != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid cluster coordinates")
	}

	cluster := searchapi.Cluster{Latitude: lat, Longitude: lng}
	if ezStr := c.FormValue("expansion_zoom"); ezStr != "" {
		if ez, err := strconv.ParseFloat(ezStr, 64); err == nil {
			cluster.ExpansionZoom = &ez
		}
	}

	target := marker.ExpansionViewport(cluster, state.Viewport())
	state.SetViewport(target)
	state.FlyTo(target.Longitude, target.Latitude, &target.Zoom)

	return render(c, ui.PendingCameraCommands(state.PendingFlyTo(), state.PendingFitBounds()))
}

// HandleFitBoundsRequest records a fit-bounds camera request for a region.
func HandleFitBoundsRequest(c *fiber.Ctx) error {
	state := getMapState(c)

	bounds, err := geo.ParseBBox(c.FormValue("bbox"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid bbox")
	}

	state.RequestFitBounds(*bounds)
	return render(c, ui.PendingCameraCommands(state.PendingFlyTo(), state.PendingFitBounds()))
}

// HandleFlyToAck is the renderer's acknowledgment that the camera move
// happened; it clears the one-shot slot.
func HandleFlyToAck(c *fiber.Ctx) error {
	state := getMapState(c)
	state.ClearPendingFlyTo()
	return render(c, ui.PendingCameraCommands(state.PendingFlyTo(), state.PendingFitBounds()))
}

// HandleFitBoundsAck clears the fit-bounds slot after the camera move.
func HandleFitBoundsAck(c *fiber.Ctx) error {
	state := getMapState(c)
	state.ClearPendingFitBounds()
	return render(c, ui.PendingCameraCommands(state.PendingFlyTo(), state.PendingFitBounds()))
}

// HandleSelectVideo selects a video and, when the item carries coordinates,
// asks the camera to fly to it.
func HandleSelectVideo(c *fiber.Ctx) error {
	state := getMapState(c)
	state.SetSelectedVideoID(c.Params("id"))

	lat, err1 := strconv.ParseFloat(c.FormValue("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.FormValue("lon"), 64)
	if err1 == nil && err2 == nil {
		state.FlyTo(lng, lat, nil)
	}

	return render(c, ui.PendingCameraCommands(state.PendingFlyTo(), state.PendingFitBounds()))
}

// HandleHighlightVideo sets the transient hover highlight.
func HandleHighlightVideo(c *fiber.Ctx) error {
	state := getMapState(c)
	state.SetHighlightedVideoID(c.Params("id"))
	return render(c, ui.EmptyResponse())
}

// HandleClearHighlight clears the hover highlight on pointer leave.
func HandleClearHighlight(c *fiber.Ctx) error {
	state := getMapState(c)
	state.SetHighlightedVideoID("")
	return render(c, ui.EmptyResponse())
}

// viewportWidth reads the client's width hint; 0 when no client has
// reported yet.
func viewportWidth(c *fiber.Ctx) int {
	if v := c.Get("X-Viewport-Width"); v != "" {
		if w, err := strconv.Atoi(v); err == nil {
			return w
		}
	}
	if v := c.Query("vw"); v != "" {
		if w, err := strconv.Atoi(v); err == nil {
			return w
		}
	}
	return 0
}
