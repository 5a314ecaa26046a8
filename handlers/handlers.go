// Package handlers wires the map view-state coordinator to HTTP: each
// browser session gets one mapstate.State, htmx partials read and mutate it,
// and the bounds-driven fetchers supply the data the map renders.
package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/civic-lens/site/config"
	"github.com/civic-lens/site/fetcher"
	"github.com/civic-lens/site/geo"
	"github.com/civic-lens/site/mapstate"
	"github.com/civic-lens/site/searchapi"
)

const sessionCookie = "map_session"

// defaultViewport frames the continental US until the client reports a
// real camera position.
var defaultViewport = geo.Viewport{Longitude: -98.5795, Latitude: 39.8283, Zoom: 4}

var (
	stateProvider  *mapstate.Provider
	videoFetcher   *fetcher.Videos
	clusterFetcher *fetcher.Clusters
)

// SearchClient is the slice of the search API the handlers depend on.
type SearchClient interface {
	fetcher.VideoSearcher
	fetcher.ClusterSearcher
}

// Init builds the session provider and the two search fetchers. Must be
// called before the app serves requests.
func Init() error {
	return InitWithClient(searchapi.New(config.SearchAPIBaseURL, config.SearchAPITimeout))
}

// InitWithClient wires the handlers against a specific search client.
func InitWithClient(client SearchClient) error {
	videos, err := fetcher.NewVideos(client)
	if err != nil {
		return err
	}
	clusters, err := fetcher.NewClusters(client)
	if err != nil {
		return err
	}

	videoFetcher = videos
	clusterFetcher = clusters
	stateProvider = mapstate.NewProvider(func() *mapstate.State {
		return mapstate.New(defaultViewport)
	})
	return nil
}

// SessionMiddleware installs the session's map state on the request context.
// Every map handler below reads it back via getMapState.
func SessionMiddleware(c *fiber.Ctx) error {
	id := c.Cookies(sessionCookie)
	if id == "" {
		id = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Expires:  time.Now().Add(24 * time.Hour),
			HTTPOnly: true,
			Path:     "/",
			SameSite: "Lax",
		})
	}

	c.SetUserContext(mapstate.WithContext(c.UserContext(), stateProvider.Get(id)))
	return c.Next()
}

// getMapState returns the session's map state. On a route not behind
// SessionMiddleware, mapstate.FromContext panics loudly; there is no silent
// fallback to a default store.
func getMapState(c *fiber.Ctx) *mapstate.State {
	return mapstate.FromContext(c.UserContext())
}
