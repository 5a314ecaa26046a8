package searchapi

import "github.com/civic-lens/site/geo"

// SearchParams are the query parameters for GET /search. Zero values are
// omitted from the request entirely, never sent as empty strings.
type SearchParams struct {
	Bounds       *geo.BoundingBox
	Amendments   []string
	Participants []string
	DateFrom     string
	DateTo       string
	Query        string
	Page         int
	PageSize     int
}

// ClusterParams are the query parameters for GET /search/clusters. Zoom is
// always sent; the backend buckets aggregation by integer zoom.
type ClusterParams struct {
	Bounds       *geo.BoundingBox
	Amendments   []string
	Participants []string
	DateFrom     string
	DateTo       string
	Zoom         int
}

// Pagination echoes the backend's paging envelope.
type Pagination struct {
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// Video is the flattened view model produced from a search result: the first
// location's coordinates are hoisted to the top level and the participant
// list is reduced to a count. Results with zero locations are dropped during
// transformation and never reach this type.
type Video struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Amendments       []string `json:"amendments"`
	RecordedAt       string   `json:"recordedAt"`
	ThumbnailURL     string   `json:"thumbnailUrl"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	ParticipantCount int      `json:"participantCount"`
}

// VideoPage is a page of transformed search results.
type VideoPage struct {
	Videos     []Video
	Pagination Pagination
}

// Cluster is a server-computed aggregate point shown in place of individual
// markers when zoomed out. ExpansionZoom, when present, is the zoom level at
// which the cluster splits into its constituent points.
type Cluster struct {
	ID            string   `json:"id"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Count         int      `json:"count"`
	ExpansionZoom *float64 `json:"expansion_zoom,omitempty"`
}

// ClusterPage is the cluster endpoint's response.
type ClusterPage struct {
	Clusters []Cluster `json:"clusters"`
	Zoom     int       `json:"zoom"`
}

// Wire shapes for decoding the raw backend response.

type searchResponse struct {
	Results    []searchResult `json:"results"`
	Pagination Pagination     `json:"pagination"`
}

type searchResult struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Amendments   []string         `json:"amendments"`
	Participants []string         `json:"participants"`
	RecordedAt   string           `json:"recordedAt"`
	ThumbnailURL string           `json:"thumbnailUrl"`
	Locations    []resultLocation `json:"locations"`
}

type resultLocation struct {
	Coordinates struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coordinates"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
