// Package searchapi is the typed HTTP client for the platform's backend
// search service, the sole external collaborator of the map front end. The
// backend owns search, clustering, and geocoding; this package only builds
// queries, decodes responses, and reshapes results into view models.
package searchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const genericErrorMessage = "search request failed"

// Client calls the backend search API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// SearchVideos calls GET /search and transforms the response: results with
// zero locations are dropped, the first location's coordinates are flattened
// to the top level, and the participant list becomes a count.
func (c *Client) SearchVideos(ctx context.Context, p SearchParams) (*VideoPage, error) {
	q := url.Values{}
	if p.Bounds != nil {
		q.Set("bbox", p.Bounds.String())
	}
	setJoined(q, "amendments", p.Amendments)
	setJoined(q, "participants", p.Participants)
	if p.DateFrom != "" {
		q.Set("dateFrom", p.DateFrom)
	}
	if p.DateTo != "" {
		q.Set("dateTo", p.DateTo)
	}
	if p.Query != "" {
		q.Set("query", p.Query)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}

	var raw searchResponse
	if err := c.get(ctx, "/search", q, &raw); err != nil {
		return nil, err
	}

	page := &VideoPage{
		Videos:     make([]Video, 0, len(raw.Results)),
		Pagination: raw.Pagination,
	}
	for _, r := range raw.Results {
		if len(r.Locations) == 0 {
			continue
		}
		coords := r.Locations[0].Coordinates
		page.Videos = append(page.Videos, Video{
			ID:               r.ID,
			Title:            r.Title,
			Amendments:       r.Amendments,
			RecordedAt:       r.RecordedAt,
			ThumbnailURL:     r.ThumbnailURL,
			Latitude:         coords.Latitude,
			Longitude:        coords.Longitude,
			ParticipantCount: len(r.Participants),
		})
	}
	return page, nil
}

// SearchClusters calls GET /search/clusters.
func (c *Client) SearchClusters(ctx context.Context, p ClusterParams) (*ClusterPage, error) {
	q := url.Values{}
	if p.Bounds != nil {
		q.Set("bbox", p.Bounds.String())
	}
	setJoined(q, "amendments", p.Amendments)
	setJoined(q, "participants", p.Participants)
	if p.DateFrom != "" {
		q.Set("dateFrom", p.DateFrom)
	}
	if p.DateTo != "" {
		q.Set("dateTo", p.DateTo)
	}
	q.Set("zoom", strconv.Itoa(p.Zoom))

	var page ClusterPage
	if err := c.get(ctx, "/search/clusters", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// get issues the request and decodes a 2xx body into out. Non-2xx responses
// become an *Error with the server's message and status code when the body is
// structured, or the generic message otherwise. Requests that never complete
// become an *Error with StatusCode 0 wrapping the transport cause.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	reqURL := c.baseURL + path
	if encoded := q.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &Error{Message: genericErrorMessage, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Message: genericErrorMessage, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.responseError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Message: genericErrorMessage, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

func (c *Client) responseError(resp *http.Response) error {
	message := genericErrorMessage

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(body) > 0 {
		var structured errorResponse
		if jsonErr := json.Unmarshal(body, &structured); jsonErr == nil {
			if structured.Message != "" {
				message = structured.Message
			} else if structured.Error != "" {
				message = structured.Error
			}
		}
	}

	return &Error{
		Message:    message,
		StatusCode: resp.StatusCode,
		Err:        fmt.Errorf("server returned status %d", resp.StatusCode),
	}
}

// setJoined sets a comma-joined enum list parameter, omitting it when empty.
func setJoined(q url.Values, key string, values []string) {
	if len(values) == 0 {
		return
	}
	q.Set(key, strings.Join(values, ","))
}
