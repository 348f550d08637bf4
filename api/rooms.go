package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Room is a listing a provider has put up for booking. Price is the
// backend's decimal string, passed through unparsed.
type Room struct {
	ID          int64  `json:"id"`
	ProviderID  int64  `json:"provider_id"`
	HostelName  string `json:"hostel_name"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	Price       string `json:"price"`
	Available   bool   `json:"available"`
}

// RoomFilter narrows a room listing. Zero values mean no constraint.
type RoomFilter struct {
	Location string
	MaxPrice string
	Capacity int
}

// ListRooms returns rooms matching the filter.
func (c *Client) ListRooms(ctx context.Context, filter RoomFilter) ([]Room, error) {
	query := url.Values{}
	if filter.Location != "" {
		query.Set("location", filter.Location)
	}
	if filter.MaxPrice != "" {
		query.Set("max_price", filter.MaxPrice)
	}
	if filter.Capacity > 0 {
		query.Set("capacity", strconv.Itoa(filter.Capacity))
	}

	path := "/rooms/"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var out []Room
	if err := c.do(ctx, http.MethodGet, path, nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// Room fetches a single room by ID.
func (c *Client) Room(ctx context.Context, id int64) (*Room, error) {
	var out Room
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/rooms/%d/", id), nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
