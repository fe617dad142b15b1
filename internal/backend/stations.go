package backend

import (
	"context"
	"net/http"
	"net/url"

	"medprep/internal/model"
)

const stationsPath = "/prometheus/university-stations"

// ListStations returns every university's station configuration
func (c *Client) ListStations(ctx context.Context) ([]model.UniversityStations, error) {
	var out []model.UniversityStations
	if err := c.get(ctx, stationsPath, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetStation returns one station configuration, or nil, nil if unknown
func (c *Client) GetStation(ctx context.Context, id string) (*model.UniversityStations, error) {
	var out model.UniversityStations
	if err := c.get(ctx, stationsPath+"/"+url.PathEscape(id), nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateStation(ctx context.Context, s model.UniversityStations) (*model.UniversityStations, error) {
	var out model.UniversityStations
	if err := c.send(ctx, http.MethodPost, stationsPath, s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateStation(ctx context.Context, id string, s model.UniversityStations) (*model.UniversityStations, error) {
	var out model.UniversityStations
	if err := c.send(ctx, http.MethodPut, stationsPath+"/"+url.PathEscape(id), s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteStation(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, stationsPath+"/"+url.PathEscape(id), nil, nil)
}
