package backend

import (
	"context"
	"net/http"
	"net/url"

	"medprep/internal/model"
)

// ListUniversities returns the universities offered for booking
func (c *Client) ListUniversities(ctx context.Context) ([]model.University, error) {
	var universities []model.University
	if err := c.get(ctx, "/universities", nil, &universities); err != nil {
		return nil, err
	}
	return universities, nil
}

// ListBookings returns every booking
func (c *Client) ListBookings(ctx context.Context) ([]model.Booking, error) {
	var bookings []model.Booking
	if err := c.get(ctx, "/bookings/all", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// CreateBooking records a paid booking
func (c *Client) CreateBooking(ctx context.Context, b model.Booking) (*model.Booking, error) {
	var out model.Booking
	if err := c.send(ctx, http.MethodPost, "/bookings", b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUserByEmail returns nil, nil when no user has that email
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := c.get(ctx, "/users/email/"+url.PathEscape(email), nil, &u); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser registers a customer
func (c *Client) CreateUser(ctx context.Context, u model.User) (*model.User, error) {
	var out model.User
	if err := c.send(ctx, http.MethodPost, "/users", u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
