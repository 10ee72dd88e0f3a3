// Package gateway pulls finished sensor packages from the tracker gateway.
package gateway

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sstent/workoutstats/internal/models"
)

type Client struct {
	http *resty.Client
}

// NewClient creates a gateway client for baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// FetchPackages retrieves up to limit collected packages.
func (c *Client) FetchPackages(ctx context.Context, limit int) ([]models.SensorPackage, error) {
	var packages []models.SensorPackage

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetResult(&packages).
		Get("/packages")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch packages: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode(), resp.String())
	}

	for i := range packages {
		if packages[i].Source == "" {
			packages[i].Source = "gateway"
		}
	}
	return packages, nil
}
