package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Cheertaboi/clinic-fees-service/internal/models"
)

// APISource reads the price list from the marketing REST API.
type APISource struct {
	baseURL string
	client  *http.Client
}

func NewAPISource(baseURL string, client *http.Client) *APISource {
	if client == nil {
		client = http.DefaultClient
	}
	return &APISource{baseURL: baseURL, client: client}
}

type priceListResponse struct {
	Data struct {
		MarketingPriceList []models.PriceItem `json:"marketingPriceList"`
	} `json:"data"`
}

type locationsResponse struct {
	Data struct {
		MarketingLocations []models.Location `json:"marketingLocations"`
	} `json:"data"`
}

type enrolmentLocationsResponse struct {
	Data struct {
		MarketingEnrolmentLocations []models.EnrolmentLocation `json:"marketingEnrolmentLocations"`
	} `json:"data"`
}

func (s *APISource) GetPriceItems(ctx context.Context) ([]models.PriceItem, error) {
	var resp priceListResponse
	if err := s.getJSON(ctx, "/price-list", &resp); err != nil {
		return nil, err
	}
	return normalizeItems("price-list", resp.Data.MarketingPriceList), nil
}

func (s *APISource) GetLocations(ctx context.Context) ([]models.Location, error) {
	var resp locationsResponse
	if err := s.getJSON(ctx, "/locations", &resp); err != nil {
		return nil, err
	}
	return resp.Data.MarketingLocations, nil
}

func (s *APISource) GetEnrolmentLocations(ctx context.Context) ([]models.EnrolmentLocation, error) {
	var resp enrolmentLocationsResponse
	if err := s.getJSON(ctx, "/enrolment-locations", &resp); err != nil {
		return nil, err
	}
	return resp.Data.MarketingEnrolmentLocations, nil
}

func (s *APISource) getJSON(ctx context.Context, path string, v interface{}) error {
	url := s.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, res.Body)
		return fmt.Errorf("fetch %s: unexpected status %d", url, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
