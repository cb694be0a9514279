package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Cheertaboi/clinic-fees-service/internal/cache"
	"github.com/Cheertaboi/clinic-fees-service/internal/concurrency"
	"github.com/Cheertaboi/clinic-fees-service/internal/logger"
	"github.com/Cheertaboi/clinic-fees-service/internal/models"
	"github.com/Cheertaboi/clinic-fees-service/internal/pricing"
)

var (
	ErrNoData           = errors.New("no price data")
	ErrLocationNotFound = errors.New("no data for location")
)

// PriceSource supplies the reference data (use an interface to allow fakes in tests).
type PriceSource interface {
	GetPriceItems(ctx context.Context) ([]models.PriceItem, error)
	GetLocations(ctx context.Context) ([]models.Location, error)
	GetEnrolmentLocations(ctx context.Context) ([]models.EnrolmentLocation, error)
}

// Snapshot is one complete fetch of the reference data.
type Snapshot struct {
	Items              []models.PriceItem
	Locations          []models.Location
	EnrolmentLocations []models.EnrolmentLocation
}

func (s *Snapshot) LocationMap() models.LocationMap {
	return models.BuildLocationMap(s.Locations, s.EnrolmentLocations)
}

type PricingService struct {
	source       PriceSource
	policy       pricing.Policy
	fetchTimeout time.Duration
	selections   *cache.SelectionCache
}

func NewPricingService(source PriceSource, policy pricing.Policy, fetchTimeout time.Duration) *PricingService {
	return &PricingService{
		source:       source,
		policy:       policy,
		fetchTimeout: fetchTimeout,
		selections:   cache.NewSelectionCache(),
	}
}

// Fetch loads the price list and both location lists concurrently. Nothing is returned unless all
// three succeed.
func (s *PricingService) Fetch(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	err := concurrency.Join(ctx, s.fetchTimeout,
		func(ctx context.Context) (err error) {
			snap.Items, err = s.source.GetPriceItems(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			snap.Locations, err = s.source.GetLocations(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			snap.EnrolmentLocations, err = s.source.GetEnrolmentLocations(ctx)
			return err
		},
	)
	if err != nil {
		logger.LogWarn("Fetching price data failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	return &snap, nil
}

// BuildLocationTables runs a full fetch and rebuilds every pricing table of one location. A newer
// build for the same viewer cancels this one.
func (s *PricingService) BuildLocationTables(ctx context.Context, viewer, locationID, policyName string) (*models.LocationTables, error) {
	policy := s.policy
	if policyName != "" {
		p, err := pricing.LookupPolicy(policyName)
		if err != nil {
			return nil, err
		}
		policy = p
	}

	ctx, release := s.selections.Begin(ctx, viewer)
	defer release()

	buildID := uuid.NewString()

	snap, err := s.Fetch(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("build %s for location %s: %w", buildID, locationID, ctxErr)
		}
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("build %s for location %s: %w", buildID, locationID, err)
	}

	items, ok := pricing.ItemsForLocation(snap.Items, locationID)
	if !ok {
		logger.LogWarn("No data found for location ID: %s", locationID)
		return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, locationID)
	}

	tables := pricing.BuildTables(items, policy)
	locName := snap.LocationMap().Name(locationID)
	logger.LogInfo("Build %s: %d tables for %s (%s) using policy %s", buildID, len(tables), locationID, locName, policy.Name)

	return &models.LocationTables{
		BuildID:      buildID,
		LocationID:   locationID,
		LocationName: locName,
		Policy:       policy.Name,
		Tables:       tables,
	}, nil
}

// ListLocations returns the location picker entries sorted by region, then name.
func (s *PricingService) ListLocations(ctx context.Context) ([]models.LocationOption, error) {
	var (
		locations []models.Location
		enrolment []models.EnrolmentLocation
	)
	err := concurrency.Join(ctx, s.fetchTimeout,
		func(ctx context.Context) (err error) {
			locations, err = s.source.GetLocations(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			enrolment, err = s.source.GetEnrolmentLocations(ctx)
			return err
		},
	)
	if err != nil {
		logger.LogWarn("Fetching locations failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}

	return LocationOptions(locations, enrolment), nil
}

// LocationOptions pairs each enrolment location with its clinic's region.
func LocationOptions(locations []models.Location, enrolment []models.EnrolmentLocation) []models.LocationOption {
	regions := make(map[string]string, len(locations))
	for _, loc := range locations {
		regions[loc.ID] = loc.Region
	}

	options := make([]models.LocationOption, 0, len(enrolment))
	for _, el := range enrolment {
		region := models.FormatRegionName(regions[el.ClinicLocationID])
		options = append(options, models.LocationOption{
			ID:     el.ID,
			Label:  el.Label(regions[el.ClinicLocationID]),
			Region: region,
			Name:   el.DisplayLabel(),
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		ri, rj := strings.ToUpper(options[i].Region), strings.ToUpper(options[j].Region)
		if ri != rj {
			return ri < rj
		}
		return strings.ToUpper(options[i].Name) < strings.ToUpper(options[j].Name)
	})
	return options
}
