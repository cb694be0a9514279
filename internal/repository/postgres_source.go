package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Cheertaboi/clinic-fees-service/internal/models"
)

// PostgresSource reads a mirrored copy of the marketing price list.
type PostgresSource struct {
	db *sqlx.DB
}

func NewPostgresSource(db *sqlx.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

type priceItemRow struct {
	ID                   string         `db:"id"`
	SKU                  string         `db:"sku"`
	Name                 string         `db:"name"`
	Description          sql.NullString `db:"description"`
	MarketingDescription sql.NullString `db:"marketing_description"`
	AmountInCents        int64          `db:"amount_in_cents"`
	ItemCategory         string         `db:"item_category"`
	Membership           string         `db:"membership_requirement"`
	RequiresCSC          bool           `db:"requires_community_services_card"`
	AgeRequirement       sql.NullString `db:"age_requirement"`
	MarketingDuration    sql.NullInt64  `db:"marketing_duration"`
	LocationIDs          pq.StringArray `db:"enrolment_location_ids"`
}

func (r priceItemRow) toModel() models.PriceItem {
	it := models.PriceItem{
		ID:                            r.ID,
		SKU:                           r.SKU,
		Name:                          r.Name,
		Description:                   r.Description.String,
		MarketingDescription:          r.MarketingDescription.String,
		AmountInCents:                 r.AmountInCents,
		ItemCategory:                  models.ItemCategory(r.ItemCategory),
		MembershipRequirement:         models.MembershipRequirement(r.Membership),
		RequiresCommunityServicesCard: r.RequiresCSC,
		AgeRequirement:                models.AgeBracket(r.AgeRequirement.String),
		EnrolmentLocationIDs:          []string(r.LocationIDs),
	}
	if r.MarketingDuration.Valid && r.MarketingDuration.Int64 > 0 {
		d := int(r.MarketingDuration.Int64)
		it.MarketingDuration = &d
	}
	return it
}

const priceItemsQuery = `
	SELECT p.id, p.sku, p.name, p.description, p.marketing_description,
	       p.amount_in_cents, p.item_category, p.membership_requirement,
	       p.requires_community_services_card, p.age_requirement, p.marketing_duration,
	       COALESCE(
	           array_agg(l.enrolment_location_id ORDER BY l.enrolment_location_id)
	               FILTER (WHERE l.enrolment_location_id IS NOT NULL),
	           '{}'
	       ) AS enrolment_location_ids
	FROM price_items p
	LEFT JOIN price_item_locations l ON l.price_item_id = p.id
	GROUP BY p.id
	ORDER BY p.position, p.id
`

func (s *PostgresSource) GetPriceItems(ctx context.Context) ([]models.PriceItem, error) {
	var rows []priceItemRow
	if err := s.db.SelectContext(ctx, &rows, priceItemsQuery); err != nil {
		return nil, fmt.Errorf("select price items: %w", err)
	}

	items := make([]models.PriceItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.toModel())
	}
	return normalizeItems("postgres", items), nil
}

func (s *PostgresSource) GetLocations(ctx context.Context) ([]models.Location, error) {
	locations := []models.Location{}
	query := `SELECT id, name, region FROM locations ORDER BY id`
	if err := s.db.SelectContext(ctx, &locations, query); err != nil {
		return nil, fmt.Errorf("select locations: %w", err)
	}
	return locations, nil
}

func (s *PostgresSource) GetEnrolmentLocations(ctx context.Context) ([]models.EnrolmentLocation, error) {
	locations := []models.EnrolmentLocation{}
	query := `
		SELECT id, name, display_name, COALESCE(clinic_location_id, '') AS clinic_location_id
		FROM enrolment_locations
		ORDER BY id
	`
	if err := s.db.SelectContext(ctx, &locations, query); err != nil {
		return nil, fmt.Errorf("select enrolment locations: %w", err)
	}
	return locations, nil
}
