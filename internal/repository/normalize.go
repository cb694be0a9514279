package repository

import (
	"github.com/Cheertaboi/clinic-fees-service/internal/logger"
	"github.com/Cheertaboi/clinic-fees-service/internal/models"
)

// normalizeItems drops records that break the price list invariants.
func normalizeItems(source string, items []models.PriceItem) []models.PriceItem {
	out := items[:0]
	for _, it := range items {
		if it.AmountInCents < 0 {
			logger.LogWarn("%s: dropping price item %s (%s) with negative amount %d", source, it.ID, it.SKU, it.AmountInCents)
			continue
		}
		if it.AgeRequirement == "" {
			it.AgeRequirement = models.AgeNoRequirement
		}
		out = append(out, it)
	}
	return out
}
