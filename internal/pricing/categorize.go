package pricing

import "github.com/Cheertaboi/clinic-fees-service/internal/models"

// RowKey groups items into one table row. Minutes is zero when the item has no duration.
type RowKey struct {
	Description string
	Minutes     int
}

func keyOf(it models.PriceItem) RowKey {
	return RowKey{Description: it.DisplayDescription(), Minutes: it.Duration()}
}

type slotKey struct {
	row RowKey
	age models.AgeBracket
}

func slotOf(it models.PriceItem) slotKey {
	return slotKey{row: keyOf(it), age: it.Age()}
}

// Categorized holds one location's items split by bucket.
type Categorized struct {
	Enrolled    []models.PriceItem
	EnrolledCSC []models.PriceItem
	Casual      []models.PriceItem
	Services    []models.PriceItem
	Dropped     []models.PriceItem

	// Synthesized counts the CSC entries cloned from non-CSC prices.
	Synthesized int
}

func (c Categorized) Bucket(b models.Bucket) []models.PriceItem {
	switch b {
	case models.BucketEnrolled:
		return c.Enrolled
	case models.BucketEnrolledCSC:
		return c.EnrolledCSC
	case models.BucketCasual:
		return c.Casual
	case models.BucketServices:
		return c.Services
	}
	return nil
}

// All flattens the buckets back into one list, dropped items excluded.
func (c Categorized) All() []models.PriceItem {
	out := make([]models.PriceItem, 0, len(c.Enrolled)+len(c.EnrolledCSC)+len(c.Casual)+len(c.Services))
	out = append(out, c.Enrolled...)
	out = append(out, c.EnrolledCSC...)
	out = append(out, c.Casual...)
	out = append(out, c.Services...)
	return out
}

func isConsultationLike(c models.ItemCategory) bool {
	return c == models.CategoryConsultation || c == models.CategoryRepeatPrescription
}

func enrolledOrOpen(m models.MembershipRequirement) bool {
	return m == models.MembershipEnrolled || m == models.MembershipNoRequirement
}

// Classify returns the bucket an item belongs to, or false when no bucket takes it.
func (p Policy) Classify(it models.PriceItem) (models.Bucket, bool) {
	csc := it.RequiresCommunityServicesCard

	switch {
	case it.MembershipRequirement == models.MembershipCasual &&
		it.ItemCategory == models.CategoryConsultation &&
		!(p.CasualExcludesCSC && csc):
		return models.BucketCasual, true
	case enrolledOrOpen(it.MembershipRequirement) && !csc && isConsultationLike(it.ItemCategory):
		return models.BucketEnrolled, true
	case it.MembershipRequirement == models.MembershipEnrolled && csc && isConsultationLike(it.ItemCategory):
		return models.BucketEnrolledCSC, true
	case it.ItemCategory == models.CategoryService && enrolledOrOpen(it.MembershipRequirement):
		return models.BucketServices, true
	}
	return "", false
}

// Categorize partitions one location's items into buckets and, when the policy asks for it,
// fills gaps in the CSC price list from the matching non-CSC prices.
func Categorize(items []models.PriceItem, p Policy) Categorized {
	var c Categorized
	for _, it := range items {
		b, ok := p.Classify(it)
		if !ok {
			c.Dropped = append(c.Dropped, it)
			continue
		}
		switch b {
		case models.BucketEnrolled:
			c.Enrolled = append(c.Enrolled, it)
		case models.BucketEnrolledCSC:
			c.EnrolledCSC = append(c.EnrolledCSC, it)
		case models.BucketCasual:
			c.Casual = append(c.Casual, it)
		case models.BucketServices:
			c.Services = append(c.Services, it)
		}
	}

	if p.SynthesizeCSC {
		extra := p.synthesizeCSC(c.Enrolled, c.EnrolledCSC)
		c.EnrolledCSC = append(c.EnrolledCSC, extra...)
		c.Synthesized = len(extra)
	}
	return c
}

func (p Policy) synthesizes(it models.PriceItem) bool {
	switch it.ItemCategory {
	case models.CategoryConsultation:
		return true
	case models.CategoryRepeatPrescription:
		return p.SynthesizeRepeatPrescriptions
	}
	return false
}

// synthesizeCSC clones non-CSC prices for every (row, age) slot the CSC list lacks. A slot
// without an exact non-CSC price borrows the row's NoRequirement price.
func (p Policy) synthesizeCSC(enrolled, csc []models.PriceItem) []models.PriceItem {
	sources := make(map[slotKey]models.PriceItem)
	ages := make(map[RowKey][]models.AgeBracket)
	var rows []RowKey

	for _, it := range enrolled {
		if !p.synthesizes(it) {
			continue
		}
		s := slotOf(it)
		if _, seen := ages[s.row]; !seen {
			rows = append(rows, s.row)
		}
		if _, seen := sources[s]; !seen {
			ages[s.row] = append(ages[s.row], s.age)
		}
		sources[s] = it
	}

	have := make(map[slotKey]bool, len(csc))
	for _, it := range csc {
		have[slotOf(it)] = true
	}

	var out []models.PriceItem
	for _, row := range rows {
		targets := append(append([]models.AgeBracket(nil), ages[row]...), p.CSCColumns...)
		for _, age := range targets {
			src, ok := sources[slotKey{row: row, age: age}]
			if !ok {
				src, ok = sources[slotKey{row: row, age: models.AgeNoRequirement}]
			}
			if !ok {
				continue
			}
			s := slotOf(src)
			if have[s] {
				continue
			}
			have[s] = true

			clone := src
			clone.RequiresCommunityServicesCard = true
			clone.MembershipRequirement = models.MembershipEnrolled
			clone.Synthesized = true
			clone.EnrolmentLocationIDs = append([]string(nil), src.EnrolmentLocationIDs...)
			out = append(out, clone)
		}
	}
	return out
}

// ItemsForLocation selects the items priced at one enrolment location.
func ItemsForLocation(items []models.PriceItem, locationID string) ([]models.PriceItem, bool) {
	var out []models.PriceItem
	for _, it := range items {
		for _, id := range it.EnrolmentLocationIDs {
			if id == locationID {
				out = append(out, it)
				break
			}
		}
	}
	return out, len(out) > 0
}
