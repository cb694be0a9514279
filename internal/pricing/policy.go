package pricing

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Cheertaboi/clinic-fees-service/internal/models"
)

// DefaultPolicyName is used when no policy is configured.
const DefaultPolicyName = "standard"

var ErrUnknownPolicy = errors.New("unknown pricing policy")

type PriceFormat int

const (
	// FormatShortest prints "$15.5" for 1550 cents.
	FormatShortest PriceFormat = iota
	// FormatTwoDecimals prints "$15.50" for 1550 cents.
	FormatTwoDecimals
)

// ColumnStrategy picks the age columns of the Enrolled table from the bucket's items.
type ColumnStrategy func(items []models.PriceItem) []models.AgeBracket

// Policy is one named rule set for categorizing and laying out a price list.
type Policy struct {
	Name string

	CasualExcludesCSC             bool
	SynthesizeCSC                 bool
	SynthesizeRepeatPrescriptions bool

	EnrolledColumns ColumnStrategy
	// CSCColumns, when set, are the fixed columns of the CSC table.
	CSCColumns []models.AgeBracket

	AgeLabels             map[models.AgeBracket]string
	CSCNoRequirementLabel string
	PriceFormat           PriceFormat
}

var defaultAgeLabels = map[models.AgeBracket]string{
	models.AgeChild4:        "4 yrs",
	models.AgeChildUnder14:  "Under 14 yrs",
	models.AgeYouth14to17:   "14-17 yrs",
	models.AgeYouth16to18:   "16-18 yrs",
	models.AgeUnder18:       "Under 18 yrs",
	models.AgeAdult18to24:   "18-24 yrs",
	models.AgeAdult18OrOver: "18+ yrs",
	models.AgeAdult25OrOver: "25+ yrs",
	models.AgeAdult25to64:   "25-64 yrs",
	models.AgeAdult25to44:   "25-44 yrs",
	models.AgeAdult45to64:   "45-64 yrs",
	models.AgeAdult65OrOver: "65+ yrs",
	models.AgeNoRequirement: "All Ages",
}

var cscColumns = []models.AgeBracket{models.AgeYouth14to17, models.AgeNoRequirement}

var policies = map[string]Policy{
	"standard": {
		Name:                          "standard",
		CasualExcludesCSC:             true,
		SynthesizeCSC:                 true,
		SynthesizeRepeatPrescriptions: true,
		EnrolledColumns:               StandardColumns,
		CSCColumns:                    cscColumns,
		AgeLabels:                     defaultAgeLabels,
		CSCNoRequirementLabel:         "18+ yrs",
		PriceFormat:                   FormatShortest,
	},
	"age-banded": {
		Name:                          "age-banded",
		CasualExcludesCSC:             false,
		SynthesizeCSC:                 true,
		SynthesizeRepeatPrescriptions: false,
		EnrolledColumns:               AgeBandedColumns,
		AgeLabels:                     defaultAgeLabels,
		CSCNoRequirementLabel:         "18+ yrs",
		PriceFormat:                   FormatShortest,
	},
	"consultations": {
		Name:                  "consultations",
		CasualExcludesCSC:     false,
		SynthesizeCSC:         false,
		EnrolledColumns:       ConsultationColumns,
		CSCColumns:            cscColumns,
		AgeLabels:             defaultAgeLabels,
		CSCNoRequirementLabel: "18+ yrs",
		PriceFormat:           FormatTwoDecimals,
	},
}

// LookupPolicy returns the named policy. An empty name selects the default.
func LookupPolicy(name string) (Policy, error) {
	if name == "" {
		name = DefaultPolicyName
	}
	p, ok := policies[name]
	if !ok {
		return Policy{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
	return p, nil
}

func DefaultPolicy() Policy {
	return policies[DefaultPolicyName]
}

func PolicyNames() []string {
	names := make([]string, 0, len(policies))
	for name := range policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Label is the column heading for age in the given bucket.
func (p Policy) Label(bucket models.Bucket, age models.AgeBracket) string {
	if age == models.AgeAllAges {
		return "All Ages"
	}
	if bucket == models.BucketEnrolledCSC && age == models.AgeNoRequirement && p.CSCNoRequirementLabel != "" {
		return p.CSCNoRequirementLabel
	}
	if label, ok := p.AgeLabels[age]; ok {
		return label
	}
	return string(age)
}

// Columns returns the visible age brackets of a bucket's table.
func (p Policy) Columns(bucket models.Bucket, items []models.PriceItem) []models.AgeBracket {
	if !bucket.AgePartitioned() {
		return []models.AgeBracket{models.AgeAllAges}
	}
	if bucket == models.BucketEnrolledCSC && len(p.CSCColumns) > 0 {
		return append([]models.AgeBracket(nil), p.CSCColumns...)
	}
	if p.EnrolledColumns == nil {
		return StandardColumns(items)
	}
	return p.EnrolledColumns(items)
}

var (
	baseBrackets     = []models.AgeBracket{models.AgeChildUnder14, models.AgeYouth14to17, models.AgeAdult18to24}
	extendedBrackets = []models.AgeBracket{models.AgeAdult25to64, models.AgeAdult65OrOver, models.AgeAdult25OrOver}
)

func presentAges(items []models.PriceItem) map[models.AgeBracket]bool {
	present := make(map[models.AgeBracket]bool)
	for _, it := range items {
		present[it.Age()] = true
	}
	return present
}

// StandardColumns keeps only brackets some item carries. A "25-64" and "25+" pair collapses to
// the broad "25+" column and hides "65+"; with no adult bracket at all "25+" is shown alone.
func StandardColumns(items []models.PriceItem) []models.AgeBracket {
	present := presentAges(items)

	var cols []models.AgeBracket
	for _, age := range baseBrackets {
		if present[age] {
			cols = append(cols, age)
		}
	}

	has2564 := present[models.AgeAdult25to64]
	has25Plus := present[models.AgeAdult25OrOver]
	has65Plus := present[models.AgeAdult65OrOver]

	switch {
	case has2564 && has25Plus:
		cols = append(cols, models.AgeAdult25OrOver)
	case !has2564 && !has25Plus && !has65Plus:
		cols = append(cols, models.AgeAdult25OrOver)
	default:
		for _, age := range extendedBrackets {
			if present[age] {
				cols = append(cols, age)
			}
		}
	}
	return cols
}

// AgeBandedColumns always shows the child, youth and 18-24 columns and drops "65+" as soon as
// either 25 bracket is present.
func AgeBandedColumns(items []models.PriceItem) []models.AgeBracket {
	present := presentAges(items)

	var extended []models.AgeBracket
	for _, age := range extendedBrackets {
		if present[age] {
			extended = append(extended, age)
		}
	}
	if present[models.AgeAdult25to64] || present[models.AgeAdult25OrOver] {
		kept := extended[:0]
		for _, age := range extended {
			if age != models.AgeAdult65OrOver {
				kept = append(kept, age)
			}
		}
		extended = kept
	}
	if len(extended) == 0 {
		extended = []models.AgeBracket{models.AgeAdult25OrOver}
	}

	cols := append([]models.AgeBracket(nil), baseBrackets...)
	return append(cols, extended...)
}

// ConsultationColumns shows every bracket from under 14 to 65+ that has a price, or all of them
// when any price applies to all ages.
func ConsultationColumns(items []models.PriceItem) []models.AgeBracket {
	present := presentAges(items)
	all := present[models.AgeNoRequirement]

	var cols []models.AgeBracket
	for _, age := range []models.AgeBracket{
		models.AgeChildUnder14,
		models.AgeYouth14to17,
		models.AgeAdult18to24,
		models.AgeAdult25to64,
		models.AgeAdult65OrOver,
	} {
		if all || present[age] {
			cols = append(cols, age)
		}
	}
	if len(cols) == 0 {
		cols = append(cols, models.AgeNoRequirement)
	}
	return cols
}
