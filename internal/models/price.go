package models

type ItemCategory string

const (
	CategoryConsultation       ItemCategory = "Consultation"
	CategoryRepeatPrescription ItemCategory = "RepeatPrescription"
	CategoryService            ItemCategory = "Service"
)

type MembershipRequirement string

const (
	MembershipEnrolled      MembershipRequirement = "ENROLLED"
	MembershipCasual        MembershipRequirement = "CASUAL"
	MembershipNoRequirement MembershipRequirement = "NO_REQUIREMENT"
)

// AgeBracket is the age eligibility tag attached to a price.
type AgeBracket string

const (
	AgeChild4        AgeBracket = "Child4"
	AgeChildUnder14  AgeBracket = "ChildUnder14"
	AgeYouth14to17   AgeBracket = "Youth14to17"
	AgeYouth16to18   AgeBracket = "Youth16to18"
	AgeUnder18       AgeBracket = "Under18"
	AgeAdult18to24   AgeBracket = "Adult18to24"
	AgeAdult18OrOver AgeBracket = "Adult18OrOver"
	AgeAdult25OrOver AgeBracket = "Adult25OrOver"
	AgeAdult25to64   AgeBracket = "Adult25to64"
	AgeAdult25to44   AgeBracket = "Adult25to44"
	AgeAdult45to64   AgeBracket = "Adult45to64"
	AgeAdult65OrOver AgeBracket = "Adult65OrOver"
	AgeNoRequirement AgeBracket = "NoRequirement"

	// AgeAllAges is the single column of tables that are not split by age.
	AgeAllAges AgeBracket = "AllAges"
)

type PriceItem struct {
	ID                            string                `json:"id"`
	SKU                           string                `json:"sku"`
	Name                          string                `json:"name"`
	MarketingDescription          string                `json:"marketingDescription,omitempty"`
	Description                   string                `json:"description,omitempty"`
	AmountInCents                 int64                 `json:"amountInCents"`
	ItemCategory                  ItemCategory          `json:"itemCategory"`
	MembershipRequirement         MembershipRequirement `json:"membershipRequirement"`
	RequiresCommunityServicesCard bool                  `json:"requiresCommunityServicesCard"`
	AgeRequirement                AgeBracket            `json:"ageRequirement"`
	MarketingDuration             *int                  `json:"marketingDuration,omitempty"`
	EnrolmentLocationIDs          []string              `json:"enrolmentLocationIds"`

	// Synthesized marks CSC entries cloned from a non-CSC price.
	Synthesized bool `json:"synthesized,omitempty"`
}

// DisplayDescription prefers the marketing copy over the internal description.
func (p PriceItem) DisplayDescription() string {
	if p.MarketingDescription != "" {
		return p.MarketingDescription
	}
	return p.Description
}

// Duration returns the marketing duration in minutes, or 0 when none is set.
func (p PriceItem) Duration() int {
	if p.MarketingDuration == nil || *p.MarketingDuration <= 0 {
		return 0
	}
	return *p.MarketingDuration
}

// Age treats an empty age tag as NoRequirement.
func (p PriceItem) Age() AgeBracket {
	if p.AgeRequirement == "" {
		return AgeNoRequirement
	}
	return p.AgeRequirement
}
