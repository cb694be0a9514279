package models

import "strconv"

// Bucket is one membership pricing tier.
type Bucket string

const (
	BucketEnrolled    Bucket = "enrolled"
	BucketEnrolledCSC Bucket = "csc"
	BucketCasual      Bucket = "casual"
	BucketServices    Bucket = "services"
)

// Buckets lists the tiers in display order.
var Buckets = []Bucket{BucketEnrolled, BucketEnrolledCSC, BucketCasual, BucketServices}

func (b Bucket) Title() string {
	switch b {
	case BucketEnrolled:
		return "Enrolled"
	case BucketEnrolledCSC:
		return "Enrolled (CSC)"
	case BucketCasual:
		return "Casual"
	case BucketServices:
		return "Services"
	}
	return string(b)
}

// AgePartitioned reports whether the bucket gets one column per age bracket.
func (b Bucket) AgePartitioned() bool {
	return b == BucketEnrolled || b == BucketEnrolledCSC
}

const (
	PriceFree         = "Free"
	PriceNotAvailable = "N/A"
)

type Column struct {
	Age   AgeBracket `json:"age"`
	Label string     `json:"label"`
}

type Cell struct {
	PriceLabel string `json:"priceLabel"`
}

type Row struct {
	Description     string `json:"description"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"`
	Cells           []Cell `json:"cells"`
}

// Label is the row heading, e.g. "GP Visit (15 mins)".
func (r Row) Label() string {
	if r.DurationMinutes == nil || *r.DurationMinutes <= 0 {
		return r.Description
	}
	return r.Description + " (" + strconv.Itoa(*r.DurationMinutes) + " mins)"
}

// TableModel is positional: Rows[i].Cells[j] belongs to Columns[j].
type TableModel struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

type BucketTable struct {
	Bucket Bucket     `json:"bucket"`
	Title  string     `json:"title"`
	Table  TableModel `json:"table"`
}

type LocationTables struct {
	BuildID      string        `json:"buildId"`
	LocationID   string        `json:"locationId"`
	LocationName string        `json:"locationName"`
	Policy       string        `json:"policy"`
	Tables       []BucketTable `json:"tables"`
}
