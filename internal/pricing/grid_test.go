package pricing

import (
	"reflect"
	"testing"

	"github.com/Cheertaboi/clinic-fees-service/internal/models"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		cents  int64
		format PriceFormat
		want   string
	}{
		{0, FormatShortest, "Free"},
		{0, FormatTwoDecimals, "Free"},
		{2000, FormatShortest, "$20"},
		{2000, FormatTwoDecimals, "$20"},
		{1550, FormatShortest, "$15.5"},
		{1550, FormatTwoDecimals, "$15.50"},
		{1999, FormatShortest, "$19.99"},
		{5, FormatShortest, "$0.05"},
	}
	for _, tt := range tests {
		if got := FormatPrice(tt.cents, tt.format); got != tt.want {
			t.Errorf("FormatPrice(%d, %d) = %q, want %q", tt.cents, tt.format, got, tt.want)
		}
	}
}

func columnAges(table models.TableModel) []models.AgeBracket {
	var ages []models.AgeBracket
	for _, c := range table.Columns {
		ages = append(ages, c.Age)
	}
	return ages
}

func cellLabels(row models.Row) []string {
	var out []string
	for _, c := range row.Cells {
		out = append(out, c.PriceLabel)
	}
	return out
}

func TestBuildTableGPVisitScenario(t *testing.T) {
	items := []models.PriceItem{
		item("child", "GP Visit", 15, models.AgeChildUnder14, 0, models.MembershipEnrolled, false, models.CategoryConsultation),
		item("all", "GP Visit", 15, models.AgeNoRequirement, 2000, models.MembershipEnrolled, false, models.CategoryConsultation),
	}

	for _, name := range []string{"standard", "age-banded"} {
		t.Run(name, func(t *testing.T) {
			p, _ := LookupPolicy(name)
			c := Categorize(items, p)
			table := BuildTable(c.Enrolled, models.BucketEnrolled, p)

			if len(table.Rows) != 1 {
				t.Fatalf("rows = %d, want 1", len(table.Rows))
			}
			row := table.Rows[0]
			if got := row.Label(); got != "GP Visit (15 mins)" {
				t.Errorf("row label = %q", got)
			}
			for i, col := range table.Columns {
				want := "$20"
				if col.Age == models.AgeChildUnder14 {
					want = "Free"
				}
				if row.Cells[i].PriceLabel != want {
					t.Errorf("column %s = %q, want %q", col.Age, row.Cells[i].PriceLabel, want)
				}
			}
			if table.Columns[0].Age != models.AgeChildUnder14 {
				t.Errorf("first column = %s, want ChildUnder14", table.Columns[0].Age)
			}
		})
	}
}

func TestBuildTableExactAgeBeatsNoRequirement(t *testing.T) {
	// NoRequirement listed first must not shadow the later exact price, and vice versa.
	orders := [][]models.PriceItem{
		{
			item("all", "GP Visit", 15, models.AgeNoRequirement, 2000, models.MembershipEnrolled, false, models.CategoryConsultation),
			item("young", "GP Visit", 15, models.AgeAdult18to24, 1200, models.MembershipEnrolled, false, models.CategoryConsultation),
		},
		{
			item("young", "GP Visit", 15, models.AgeAdult18to24, 1200, models.MembershipEnrolled, false, models.CategoryConsultation),
			item("all", "GP Visit", 15, models.AgeNoRequirement, 2000, models.MembershipEnrolled, false, models.CategoryConsultation),
		},
	}
	for _, items := range orders {
		table := BuildTable(items, models.BucketEnrolled, DefaultPolicy())
		want := []string{"$12", "$20"}
		if got := cellLabels(table.Rows[0]); !reflect.DeepEqual(got, want) {
			t.Errorf("cells = %v, want %v (columns %v)", got, want, columnAges(table))
		}
	}
}

func TestStandardColumnsCollision(t *testing.T) {
	items := []models.PriceItem{
		item("a", "GP Visit", 15, models.AgeAdult25to64, 3000, models.MembershipEnrolled, false, models.CategoryConsultation),
		item("b", "GP Visit", 15, models.AgeAdult25OrOver, 3000, models.MembershipEnrolled, false, models.CategoryConsultation),
		item("c", "GP Visit", 15, models.AgeAdult65OrOver, 1500, models.MembershipEnrolled, false, models.CategoryConsultation),
	}

	table := BuildTable(items, models.BucketEnrolled, DefaultPolicy())
	got := columnAges(table)
	want := []models.AgeBracket{models.AgeAdult25OrOver}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("columns = %v, want %v", got, want)
	}
	if table.Columns[0].Label != "25+ yrs" {
		t.Errorf("label = %q", table.Columns[0].Label)
	}
}

func TestStandardColumns(t *testing.T) {
	tests := []struct {
		name string
		ages []models.AgeBracket
		want []models.AgeBracket
	}{
		{
			name: "only no requirement defaults to 25+",
			ages: []models.AgeBracket{models.AgeNoRequirement},
			want: []models.AgeBracket{models.AgeAdult25OrOver},
		},
		{
			name: "narrow adult brackets kept",
			ages: []models.AgeBracket{models.AgeAdult65OrOver, models.AgeYouth14to17, models.AgeAdult25to64},
			want: []models.AgeBracket{models.AgeYouth14to17, models.AgeAdult25to64, models.AgeAdult65OrOver},
		},
		{
			name: "canonical order",
			ages: []models.AgeBracket{models.AgeAdult18to24, models.AgeChildUnder14, models.AgeAdult25OrOver},
			want: []models.AgeBracket{models.AgeChildUnder14, models.AgeAdult18to24, models.AgeAdult25OrOver},
		},
		{
			name: "65+ alone",
			ages: []models.AgeBracket{models.AgeAdult65OrOver},
			want: []models.AgeBracket{models.AgeAdult65OrOver},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var items []models.PriceItem
			for _, age := range tt.ages {
				items = append(items, models.PriceItem{AgeRequirement: age})
			}
			if got := StandardColumns(items); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("StandardColumns() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAgeBandedColumns(t *testing.T) {
	items := []models.PriceItem{
		{AgeRequirement: models.AgeAdult25to64},
		{AgeRequirement: models.AgeAdult65OrOver},
	}
	want := []models.AgeBracket{
		models.AgeChildUnder14, models.AgeYouth14to17, models.AgeAdult18to24, models.AgeAdult25to64,
	}
	if got := AgeBandedColumns(items); !reflect.DeepEqual(got, want) {
		t.Errorf("AgeBandedColumns() = %v, want %v", got, want)
	}

	want = []models.AgeBracket{
		models.AgeChildUnder14, models.AgeYouth14to17, models.AgeAdult18to24, models.AgeAdult25OrOver,
	}
	if got := AgeBandedColumns(nil); !reflect.DeepEqual(got, want) {
		t.Errorf("AgeBandedColumns(nil) = %v, want %v", got, want)
	}
}

func TestConsultationColumns(t *testing.T) {
	if got := ConsultationColumns([]models.PriceItem{{AgeRequirement: models.AgeNoRequirement}}); len(got) != 5 {
		t.Errorf("NoRequirement price should show all 5 brackets, got %v", got)
	}
	got := ConsultationColumns([]models.PriceItem{{AgeRequirement: models.AgeYouth14to17}})
	if !reflect.DeepEqual(got, []models.AgeBracket{models.AgeYouth14to17}) {
		t.Errorf("ConsultationColumns() = %v", got)
	}
}

func TestBuildTableCSCColumns(t *testing.T) {
	items := []models.PriceItem{
		item("y", "GP Visit", 15, models.AgeYouth14to17, 0, models.MembershipEnrolled, true, models.CategoryConsultation),
		item("a", "GP Visit", 15, models.AgeNoRequirement, 1950, models.MembershipEnrolled, true, models.CategoryConsultation),
	}
	table := BuildTable(items, models.BucketEnrolledCSC, DefaultPolicy())

	if len(table.Columns) != 2 {
		t.Fatalf("columns = %v", table.Columns)
	}
	if table.Columns[0].Label != "14-17 yrs" || table.Columns[1].Label != "18+ yrs" {
		t.Errorf("labels = %q, %q", table.Columns[0].Label, table.Columns[1].Label)
	}
	if got := cellLabels(table.Rows[0]); !reflect.DeepEqual(got, []string{"Free", "$19.5"}) {
		t.Errorf("cells = %v", got)
	}
}

func TestBuildTableSingleColumnBuckets(t *testing.T) {
	items := []models.PriceItem{
		item("c1", "Casual visit", 15, models.AgeChildUnder14, 0, models.MembershipCasual, false, models.CategoryConsultation),
		item("c2", "Casual visit", 15, models.AgeNoRequirement, 7500, models.MembershipCasual, false, models.CategoryConsultation),
		item("c3", "After hours", 0, models.AgeAdult18to24, 9000, models.MembershipCasual, false, models.CategoryConsultation),
	}
	for _, b := range []models.Bucket{models.BucketCasual, models.BucketServices} {
		table := BuildTable(items, b, DefaultPolicy())
		if len(table.Columns) != 1 || table.Columns[0].Label != "All Ages" {
			t.Fatalf("%s columns = %v", b, table.Columns)
		}
		if got := table.Rows[0].Cells[0].PriceLabel; got != "$75" {
			t.Errorf("%s NoRequirement row = %q, want $75", b, got)
		}
		if got := table.Rows[1].Cells[0].PriceLabel; got != "$90" {
			t.Errorf("%s single-item row = %q, want $90", b, got)
		}
		if table.Rows[1].DurationMinutes != nil {
			t.Errorf("%s row without duration got %d", b, *table.Rows[1].DurationMinutes)
		}
	}
}

func TestBuildTableGroupingKeyIsExact(t *testing.T) {
	items := []models.PriceItem{
		item("a", "Nurse visit", 15, models.AgeNoRequirement, 1000, models.MembershipEnrolled, false, models.CategoryConsultation),
		item("b", "Nurse Visit", 15, models.AgeNoRequirement, 1000, models.MembershipEnrolled, false, models.CategoryConsultation),
		item("c", "Nurse visit", 30, models.AgeNoRequirement, 1500, models.MembershipEnrolled, false, models.CategoryConsultation),
		item("d", "Nurse visit", 15, models.AgeChildUnder14, 0, models.MembershipEnrolled, false, models.CategoryConsultation),
	}
	table := BuildTable(items, models.BucketEnrolled, DefaultPolicy())

	var labels []string
	for _, r := range table.Rows {
		labels = append(labels, r.Label())
	}
	want := []string{"Nurse visit (15 mins)", "Nurse Visit (15 mins)", "Nurse visit (30 mins)"}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("rows = %v, want %v", labels, want)
	}
}

func TestBuildTableDescriptionFallback(t *testing.T) {
	it := item("a", "", 0, models.AgeNoRequirement, 1000, models.MembershipEnrolled, false, models.CategoryConsultation)
	it.Description = "Standard consult"
	table := BuildTable([]models.PriceItem{it}, models.BucketEnrolled, DefaultPolicy())
	if table.Rows[0].Description != "Standard consult" {
		t.Errorf("description = %q", table.Rows[0].Description)
	}
}

func TestBuildTableEmpty(t *testing.T) {
	table := BuildTable(nil, models.BucketEnrolled, DefaultPolicy())
	if len(table.Columns) != 0 || len(table.Rows) != 0 {
		t.Errorf("BuildTable(nil) = %+v", table)
	}
}

func TestBuildTablesSkipsEmptyBuckets(t *testing.T) {
	items := []models.PriceItem{
		item("a", "GP Visit", 15, models.AgeNoRequirement, 2000, models.MembershipEnrolled, false, models.CategoryConsultation),
		item("b", "Smear", 0, models.AgeNoRequirement, 0, models.MembershipEnrolled, false, models.CategoryService),
	}
	tables := BuildTables(items, DefaultPolicy())

	var got []models.Bucket
	for _, tbl := range tables {
		got = append(got, tbl.Bucket)
	}
	want := []models.Bucket{models.BucketEnrolled, models.BucketEnrolledCSC, models.BucketServices}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("buckets = %v, want %v", got, want)
	}
	if tables[1].Title != "Enrolled (CSC)" {
		t.Errorf("title = %q", tables[1].Title)
	}
}

func TestLookupPolicy(t *testing.T) {
	p, err := LookupPolicy("")
	if err != nil || p.Name != DefaultPolicyName {
		t.Errorf("LookupPolicy(\"\") = %q, %v", p.Name, err)
	}
	if _, err := LookupPolicy("nope"); err == nil {
		t.Error("LookupPolicy(nope) succeeded")
	}
	if got := PolicyNames(); !reflect.DeepEqual(got, []string{"age-banded", "consultations", "standard"}) {
		t.Errorf("PolicyNames() = %v", got)
	}
}
