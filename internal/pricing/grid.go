package pricing

import (
	"strconv"

	"github.com/Cheertaboi/clinic-fees-service/internal/models"
)

// FormatPrice renders an amount in cents as a price cell label.
func FormatPrice(cents int64, f PriceFormat) string {
	if cents == 0 {
		return models.PriceFree
	}
	if cents%100 == 0 {
		return "$" + strconv.FormatInt(cents/100, 10)
	}
	prec := -1
	if f == FormatTwoDecimals {
		prec = 2
	}
	return "$" + strconv.FormatFloat(float64(cents)/100, 'f', prec, 64)
}

type rowGroup struct {
	key   RowKey
	first models.PriceItem
	byAge map[models.AgeBracket]models.PriceItem
}

func groupRows(items []models.PriceItem) []*rowGroup {
	index := make(map[RowKey]*rowGroup)
	var groups []*rowGroup
	for _, it := range items {
		k := keyOf(it)
		g, ok := index[k]
		if !ok {
			g = &rowGroup{key: k, first: it, byAge: make(map[models.AgeBracket]models.PriceItem)}
			index[k] = g
			groups = append(groups, g)
		}
		g.byAge[it.Age()] = it
	}
	return groups
}

// resolve picks the item priced in one cell. Age-split tables take the exact bracket first and
// the row's NoRequirement price second; single-column tables take NoRequirement or the first item.
func (g *rowGroup) resolve(age models.AgeBracket, partitioned bool) (models.PriceItem, bool) {
	if partitioned {
		if it, ok := g.byAge[age]; ok {
			return it, true
		}
		it, ok := g.byAge[models.AgeNoRequirement]
		return it, ok
	}
	if it, ok := g.byAge[models.AgeNoRequirement]; ok {
		return it, true
	}
	return g.byAge[g.first.Age()], true
}

// BuildTable lays out one bucket's items as rows of (description, duration) and columns of age
// brackets. An empty bucket yields an empty table.
func BuildTable(items []models.PriceItem, bucket models.Bucket, p Policy) models.TableModel {
	if len(items) == 0 {
		return models.TableModel{}
	}

	ages := p.Columns(bucket, items)
	table := models.TableModel{Columns: make([]models.Column, len(ages))}
	for i, age := range ages {
		table.Columns[i] = models.Column{Age: age, Label: p.Label(bucket, age)}
	}

	partitioned := bucket.AgePartitioned()
	for _, g := range groupRows(items) {
		row := models.Row{Description: g.key.Description, Cells: make([]models.Cell, len(ages))}
		if g.key.Minutes > 0 {
			minutes := g.key.Minutes
			row.DurationMinutes = &minutes
		}
		for i, age := range ages {
			label := models.PriceNotAvailable
			if it, ok := g.resolve(age, partitioned); ok {
				label = FormatPrice(it.AmountInCents, p.PriceFormat)
			}
			row.Cells[i] = models.Cell{PriceLabel: label}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// BuildTables categorizes one location's items and builds a table for every non-empty bucket.
func BuildTables(items []models.PriceItem, p Policy) []models.BucketTable {
	c := Categorize(items, p)
	var tables []models.BucketTable
	for _, b := range models.Buckets {
		bucketItems := c.Bucket(b)
		if len(bucketItems) == 0 {
			continue
		}
		tables = append(tables, models.BucketTable{
			Bucket: b,
			Title:  b.Title(),
			Table:  BuildTable(bucketItems, b, p),
		})
	}
	return tables
}
