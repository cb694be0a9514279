package render

import (
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/Cheertaboi/clinic-fees-service/internal/models"
)

var tablesTmpl = template.Must(template.New("tables").Parse(`
{{- range .Tables}}<section class="clinics-pricing-wrapper {{.Bucket}}" data-location="{{$.LocationID}}">
<h3 class="pricing-title">{{.Title}}</h3>
<div class="{{.Class}}">
<div class="flex-row header"><div class="{{.HeaderFirst}}">Service</div>
{{- range .Header}}<div class="{{.Class}}">{{.Label}}</div>{{end -}}
</div>
{{- range .Rows}}
<div class="{{.Class}}"><div class="{{.FirstClass}}">{{.Description}} <span class="text-size-regular text-color-grey">{{.Duration}}</span></div>
{{- range .Cells}}<div class="{{.Class}}">{{.Price}}</div>{{end -}}
</div>
{{- end}}
</div>
</section>
{{end -}}
`))

type headerCell struct {
	Label string
	Class string
}

type bodyCell struct {
	Price string
	Class string
}

type bodyRow struct {
	Class       string
	FirstClass  string
	Description string
	Duration    string
	Cells       []bodyCell
}

type tableView struct {
	Bucket      models.Bucket
	Title       string
	Class       string
	HeaderFirst string
	Header      []headerCell
	Rows        []bodyRow
}

type pageView struct {
	LocationID string
	Tables     []tableView
}

func classes(parts ...string) string {
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func when(cond bool, class string) string {
	if cond {
		return class
	}
	return ""
}

// Tables writes every table of a location as flex-table markup.
func Tables(w io.Writer, lt *models.LocationTables) error {
	page := pageView{LocationID: lt.LocationID}
	for _, bt := range lt.Tables {
		page.Tables = append(page.Tables, view(bt))
	}
	return tablesTmpl.Execute(w, page)
}

func view(bt models.BucketTable) tableView {
	csc := bt.Bucket == models.BucketEnrolledCSC
	narrow := !bt.Bucket.AgePartitioned() || csc
	cscWidth := when(csc, "csc-max-width")

	tv := tableView{
		Bucket:      bt.Bucket,
		Title:       bt.Title,
		Class:       classes("flex-table", when(narrow, "width-auto")),
		HeaderFirst: "flex-cell header-first heading-style-h6 text-color-purple",
	}

	cols := bt.Table.Columns
	lastCol := len(cols) - 1
	for i, c := range cols {
		tv.Header = append(tv.Header, headerCell{
			Label: c.Label,
			Class: classes("flex-cell header-age heading-style-h6 text-color-purple",
				when(i == 0, "start"), when(i == lastCol, "rounded-top-right last"), cscWidth),
		})
	}

	rows := bt.Table.Rows
	lastRow := len(rows) - 1
	for r, row := range rows {
		first, last, only := r == 0, r == lastRow, len(rows) == 1

		rowClass := ""
		switch {
		case only:
			rowClass = "end first"
		case last:
			rowClass = "end"
		case first:
			rowClass = "first"
		}

		firstCell := ""
		switch {
		case last:
			firstCell = "start rounded-bottom-left"
		case first:
			firstCell = "start"
		}

		br := bodyRow{
			Class:       classes("flex-row", rowClass),
			FirstClass:  classes("flex-cell first", firstCell),
			Description: row.Description,
		}
		if row.DurationMinutes != nil && *row.DurationMinutes > 0 {
			br.Duration = "(" + strconv.Itoa(*row.DurationMinutes) + " mins)"
		}
		for i, cell := range row.Cells {
			br.Cells = append(br.Cells, bodyCell{
				Price: cell.PriceLabel,
				Class: classes("flex-cell price text-size-regular",
					when(first, "first"), when(i == 0, "start"), when(i == lastCol, "last"),
					when(last, "end"), when(last && i == lastCol, "rounded-bottom-right"), cscWidth),
			})
		}
		tv.Rows = append(tv.Rows, br)
	}
	return tv
}
