package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"toggl-reports/internal/domain"
	"toggl-reports/internal/report"
)

var (
	pdfHeaderColor = props.Color{Red: 50, Green: 50, Blue: 50}
	pdfMutedColor  = props.Color{Red: 120, Green: 120, Blue: 120}
	pdfLineColor   = props.Color{Red: 200, Green: 200, Blue: 200}
)

// Renderer implements ports.ReportRenderer: PDFs via maroto, CSV via the
// standard encoder. Company and handle appear in document headers only.
type Renderer struct {
	company string
	handle  string
}

func NewRenderer(company, handle string) *Renderer {
	return &Renderer{company: company, handle: handle}
}

// SummaryPDF renders the grouped totals as a one-table document.
func (r *Renderer) SummaryPDF(s report.Summary) ([]byte, error) {
	m := newDocument()
	r.addHeader(m, "Summary report", s.Period)

	m.AddRow(8,
		text.NewCol(7, "Project", props.Text{Style: fontstyle.Bold, Size: 10, Color: &pdfHeaderColor}),
		text.NewCol(3, "Duration", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: &pdfHeaderColor}),
		text.NewCol(2, "Entries", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: &pdfHeaderColor}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))

	for _, g := range s.Groups {
		m.AddRow(7,
			text.NewCol(7, g.Label, props.Text{Size: 10}),
			text.NewCol(3, FormatDuration(g.Total), props.Text{Size: 10, Align: align.Right}),
			text.NewCol(2, strconv.Itoa(g.EntryCount), props.Text{Size: 10, Align: align.Right}),
		)
	}

	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(10,
		text.NewCol(7, "Total", props.Text{Style: fontstyle.Bold, Size: 11, Color: &pdfHeaderColor}),
		text.NewCol(3, FormatDuration(s.Total), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: &pdfHeaderColor}),
		text.NewCol(2, strconv.Itoa(s.EntryCount()), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: &pdfHeaderColor}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render: summary pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// DetailedPDF renders every entry as one table line in start order.
func (r *Renderer) DetailedPDF(d report.Detailed) ([]byte, error) {
	m := newDocument()
	r.addHeader(m, "Time entries", d.Period)

	m.AddRow(8,
		text.NewCol(2, "Date", props.Text{Style: fontstyle.Bold, Size: 9, Color: &pdfHeaderColor}),
		text.NewCol(2, "Time", props.Text{Style: fontstyle.Bold, Size: 9, Color: &pdfHeaderColor}),
		text.NewCol(4, "Description", props.Text{Style: fontstyle.Bold, Size: 9, Color: &pdfHeaderColor}),
		text.NewCol(2, "Project", props.Text{Style: fontstyle.Bold, Size: 9, Color: &pdfHeaderColor}),
		text.NewCol(2, "Duration", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: &pdfHeaderColor}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))

	var total time.Duration
	for _, row := range d.Rows {
		total += row.Duration
		m.AddRow(6,
			text.NewCol(2, row.Start.Format("2006-01-02"), props.Text{Size: 8}),
			text.NewCol(2, fmt.Sprintf("%s - %s", row.Start.Format("15:04"), row.Stop.Format("15:04")), props.Text{Size: 8}),
			text.NewCol(4, row.Description, props.Text{Size: 8}),
			text.NewCol(2, row.Project, props.Text{Size: 8, Color: &pdfMutedColor}),
			text.NewCol(2, FormatDuration(row.Duration), props.Text{Size: 8, Align: align.Right}),
		)
	}

	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(10,
		text.NewCol(10, "Total", props.Text{Style: fontstyle.Bold, Size: 11, Color: &pdfHeaderColor}),
		text.NewCol(2, FormatDuration(total), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: &pdfHeaderColor}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("render: detailed pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()
	return maroto.New(cfg)
}

// addHeader writes the shared document header: title, period line, rule.
func (r *Renderer) addHeader(m core.Maroto, title string, period domain.Period) {
	m.AddRow(14,
		text.NewCol(12, title, props.Text{Style: fontstyle.Bold, Size: 16, Color: &pdfHeaderColor}),
	)
	caption := period.Start.Format("January 2006")
	if owner := r.owner(); owner != "" {
		caption = fmt.Sprintf("%s | %s", caption, owner)
	}
	m.AddRow(8,
		text.NewCol(12, caption, props.Text{Size: 12, Color: &pdfMutedColor}),
	)
	m.AddRow(4, line.NewCol(12, props.Line{Color: &pdfLineColor}))
	m.AddRow(4) // spacer
}

func (r *Renderer) owner() string {
	parts := make([]string, 0, 2)
	if r.company != "" {
		parts = append(parts, r.company)
	}
	if r.handle != "" {
		parts = append(parts, r.handle)
	}
	return strings.Join(parts, " / ")
}
