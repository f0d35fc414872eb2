package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ServiceOrderExport feeds the service order PDF document.
type ServiceOrderExport struct {
	OrderNumber   string
	Title         string
	ClientName    string
	SiteAddress   string
	ServiceType   string
	ScheduledDate string
	AssignedTo    string
	Lines         []BOMLine
	Totals        BOMTotals
	Notes         string
}

// GenerateServiceOrderPDF renders a service order document and returns the
// raw PDF bytes.
func GenerateServiceOrderPDF(data *ServiceOrderExport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addOrderHeader(m, data)
	addClientBlock(m, data)
	addBOMTable(m, data)
	addOrderTotals(m, data)
	addOrderNotes(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate service order PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addOrderHeader(m core.Maroto, data *ServiceOrderExport) {
	m.AddRows(
		row.New(10).Add(
			col.New(8).Add(text.New(data.Title, props.Text{
				Size:  14,
				Style: fontstyle.Bold,
			})),
			col.New(4).Add(text.New("SERVICE ORDER", props.Text{
				Size:  12,
				Style: fontstyle.Bold,
				Align: align.Right,
			})),
		),
		row.New(6).Add(
			col.New(8).Add(text.New("Type: "+data.ServiceType, props.Text{Size: 9})),
			col.New(4).Add(text.New("No: "+data.OrderNumber, props.Text{
				Size:  9,
				Align: align.Right,
			})),
		),
	)
}

func addClientBlock(m core.Maroto, data *ServiceOrderExport) {
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("Client: "+data.ClientName, props.Text{Size: 9})),
		),
		row.New(6).Add(
			col.New(8).Add(text.New("Site: "+data.SiteAddress, props.Text{Size: 9})),
			col.New(4).Add(text.New("Scheduled: "+data.ScheduledDate, props.Text{
				Size:  9,
				Align: align.Right,
			})),
		),
		row.New(6).Add(
			col.New(12).Add(text.New("Assigned to: "+data.AssignedTo, props.Text{Size: 9})),
		),
	)
}

func addBOMTable(m core.Maroto, data *ServiceOrderExport) {
	m.AddRows(row.New(8).Add(
		col.New(5).Add(text.New("Item", props.Text{Size: 9, Style: fontstyle.Bold})),
		col.New(2).Add(text.New("UoM", props.Text{Size: 9, Style: fontstyle.Bold})),
		col.New(1).Add(text.New("Qty", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New("Rate", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New("Total", props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right})),
	))

	for _, line := range data.Lines {
		qty, rate, total := "-", "-", "-"
		if line.Quantity != nil {
			qty = fmt.Sprintf("%g", *line.Quantity)
		}
		if line.Rate != nil {
			rate = FormatKES(*line.Rate)
		}
		if line.Total != nil {
			total = FormatKES(*line.Total)
		}
		m.AddRows(row.New(6).Add(
			col.New(5).Add(text.New(line.ItemName, props.Text{Size: 8})),
			col.New(2).Add(text.New(line.UnitOfMeasure, props.Text{Size: 8})),
			col.New(1).Add(text.New(qty, props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(rate, props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(total, props.Text{Size: 8, Align: align.Right})),
		))
	}
}

func addOrderTotals(m core.Maroto, data *ServiceOrderExport) {
	m.AddRows(row.New(8).Add(
		col.New(10).Add(text.New("Subtotal", props.Text{
			Size:  9,
			Style: fontstyle.Bold,
			Align: align.Right,
		})),
		col.New(2).Add(text.New(FormatKES(data.Totals.Subtotal), props.Text{
			Size:  9,
			Style: fontstyle.Bold,
			Align: align.Right,
		})),
	))
}

func addOrderNotes(m core.Maroto, data *ServiceOrderExport) {
	if data.Notes == "" {
		return
	}
	m.AddRows(
		row.New(6).Add(col.New(12).Add(text.New("Notes", props.Text{Size: 9, Style: fontstyle.Bold}))),
		row.New(10).Add(col.New(12).Add(text.New(data.Notes, props.Text{Size: 8}))),
	)
}
