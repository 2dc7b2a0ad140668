// Package pdf genera el estado de cuenta de un proveedor en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proveedor + contacto  │  ESTADO DE CUENTA + fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DEUDAS: Vence | Descripción | Monto                        │
//	│  FACTURAS: N° | Emisión | Vence | Monto | Abonado | Saldo   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Deudas / Facturas / Abonado / SALDO               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/cuentas-por-pagar/internal/application/dto"
	"github.com/jhoicas/cuentas-por-pagar/internal/application/payables"
)

var _ payables.StatementRenderer = (*StatementGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDue     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// StatementGenerator implementa payables.StatementRenderer usando Maroto v2.
type StatementGenerator struct {
	printer *message.Printer
	appName string
}

// NewStatementGenerator construye el generador. Los montos se formatean en español.
func NewStatementGenerator(appName string) *StatementGenerator {
	return &StatementGenerator{
		printer: message.NewPrinter(language.Spanish),
		appName: appName,
	}
}

// RenderStatement genera el PDF y devuelve sus bytes.
func (g *StatementGenerator) RenderStatement(st *dto.SupplierStatement) ([]byte, error) {
	if st == nil {
		return nil, fmt.Errorf("pdf: estado de cuenta vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta - "+st.Supplier.Name, true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionTitle("DEUDAS"))
	if len(st.Debts) == 0 {
		m.AddRows(emptyRow("Sin deudas registradas."))
	} else {
		m.AddRows(debtHeaderRow())
		m.AddRows(g.debtRows(st.Debts)...)
	}

	m.AddRows(row.New(4))
	m.AddRows(sectionTitle("FACTURAS"))
	if len(st.Invoices) == 0 {
		m.AddRows(emptyRow("Sin facturas registradas."))
	} else {
		m.AddRows(invoiceHeaderRow())
		m.AddRows(g.invoiceRows(st.Invoices)...)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(st))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *StatementGenerator) headerRow(st *dto.SupplierStatement) core.Row {
	s := st.Supplier
	return row.New(20).Add(
		col.New(7).Add(
			text.New(s.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s",
				nonEmpty(s.Address, "-"), nonEmpty(s.Phone, "-"),
			), props.Text{Size: 8, Top: 9, Color: colorGray}),
			text.New("Email: "+nonEmpty(s.Email, "-"), props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Proveedor N° "+strconv.FormatInt(s.ID, 10), props.Text{
				Size: 9, Align: align.Right, Top: 8,
			}),
			text.New("Fecha: "+displayDate(st.GeneratedAt), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func debtHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("Vence", 2, align.Left),
		headerCell("Descripción", 7, align.Left),
		headerCell("Monto", 3, align.Right),
	)
}

func (g *StatementGenerator) debtRows(debts []dto.DebtResponse) []core.Row {
	rows := make([]core.Row, 0, len(debts))
	for _, d := range debts {
		rows = append(rows, row.New(6).Add(
			cell(displayDate(d.DueDate), 2, align.Left),
			cell(nonEmpty(d.Description, "-"), 7, align.Left),
			cell(g.moneyString(d.Amount), 3, align.Right),
		))
	}
	return rows
}

func invoiceHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell("N°", 1, align.Left),
		headerCell("Emisión", 2, align.Left),
		headerCell("Vence", 2, align.Left),
		headerCell("Monto", 2, align.Right),
		headerCell("Abonado", 2, align.Right),
		headerCell("Saldo", 3, align.Right),
	)
}

func (g *StatementGenerator) invoiceRows(lines []dto.StatementInvoiceLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		balance := col.New(3).Add(text.New(g.money(l.Balance), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1, Color: balanceColor(l.Balance),
		}))
		rows = append(rows, row.New(6).Add(
			cell(strconv.FormatInt(l.Invoice.ID, 10), 1, align.Left),
			cell(displayDate(l.Invoice.IssueDate), 2, align.Left),
			cell(displayDate(l.Invoice.DueDate), 2, align.Left),
			cell(g.moneyString(l.Invoice.Amount), 2, align.Right),
			cell(g.money(l.Paid), 2, align.Right),
			balance,
		))
	}
	return rows
}

func (g *StatementGenerator) totalsRow(st *dto.SupplierStatement) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(
			label("Total deudas:", 1),
			label("Total facturas:", 6),
			label("Total abonado:", 11),
			text.New("SALDO PENDIENTE:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 17,
			}),
		),
		col.New(4).Add(
			value(g.money(st.TotalDebts), 1),
			value(g.money(st.TotalInvoice), 6),
			value(g.money(st.TotalPaid), 11),
			text.New(g.money(st.Balance), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 17,
			}),
		),
	)
}

// money formatea con separadores del locale español, p. ej. "$ 1.234.567,50".
func (g *StatementGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$ %.2f", d.Round(2).InexactFloat64())
}

// moneyString formatea un monto que ya viene como texto en la respuesta.
func (g *StatementGenerator) moneyString(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return g.money(d)
}

func balanceColor(balance decimal.Decimal) *props.Color {
	if balance.IsPositive() {
		return colorDue
	}
	return nil
}

// displayDate pasa de YYYY-MM-DD a DD/MM/YYYY.
func displayDate(s string) string {
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
