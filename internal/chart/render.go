package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-pdf/fpdf"

	"bonus-tax-engine/internal/money"
)

const (
	pageWidth  = 297.0
	plotLeft   = 28.0
	plotTop    = 28.0
	plotWidth  = 230.0
	plotHeight = 145.0
	ticks      = 5
)

type rgb struct{ r, g, b int }

type series struct {
	label  string
	color  rgb
	values func(SweepPoint) float64
}

var sweepSeries = []series{
	{"Salary per year", rgb{120, 120, 120}, func(p SweepPoint) float64 { return p.AnnualCompensation }},
	{"Minimal tax", rgb{200, 40, 40}, func(p SweepPoint) float64 { return p.MinTax }},
	{"Salary after tax", rgb{30, 120, 200}, func(p SweepPoint) float64 { return p.AfterTax }},
	{"Avoided tax", rgb{40, 160, 60}, func(p SweepPoint) float64 { return p.AvoidedTax }},
	{"Best bonus", rgb{230, 150, 20}, func(p SweepPoint) float64 { return p.AnnualBonus }},
}

// RenderMinTaxPDF draws the compensation sweep as a line chart.
func RenderMinTaxPDF(w io.Writer, title string, points []SweepPoint) error {
	if len(points) < 2 {
		return errors.New("need at least two sweep points to draw a chart")
	}

	xMin, xMax := points[0].AnnualCompensation, points[len(points)-1].AnnualCompensation
	yMax := 0.0
	for _, p := range points {
		for _, s := range sweepSeries {
			if v := s.values(p); v > yMax {
				yMax = v
			}
		}
	}
	if xMax <= xMin {
		return fmt.Errorf("sweep points must increase, got %v..%v", xMin, xMax)
	}
	if yMax <= 0 {
		yMax = 1
	}

	pdf := newPage(title)
	drawAxes(pdf, xMin, xMax, 0, yMax, "Salary per year", "Money")

	px := func(x float64) float64 { return plotLeft + (x-xMin)/(xMax-xMin)*plotWidth }
	py := func(y float64) float64 { return plotTop + plotHeight - y/yMax*plotHeight }

	pdf.SetLineWidth(0.4)
	for _, s := range sweepSeries {
		pdf.SetDrawColor(s.color.r, s.color.g, s.color.b)
		for i := 1; i < len(points); i++ {
			a, b := points[i-1], points[i]
			pdf.Line(px(a.AnnualCompensation), py(s.values(a)), px(b.AnnualCompensation), py(s.values(b)))
		}
	}

	// legend
	pdf.SetFont("Arial", "", 8)
	for i, s := range sweepSeries {
		y := plotTop + 4 + float64(i)*5
		pdf.SetFillColor(s.color.r, s.color.g, s.color.b)
		pdf.Rect(plotLeft+6, y-2, 6, 2, "F")
		pdf.SetTextColor(40, 40, 40)
		pdf.Text(plotLeft+14, y, s.label)
	}

	return pdf.Output(w)
}

// RenderSurfacePDF draws the after-tax surface as a heat map: monthly salary
// on the x axis, annual bonus on the y axis, colour for after-tax income.
func RenderSurfacePDF(w io.Writer, title string, s *Surface) error {
	if s == nil || len(s.Salaries) < 2 || len(s.Bonuses) < 2 {
		return errors.New("need at least a 2x2 grid to draw a surface")
	}

	lo, hi := s.AfterTax[0][0], s.AfterTax[0][0]
	for _, row := range s.AfterTax {
		for _, v := range row {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	span := hi - lo
	if span <= 0 {
		span = 1
	}

	pdf := newPage(title)

	cellW := plotWidth / float64(len(s.Salaries))
	cellH := plotHeight / float64(len(s.Bonuses))
	for i, row := range s.AfterTax {
		for j, v := range row {
			c := heat((v - lo) / span)
			pdf.SetFillColor(c.r, c.g, c.b)
			x := plotLeft + float64(i)*cellW
			y := plotTop + plotHeight - float64(j+1)*cellH
			pdf.Rect(x, y, cellW, cellH, "F")
		}
	}

	last := func(v []float64) float64 { return v[len(v)-1] }
	drawAxes(pdf, s.Salaries[0], last(s.Salaries), s.Bonuses[0], last(s.Bonuses), "Monthly salary", "Annual bonus")

	// colour scale
	pdf.SetFont("Arial", "", 7)
	scaleX := plotLeft + plotWidth + 8
	for k := 0; k < 20; k++ {
		c := heat(float64(k) / 19)
		pdf.SetFillColor(c.r, c.g, c.b)
		pdf.Rect(scaleX, plotTop+plotHeight-float64(k+1)*plotHeight/20, 5, plotHeight/20, "F")
	}
	pdf.SetTextColor(40, 40, 40)
	pdf.Text(scaleX, plotTop-2, money.Compact(hi))
	pdf.Text(scaleX, plotTop+plotHeight+4, money.Compact(lo))

	return pdf.Output(w)
}

func newPage(title string) *fpdf.Fpdf {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(pageWidth-20, 8, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(pageWidth-20, 5, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")
	return pdf
}

func drawAxes(pdf *fpdf.Fpdf, xMin, xMax, yMin, yMax float64, xLabel, yLabel string) {
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.3)
	pdf.Line(plotLeft, plotTop+plotHeight, plotLeft+plotWidth, plotTop+plotHeight)
	pdf.Line(plotLeft, plotTop, plotLeft, plotTop+plotHeight)

	pdf.SetFont("Arial", "", 7)
	pdf.SetTextColor(60, 60, 60)
	for k := 0; k <= ticks; k++ {
		f := float64(k) / ticks

		x := plotLeft + f*plotWidth
		pdf.Line(x, plotTop+plotHeight, x, plotTop+plotHeight+1.5)
		label := money.Compact(xMin + f*(xMax-xMin))
		pdf.Text(x-pdf.GetStringWidth(label)/2, plotTop+plotHeight+5, label)

		y := plotTop + plotHeight - f*plotHeight
		pdf.Line(plotLeft-1.5, y, plotLeft, y)
		label = money.Compact(yMin + f*(yMax-yMin))
		pdf.Text(plotLeft-2.5-pdf.GetStringWidth(label), y+1, label)
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.Text(plotLeft+plotWidth/2-pdf.GetStringWidth(xLabel)/2, plotTop+plotHeight+12, xLabel)

	pdf.TransformBegin()
	pdf.TransformRotate(90, 10, plotTop+plotHeight/2)
	pdf.Text(10-pdf.GetStringWidth(yLabel)/2, plotTop+plotHeight/2, yLabel)
	pdf.TransformEnd()
}

// heat maps t in [0, 1] onto a blue to red ramp.
func heat(t float64) rgb {
	t = max(0, min(1, t))
	return rgb{
		r: int(40 + t*200),
		g: int(80 + (1-math.Abs(2*t-1))*120),
		b: int(220 - t*190),
	}
}
