// Package report はブートストラップ分布とシナリオ比較を
// gonum/plot で PNG または SVG のグラフとして描画します。
package report

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/YuminosukeSato/houseval/bootstrap"
	"github.com/YuminosukeSato/houseval/pkg/errors"
	"github.com/YuminosukeSato/houseval/pkg/log"
	"github.com/YuminosukeSato/houseval/scenario"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	intervalColor = color.RGBA{R: 200, A: 255}
	meanColor     = color.RGBA{B: 200, A: 255}
	barColor      = color.RGBA{R: 70, G: 130, B: 180, A: 255}
)

// Formats は対応する画像形式
var Formats = []string{"png", "svg"}

func (c *config) validate(op string) error {
	switch c.format {
	case "png", "svg":
	default:
		return errors.NewInvalidArgumentError(op, "format", c.format, Formats...)
	}
	if c.width <= 0 || c.height <= 0 {
		return errors.NewInvalidArgumentError(op, "size", fmt.Sprintf("%vx%v", c.width, c.height), "positive lengths")
	}
	if c.bins < 1 {
		return errors.NewInvalidArgumentError(op, "bins", c.bins, ">= 1")
	}
	return nil
}

// WriteDistribution はブートストラップ標本のヒストグラムを描き、
// res の平均と区間の上下限に縦線を引く
func WriteDistribution(w io.Writer, samples []float64, res bootstrap.Result, opts ...Option) error {
	const op = "report.WriteDistribution"

	cfg := newConfig("Bootstrap distribution", opts)
	if err := cfg.validate(op); err != nil {
		return err
	}
	if len(samples) == 0 {
		return errors.NewModelError(op, "samples has length 0", errors.ErrEmptyData)
	}
	if err := errors.CheckFinite(op, samples); err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = cfg.title
	p.X.Label.Text = "metric"
	p.Y.Label.Text = "count"

	hist, err := plotter.NewHist(plotter.Values(samples), cfg.bins)
	if err != nil {
		return errors.Wrap(err, "build histogram")
	}
	p.Add(hist)

	top := 0.0
	for _, b := range hist.Bins {
		top = math.Max(top, b.Weight)
	}

	lines := []struct {
		label string
		x     float64
		color color.Color
		dash  bool
	}{
		{"mean", res.Mean, meanColor, false},
		{"ci lower", res.CILower, intervalColor, true},
		{"ci upper", res.CIUpper, intervalColor, true},
	}
	for _, l := range lines {
		line, err := plotter.NewLine(plotter.XYs{{X: l.x, Y: 0}, {X: l.x, Y: top}})
		if err != nil {
			return errors.Wrapf(err, "build %s line", l.label)
		}
		line.LineStyle.Color = l.color
		line.LineStyle.Width = vg.Points(1.5)
		if l.dash {
			line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		}
		p.Add(line)
		p.Legend.Add(l.label, line)
	}

	return save(op, p, w, cfg)
}

// WriteScenarioMAE は表の順にシナリオごとの棒を描く
//
// ブートストラップ区間を持つ行にはその区間のエラーバーを付ける。
func WriteScenarioMAE(w io.Writer, table scenario.Table, opts ...Option) error {
	const op = "report.WriteScenarioMAE"

	cfg := newConfig("MAE by scenario", opts)
	if err := cfg.validate(op); err != nil {
		return err
	}
	if len(table) == 0 {
		return errors.NewModelError(op, "table has no rows", errors.ErrEmptyData)
	}

	values := make(plotter.Values, len(table))
	for i, r := range table {
		values[i] = r.MAE
	}

	p := plot.New()
	p.Title.Text = cfg.title
	p.Y.Label.Text = "MAE"

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return errors.Wrap(err, "build bar chart")
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(table.Names()...)

	if ci := intervals(table); ci.Len() > 0 {
		eb, err := plotter.NewYErrorBars(ci)
		if err != nil {
			return errors.Wrap(err, "build error bars")
		}
		p.Add(eb)
	}

	return save(op, p, w, cfg)
}

// intervalBars は表のブートストラップ区間を plotter.YErrorer に適合させる
type intervalBars struct {
	xs, mae, lo, hi []float64
}

func intervals(table scenario.Table) *intervalBars {
	ib := &intervalBars{}
	for i, r := range table {
		if r.Interval == nil {
			continue
		}
		ib.xs = append(ib.xs, float64(i))
		ib.mae = append(ib.mae, r.MAE)
		ib.lo = append(ib.lo, math.Max(0, r.MAE-r.Interval.CILower))
		ib.hi = append(ib.hi, math.Max(0, r.Interval.CIUpper-r.MAE))
	}
	return ib
}

func (ib *intervalBars) Len() int { return len(ib.xs) }

func (ib *intervalBars) XY(i int) (float64, float64) { return ib.xs[i], ib.mae[i] }

func (ib *intervalBars) YError(i int) (float64, float64) { return ib.lo[i], ib.hi[i] }

func save(op string, p *plot.Plot, w io.Writer, cfg *config) error {
	wt, err := p.WriterTo(cfg.width, cfg.height, cfg.format)
	if err != nil {
		return errors.Wrapf(err, "%s: create %s canvas", op, cfg.format)
	}
	n, err := wt.WriteTo(w)
	if err != nil {
		return errors.Wrapf(err, "%s: write %s", op, cfg.format)
	}

	log.GetLoggerWithName("report").Debug("chart written",
		log.OperationKey, log.OperationPlot,
		"format", cfg.format,
		"bytes", n,
	)
	return nil
}
