package scenario

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Table はシナリオが与えられた順に結果を保持する
type Table []Result

// Names は表の順にシナリオ名を返す
func (t Table) Names() []string {
	names := make([]string, len(t))
	for i, r := range t {
		names[i] = r.Scenario
	}
	return names
}

// Get は name の結果を返す
func (t Table) Get(name string) (Result, bool) {
	for _, r := range t {
		if r.Scenario == name {
			return r, true
		}
	}
	return Result{}, false
}

// Best はMAEが最小の結果を返す（同値の場合は先の行）
func (t Table) Best() (Result, bool) {
	if len(t) == 0 {
		return Result{}, false
	}
	best := t[0]
	for _, r := range t[1:] {
		if r.MAE < best.MAE {
			best = r
		}
	}
	return best, true
}

// WriteTo は表を桁揃えしたテキストとして書き出す
//
// 列は scenario, n, mae, leading_coef, intercept で、
// ブートストラップ区間があればその列が続く。
func (t Table) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 0, 2, ' ', 0)

	withCI := false
	for _, r := range t {
		if r.Interval != nil {
			withCI = true
			break
		}
	}

	header := []string{"scenario", "n", "mae", "leading_coef", "intercept"}
	if withCI {
		header = append(header, "mae_ci_lower", "mae_ci_upper")
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, r := range t {
		row := []string{
			r.Scenario,
			fmt.Sprintf("%d", r.NSamples),
			fmt.Sprintf("%.4f", r.MAE),
			fmt.Sprintf("%.4f", r.LeadingCoef()),
			fmt.Sprintf("%.4f", r.Intercept),
		}
		if withCI {
			if r.Interval != nil {
				row = append(row, fmt.Sprintf("%.4f", r.Interval.CILower), fmt.Sprintf("%.4f", r.Interval.CIUpper))
			} else {
				row = append(row, "-", "-")
			}
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	if err := tw.Flush(); err != nil {
		return cw.n, err
	}
	return cw.n, cw.err
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	if err != nil && c.err == nil {
		c.err = err
	}
	return n, err
}
