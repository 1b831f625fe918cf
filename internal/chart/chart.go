// ABOUTME: Horizontal bar charts for the terminal.
// ABOUTME: Renders PR and calorie series with bars scaled to the largest value.
package chart

import (
	"fmt"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/models"
)

// DefaultWidth is the bar length used for the largest value.
const DefaultWidth = 40

const (
	fullBlock = "█"
	halfBlock = "▌"
)

// Bar is one labelled value.
type Bar struct {
	Label string
	Value float64
}

// Options control rendering.
type Options struct {
	Width int
	Unit  string
	Color color.Attribute
}

// FromRecords turns PR rows into bars labelled by exercise name.
func FromRecords(records []*models.RecordView) []Bar {
	bars := make([]Bar, 0, len(records))
	for _, r := range records {
		bars = append(bars, Bar{Label: r.ExerciseName, Value: r.MaxLift})
	}
	return bars
}

// FromCalories turns daily totals into bars labelled by ISO date.
func FromCalories(totals []models.CalorieTotal) []Bar {
	bars := make([]Bar, 0, len(totals))
	for _, ct := range totals {
		bars = append(bars, Bar{Label: ct.Date.Format(models.DateLayout), Value: ct.TotalCalories})
	}
	return bars
}

// Render writes a titled bar chart. Negative values render as empty bars.
func Render(w io.Writer, title string, bars []Bar, opts Options) error {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Color == 0 {
		opts.Color = color.FgGreen
	}

	bold := color.New(color.Bold)
	if _, err := fmt.Fprintln(w, bold.Sprint(title)); err != nil {
		return err
	}
	if len(bars) == 0 {
		_, err := fmt.Fprintln(w, color.New(color.Faint).Sprint("  (no data)"))
		return err
	}

	labelWidth := 0
	peak := 0.0
	for _, b := range bars {
		if n := TextWidth(b.Label); n > labelWidth {
			labelWidth = n
		}
		peak = math.Max(peak, b.Value)
	}

	paint := color.New(opts.Color)
	for _, b := range bars {
		line := fmt.Sprintf("  %s  %s %s",
			PadRight(b.Label, labelWidth),
			paint.Sprint(bar(b.Value, peak, opts.Width)),
			formatValue(b.Value, opts.Unit))
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// bar returns the block string for value scaled so peak fills width.
// Half cells are drawn with a half block.
func bar(value, peak float64, width int) string {
	if value <= 0 || peak <= 0 {
		return ""
	}
	halves := int(math.Round(value / peak * float64(width*2)))
	if halves == 0 {
		halves = 1
	}
	s := strings.Repeat(fullBlock, halves/2)
	if halves%2 == 1 {
		s += halfBlock
	}
	return s
}

func formatValue(v float64, unit string) string {
	s := fmt.Sprintf("%.1f", v)
	if v == math.Trunc(v) {
		s = fmt.Sprintf("%.0f", v)
	}
	if unit != "" {
		s += " " + unit
	}
	return s
}

// TextWidth is the column width of s, counted in runes.
func TextWidth(s string) int {
	return utf8.RuneCountInString(s)
}

// PadRight pads s with spaces to length runes.
func PadRight(s string, length int) string {
	n := TextWidth(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
