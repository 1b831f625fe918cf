// ABOUTME: Tests for terminal bar chart rendering.
// ABOUTME: Disables color so output can be compared as plain text.
package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/harperreed/liftlog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestBarScaling(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		peak  float64
		width int
		want  string
	}{
		{"peak fills width", 100, 100, 4, "████"},
		{"half", 50, 100, 4, "██"},
		{"odd half cell", 62.5, 100, 4, "██▌"},
		{"tiny value still visible", 0.1, 100, 4, "▌"},
		{"zero", 0, 100, 4, ""},
		{"negative", -5, 100, 4, ""},
		{"no peak", 10, 0, 4, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, bar(tt.value, tt.peak, tt.width))
		})
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	bars := []Bar{{"Bench", 100}, {"Squat", 150}}

	require.NoError(t, Render(&buf, "Personal Records", bars, Options{Width: 6, Unit: "kg"}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Personal Records", lines[0])
	assert.Equal(t, "  Bench  ████ 100 kg", lines[1])
	assert.Equal(t, "  Squat  ██████ 150 kg", lines[2])
}

func TestRenderEmpty(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Render(&buf, "Calories", nil, Options{}))
	assert.Contains(t, buf.String(), "(no data)")
}

func TestFromCalories(t *testing.T) {
	d, err := models.ParseDate("2024-01-01")
	require.NoError(t, err)

	bars := FromCalories([]models.CalorieTotal{{Date: d, TotalCalories: 550}})
	assert.Equal(t, []Bar{{Label: "2024-01-01", Value: 550}}, bars)
}

func TestFromRecords(t *testing.T) {
	bars := FromRecords([]*models.RecordView{{ExerciseName: "Deadlift", MaxLift: 180.5}})
	assert.Equal(t, []Bar{{Label: "Deadlift", Value: 180.5}}, bars)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "550", formatValue(550, ""))
	assert.Equal(t, "82.5 kg", formatValue(82.5, "kg"))
}

func TestPadRightCountsRunes(t *testing.T) {
	assert.Equal(t, 9, TextWidth("Développé"))
	assert.Equal(t, "Développé ", PadRight("Développé", 10))
	assert.Equal(t, "Row       ", PadRight("Row", 10))
	assert.Equal(t, "Squat", PadRight("Squat", 3))
}
