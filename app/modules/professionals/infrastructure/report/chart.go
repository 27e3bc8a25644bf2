package report

import (
	"bytes"
	"fmt"

	professionalsdomain "github.com/ryan-huber-j/FFXIVBot/app/modules/professionals/domain"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colors used when rendering charts.
type ChartPalette struct {
	Background drawing.Color
	Bar        drawing.Color
	Winner     drawing.Color
	Text       drawing.Color
}

// DefaultPalette is a dark theme that reads well inside Discord.
var DefaultPalette = ChartPalette{
	Background: drawing.ColorFromHex("2b2d31"),
	Bar:        drawing.ColorFromHex("5865f2"),
	Winner:     drawing.ColorFromHex("f0b232"),
	Text:       drawing.ColorFromHex("dbdee1"),
}

// RenderScoreChart draws a bar chart of non-coach player seals. The winner's
// bar is highlighted.
func RenderScoreChart(results *professionalsdomain.CompetitionResults, palette ChartPalette) ([]byte, error) {
	players := results.Players()
	if len(players) == 0 {
		return renderPlaceholder(palette, "No participants this week")
	}

	bars := make([]chart.Value, len(players))
	for i, p := range players {
		fill := palette.Bar
		if results.Winner != nil && results.Winner.DiscordID == p.DiscordID {
			fill = palette.Winner
		}
		bars[i] = chart.Value{
			Label: p.FirstName + " " + p.LastName,
			Value: float64(p.Seals),
			Style: chart.Style{
				FillColor:   fill,
				StrokeColor: fill,
			},
		}
	}

	width := 120 * len(bars)
	if width < 600 {
		width = 600
	}

	graph := chart.BarChart{
		Title:      "Seals earned this week",
		TitleStyle: chart.Style{FontColor: palette.Text},
		Width:      width,
		Height:     480,
		BarWidth:   60,
		Background: chart.Style{
			FillColor: palette.Background,
			Padding:   chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{FillColor: palette.Background},
		XAxis:  chart.Style{FontColor: palette.Text},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: palette.Text},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return Thousands(int64(f))
				}
				return fmt.Sprint(v)
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render score chart: %w", err)
	}
	return buf.Bytes(), nil
}

func renderPlaceholder(palette ChartPalette, msg string) ([]byte, error) {
	graph := chart.Chart{
		Width:      400,
		Height:     200,
		Background: chart.Style{FillColor: palette.Background},
		Canvas:     chart.Style{FillColor: palette.Background},
		XAxis:      chart.XAxis{Style: chart.Style{Hidden: true}},
		YAxis:      chart.YAxis{Style: chart.Style{Hidden: true}},
		// go-chart refuses to render without a visible series.
		Series: []chart.Series{chart.ContinuousSeries{
			XValues: []float64{0, 1},
			YValues: []float64{0, 1},
			Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
		}},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, defaults chart.Style) {
				r.SetFontColor(palette.Text)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				r.Text(msg, (cb.Width()-tb.Width())/2, (cb.Height()+tb.Height())/2)
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render placeholder chart: %w", err)
	}
	return buf.Bytes(), nil
}
