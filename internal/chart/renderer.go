package chart

import (
	"fmt"
	"strings"

	"CycleVis/internal/domain/models"
)

// RSI thresholds. Values equal to a threshold are neutral.
const (
	Oversold   = 40.0
	Overbought = 70.0
)

const (
	transparent = "transparent"
	colorLow    = "green"
	colorHigh   = "red"
	colorMid    = "gray"

	circleRadius = 3
	imageRadius  = 16
)

// Zones returns the three RSI bands, low to high.
func Zones() []Zone {
	return []Zone{
		{Name: "lowZone", YMin: 0, YMax: Oversold, Color: "rgba(0,128,0,0.2)"},
		{Name: "midZone", YMin: Oversold, YMax: Overbought, Color: "rgba(128,128,128,0.2)"},
		{Name: "highZone", YMin: Overbought, YMax: 100, Color: "rgba(255,0,0,0.2)"},
	}
}

// Markers reports the image URL for a symbol once its marker has loaded.
type Markers interface {
	Image(symbol string) (string, bool)
}

// Renderer builds chart configurations for RSI datasets.
type Renderer struct {
	special map[string]struct{}
}

// NewRenderer returns a Renderer drawing image markers for the given symbols.
// It registers the chart plugins on first use.
func NewRenderer(special []string) *Renderer {
	Setup()
	r := &Renderer{special: make(map[string]struct{}, len(special))}
	for _, s := range special {
		r.special[s] = struct{}{}
	}
	return r
}

// Build returns the scatter configuration for records in input order.
// markers may be nil, in which case no image is considered loaded.
func (r *Renderer) Build(records []models.IndicatorResult, markers Markers) *Config {
	points := make([]Point, 0, len(records))
	styles := make([]Marker, 0, len(records))
	symbols := make([]string, 0, len(records))

	for _, rec := range records {
		short := StripQuote(rec.Symbol)
		p := Point{
			X:       rec.Symbol,
			Y:       rec.Value,
			Tooltip: fmt.Sprintf("%s: %.2f", short, rec.Value),
		}
		if outsideNeutral(rec.Value) {
			p.Label = short
		}
		points = append(points, p)
		styles = append(styles, r.marker(rec, markers))
		symbols = append(symbols, rec.Symbol)
	}

	return &Config{
		Type: PluginScatter,
		Data: Data{Datasets: []Dataset{{
			Label:   "RSI",
			Data:    points,
			Markers: styles,
		}}},
		Options: Options{
			Responsive: true,
			Color:      DefaultColor,
			Layout:     Layout{PaddingLeft: 20, PaddingRight: 20},
			Title: Title{
				Display: true,
				Text:    "Relative Strength Index",
				Size:    20,
				Weight:  "bold",
			},
			Legend:     Legend{Position: "top"},
			Zones:      Zones(),
			DataLabels: Labels{Align: "top"},
			Scales: Scales{
				X: CategoryScale{Type: PluginCategory, Display: false, Labels: symbols},
				Y: LinearScale{
					Type:      PluginLinear,
					Min:       0,
					Max:       100,
					TickColor: DefaultColor,
					GridColor: "rgba(255,255,255,0.1)",
				},
			},
		},
		Plugins: Registered(),
	}
}

func (r *Renderer) marker(rec models.IndicatorResult, markers Markers) Marker {
	if _, ok := r.special[rec.Symbol]; ok {
		if markers != nil {
			if url, loaded := markers.Image(rec.Symbol); loaded {
				return Marker{Shape: ShapeImage, Image: url, Radius: imageRadius, Color: transparent}
			}
		}
		return Marker{Shape: ShapeCircle, Radius: circleRadius, Color: transparent}
	}
	return Marker{Shape: ShapeCircle, Radius: circleRadius, Color: ValueColor(rec.Value)}
}

// ValueColor returns the marker color for a plain symbol.
func ValueColor(v float64) string {
	switch {
	case v < Oversold:
		return colorLow
	case v > Overbought:
		return colorHigh
	default:
		return colorMid
	}
}

// StripQuote removes a trailing USDT quote currency from a symbol.
func StripQuote(symbol string) string {
	return strings.TrimSuffix(symbol, "USDT")
}

func outsideNeutral(v float64) bool {
	return v < Oversold || v > Overbought
}

// Detail describes the record behind a clicked point.
type Detail struct {
	Symbol   string
	Value    float64
	Category string
}

func (d Detail) Text() string {
	return fmt.Sprintf("%s\nRSI: %.2f\nCategory: %s", d.Symbol, d.Value, d.Category)
}

// Click resolves a point index against the records the chart was built from.
func (r *Renderer) Click(records []models.IndicatorResult, index int) (Detail, bool) {
	if index < 0 || index >= len(records) {
		return Detail{}, false
	}
	rec := records[index]
	return Detail{Symbol: rec.Symbol, Value: rec.Value, Category: rec.Category}, true
}
