package chart

import (
	"encoding/json"
	"math"
)

// Config is a scatter chart configuration ready to be painted by the browser.
type Config struct {
	Type    string   `json:"type"`
	Data    Data     `json:"data"`
	Options Options  `json:"options"`
	Plugins []string `json:"plugins"`
}

// Data holds the datasets of a chart. A dashboard chart has exactly one.
type Data struct {
	Datasets []Dataset `json:"datasets"`
}

// Dataset holds one point and one marker per input record, index aligned.
type Dataset struct {
	Label    string   `json:"label"`
	Data     []Point  `json:"data"`
	Markers  []Marker `json:"markers"`
	ShowLine bool     `json:"showLine"`
}

// Point is a plotted record. Label is empty for points inside the neutral zone.
type Point struct {
	X       string  `json:"x"`
	Y       float64 `json:"y"`
	Label   string  `json:"label,omitempty"`
	Tooltip string  `json:"tooltip"`
}

// MarshalJSON writes a non-finite Y as null; the browser skips such points.
func (p Point) MarshalJSON() ([]byte, error) {
	type point struct {
		X       string   `json:"x"`
		Y       *float64 `json:"y"`
		Label   string   `json:"label,omitempty"`
		Tooltip string   `json:"tooltip"`
	}
	out := point{X: p.X, Label: p.Label, Tooltip: p.Tooltip}
	if !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0) {
		y := p.Y
		out.Y = &y
	}
	return json.Marshal(out)
}

// Marker shapes.
const (
	ShapeCircle = "circle"
	ShapeImage  = "image"
)

// Marker is how one point is drawn: a circle or a loaded image.
type Marker struct {
	Shape  string `json:"shape"`
	Image  string `json:"image,omitempty"`
	Radius int    `json:"radius"`
	Color  string `json:"color"`
}

// Options are the chart-wide display settings.
type Options struct {
	Responsive bool   `json:"responsive"`
	Color      string `json:"color"`
	Layout     Layout `json:"layout"`
	Title      Title  `json:"title"`
	Legend     Legend `json:"legend"`
	Zones      []Zone `json:"zones"`
	Scales     Scales `json:"scales"`
	DataLabels Labels `json:"dataLabels"`
}

// Layout is the horizontal padding around the plot area.
type Layout struct {
	PaddingLeft  int `json:"paddingLeft"`
	PaddingRight int `json:"paddingRight"`
}

// Title is the heading drawn above the chart.
type Title struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
	Size    int    `json:"size"`
	Weight  string `json:"weight"`
}

// Legend places the dataset legend.
type Legend struct {
	Position string `json:"position"`
}

// Labels positions the per-point symbol labels.
type Labels struct {
	Align string `json:"align"`
}

// Zone is a horizontal band drawn behind every point.
type Zone struct {
	Name  string  `json:"name"`
	YMin  float64 `json:"yMin"`
	YMax  float64 `json:"yMax"`
	Color string  `json:"color"`
}

// Scales pairs the category x axis with the linear RSI axis.
type Scales struct {
	X CategoryScale `json:"x"`
	Y LinearScale   `json:"y"`
}

// CategoryScale is an axis over symbol names.
type CategoryScale struct {
	Type    string   `json:"type"`
	Display bool     `json:"display"`
	Labels  []string `json:"labels"`
}

// LinearScale is a fixed numeric axis.
type LinearScale struct {
	Type      string  `json:"type"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	TickColor string  `json:"tickColor"`
	GridColor string  `json:"gridColor"`
}
