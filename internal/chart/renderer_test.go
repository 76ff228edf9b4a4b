package chart

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CycleVis/internal/domain/models"
)

type loadedMarkers map[string]string

func (m loadedMarkers) Image(symbol string) (string, bool) {
	url, ok := m[symbol]
	return url, ok
}

func newTestRenderer() *Renderer {
	return NewRenderer([]string{"BTCUSDT", "ETHUSDT"})
}

func TestBuild_PointPerRecord(t *testing.T) {
	records := []models.IndicatorResult{
		{Symbol: "BTCUSDT", Value: 25},
		{Symbol: "SOLUSDT", Value: 72},
		{Symbol: "XRPUSDT", Value: 50},
	}
	cfg := newTestRenderer().Build(records, nil)

	require.Len(t, cfg.Data.Datasets, 1)
	ds := cfg.Data.Datasets[0]
	assert.Len(t, ds.Data, len(records))
	assert.Len(t, ds.Markers, len(records))
	assert.Equal(t, []string{"BTCUSDT", "SOLUSDT", "XRPUSDT"}, cfg.Options.Scales.X.Labels)
	for i, rec := range records {
		assert.Equal(t, rec.Symbol, ds.Data[i].X)
	}
}

func TestBuild_ThresholdRules(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		wantLabel string
		wantColor string
	}{
		{name: "oversold", value: 35, wantLabel: "ADA", wantColor: "green"},
		{name: "neutral", value: 55, wantLabel: "", wantColor: "gray"},
		{name: "overbought", value: 85, wantLabel: "ADA", wantColor: "red"},
		{name: "lower bound is neutral", value: 40, wantLabel: "", wantColor: "gray"},
		{name: "upper bound is neutral", value: 70, wantLabel: "", wantColor: "gray"},
		{name: "just below lower bound", value: 39.99, wantLabel: "ADA", wantColor: "green"},
		{name: "just above upper bound", value: 70.01, wantLabel: "ADA", wantColor: "red"},
	}

	r := newTestRenderer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := r.Build([]models.IndicatorResult{{Symbol: "ADAUSDT", Value: tt.value}}, nil)
			ds := cfg.Data.Datasets[0]

			assert.Equal(t, tt.wantLabel, ds.Data[0].Label)
			assert.Equal(t, tt.wantColor, ds.Markers[0].Color)
			assert.Equal(t, ShapeCircle, ds.Markers[0].Shape)
			assert.Equal(t, 3, ds.Markers[0].Radius)
		})
	}
}

func TestBuild_SpecialMarker(t *testing.T) {
	r := newTestRenderer()
	records := []models.IndicatorResult{{Symbol: "BTCUSDT", Value: 25}}

	before := r.Build(records, loadedMarkers{}).Data.Datasets[0].Markers[0]
	assert.Equal(t, Marker{Shape: ShapeCircle, Radius: 3, Color: "transparent"}, before)

	after := r.Build(records, loadedMarkers{"BTCUSDT": "/static/btc.png"}).Data.Datasets[0].Markers[0]
	assert.Equal(t, Marker{Shape: ShapeImage, Image: "/static/btc.png", Radius: 16, Color: "transparent"}, after)
}

func TestBuild_SpecialMarkerIgnoresValueColor(t *testing.T) {
	cfg := newTestRenderer().Build([]models.IndicatorResult{{Symbol: "ETHUSDT", Value: 90}}, nil)
	ds := cfg.Data.Datasets[0]

	assert.Equal(t, "transparent", ds.Markers[0].Color)
	assert.Equal(t, "ETH", ds.Data[0].Label)
}

func TestBuild_Empty(t *testing.T) {
	cfg := newTestRenderer().Build(nil, nil)

	require.Len(t, cfg.Data.Datasets, 1)
	assert.Empty(t, cfg.Data.Datasets[0].Data)
	assert.NotNil(t, cfg.Data.Datasets[0].Data)
	assert.Len(t, cfg.Options.Zones, 3)

	b, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"data":[]`)
}

func TestBuild_Zones(t *testing.T) {
	cfg := newTestRenderer().Build(nil, nil)

	assert.Equal(t, []Zone{
		{Name: "lowZone", YMin: 0, YMax: 40, Color: "rgba(0,128,0,0.2)"},
		{Name: "midZone", YMin: 40, YMax: 70, Color: "rgba(128,128,128,0.2)"},
		{Name: "highZone", YMin: 70, YMax: 100, Color: "rgba(255,0,0,0.2)"},
	}, cfg.Options.Zones)
}

func TestBuild_Options(t *testing.T) {
	cfg := newTestRenderer().Build(nil, nil)

	assert.Equal(t, "scatter", cfg.Type)
	assert.Equal(t, "#ffffff", cfg.Options.Color)
	assert.Equal(t, "Relative Strength Index", cfg.Options.Title.Text)
	assert.Equal(t, 20, cfg.Options.Title.Size)
	assert.Equal(t, "top", cfg.Options.Legend.Position)
	assert.False(t, cfg.Options.Scales.X.Display)
	assert.Equal(t, 0.0, cfg.Options.Scales.Y.Min)
	assert.Equal(t, 100.0, cfg.Options.Scales.Y.Max)
	assert.Contains(t, cfg.Plugins, PluginAnnotation)
	assert.Contains(t, cfg.Plugins, PluginDataLabels)
}

func TestBuild_EndToEnd(t *testing.T) {
	records := []models.IndicatorResult{
		{Symbol: "BTCUSDT", Value: 25, Category: "oversold"},
		{Symbol: "SOLUSDT", Value: 72, Category: "overbought"},
	}
	ds := newTestRenderer().Build(records, nil).Data.Datasets[0]

	assert.Equal(t, "BTC", ds.Data[0].Label)
	assert.Equal(t, "SOL", ds.Data[1].Label)
	assert.Equal(t, "BTC: 25.00", ds.Data[0].Tooltip)
	assert.Equal(t, "SOL: 72.00", ds.Data[1].Tooltip)
	assert.Equal(t, "red", ds.Markers[1].Color)
}

func TestPoint_MarshalNaN(t *testing.T) {
	b, err := json.Marshal(Point{X: "BTCUSDT", Y: math.NaN(), Tooltip: "BTC: NaN"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":"BTCUSDT","y":null,"tooltip":"BTC: NaN"}`, string(b))

	b, err = json.Marshal(Point{X: "BTCUSDT", Y: 12.5, Label: "BTC"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":"BTCUSDT","y":12.5,"label":"BTC","tooltip":""}`, string(b))
}

func TestBuild_OutOfRangePassThrough(t *testing.T) {
	cfg := newTestRenderer().Build([]models.IndicatorResult{
		{Symbol: "AAAUSDT", Value: -5},
		{Symbol: "BBBUSDT", Value: 140},
	}, nil)
	ds := cfg.Data.Datasets[0]

	assert.Equal(t, -5.0, ds.Data[0].Y)
	assert.Equal(t, 140.0, ds.Data[1].Y)
	assert.Equal(t, "green", ds.Markers[0].Color)
	assert.Equal(t, "red", ds.Markers[1].Color)
}

func TestClick(t *testing.T) {
	r := newTestRenderer()
	records := []models.IndicatorResult{
		{Symbol: "BTCUSDT", Value: 25.456, Category: "oversold"},
	}

	d, ok := r.Click(records, 0)
	require.True(t, ok)
	assert.Equal(t, "BTCUSDT\nRSI: 25.46\nCategory: oversold", d.Text())

	_, ok = r.Click(records, 1)
	assert.False(t, ok)
	_, ok = r.Click(records, -1)
	assert.False(t, ok)
}

func TestStripQuote(t *testing.T) {
	assert.Equal(t, "BTC", StripQuote("BTCUSDT"))
	assert.Equal(t, "USDTBTC", StripQuote("USDTBTC"))
	assert.Equal(t, "", StripQuote("USDT"))
}
