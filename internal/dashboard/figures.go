package dashboard

import (
	"github.com/ademuri/streaming-history/internal/history"
	"github.com/ademuri/streaming-history/internal/query"
)

// Colors follow Plotly's plotly_dark template, which plotly.js has no name for.
const (
	darkBackground = "rgb(17,17,17)"
	darkFont       = "#f2f5fa"
	darkGrid       = "#283442"
	accent         = "#636efa"
)

// magma is Plotly's sequential Magma palette; plotly.js has no scale by that name.
var magma = []string{
	"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f",
	"#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf",
}

// colorscale spreads colors evenly over [0, 1] as [[stop, color], ...].
func colorscale(colors []string) [][]interface{} {
	stops := make([][]interface{}, len(colors))
	for i, c := range colors {
		stops[i] = []interface{}{float64(i) / float64(len(colors)-1), c}
	}
	return stops
}

// Figure is a Plotly figure: traces plus layout, ready for Plotly.react.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type        string      `json:"type"`
	Mode        string      `json:"mode,omitempty"`
	Orientation string      `json:"orientation,omitempty"`
	X           interface{} `json:"x"`
	Y           interface{} `json:"y"`
	Z           [][]float64 `json:"z,omitempty"`
	Line        *Line       `json:"line,omitempty"`
	Marker      *Marker     `json:"marker,omitempty"`
	Colorscale  interface{} `json:"colorscale,omitempty"`
	Hover       string      `json:"hovertemplate,omitempty"`
}

type Line struct {
	Shape string `json:"shape,omitempty"`
	Color string `json:"color,omitempty"`
}

type Marker struct {
	Color string `json:"color,omitempty"`
}

type Layout struct {
	Title        Title  `json:"title"`
	PaperBgcolor string `json:"paper_bgcolor"`
	PlotBgcolor  string `json:"plot_bgcolor"`
	Font         Font   `json:"font"`
	XAxis        Axis   `json:"xaxis"`
	YAxis        Axis   `json:"yaxis"`
}

type Title struct {
	Text string `json:"text"`
}

type Font struct {
	Color string `json:"color"`
}

type Axis struct {
	Title     Title  `json:"title"`
	Type      string `json:"type,omitempty"`
	Autorange string `json:"autorange,omitempty"`
	Gridcolor string `json:"gridcolor"`
	Dtick     int    `json:"dtick,omitempty"`
}

// FigureSet holds the three dashboard charts.
type FigureSet struct {
	TimeSeries Figure `json:"time_series"`
	TopArtists Figure `json:"top_artists"`
	Heatmap    Figure `json:"heatmap"`
}

// Figures renders the aggregates of res as Plotly figures.
func Figures(res query.Result) FigureSet {
	return FigureSet{
		TimeSeries: monthlyFigure(res.Monthly),
		TopArtists: topArtistsFigure(res.TopArtists),
		Heatmap:    heatmapFigure(res.Heatmap),
	}
}

func darkLayout(title, xTitle, yTitle string) Layout {
	return Layout{
		Title:        Title{Text: title},
		PaperBgcolor: darkBackground,
		PlotBgcolor:  darkBackground,
		Font:         Font{Color: darkFont},
		XAxis:        Axis{Title: Title{Text: xTitle}, Gridcolor: darkGrid},
		YAxis:        Axis{Title: Title{Text: yTitle}, Gridcolor: darkGrid},
	}
}

func monthlyFigure(monthly []query.MonthTotal) Figure {
	labels := make([]string, 0, len(monthly))
	minutes := make([]float64, 0, len(monthly))
	for _, m := range monthly {
		labels = append(labels, m.Month.String())
		minutes = append(minutes, m.Minutes)
	}

	layout := darkLayout("Minutes listened per month", "Month", "Minutes")
	layout.XAxis.Type = "category"
	return Figure{
		Data: []Trace{{
			Type:  "scatter",
			Mode:  "lines+markers",
			X:     labels,
			Y:     minutes,
			Line:  &Line{Shape: "spline", Color: accent},
			Hover: "%{x}: %{y:.1f} min<extra></extra>",
		}},
		Layout: layout,
	}
}

func topArtistsFigure(top []query.ArtistTotal) Figure {
	artists := make([]string, 0, len(top))
	minutes := make([]float64, 0, len(top))
	for _, a := range top {
		artists = append(artists, a.Artist)
		minutes = append(minutes, a.Minutes)
	}

	layout := darkLayout("Top artists", "Minutes", "Artist")
	layout.YAxis.Type = "category"
	// Plotly draws the first category at the bottom; the top artist belongs on top.
	layout.YAxis.Autorange = "reversed"
	return Figure{
		Data: []Trace{{
			Type:        "bar",
			Orientation: "h",
			X:           minutes,
			Y:           artists,
			Marker:      &Marker{Color: accent},
			Hover:       "%{y}: %{x:.1f} min<extra></extra>",
		}},
		Layout: layout,
	}
}

func heatmapFigure(cells []query.HeatCell) Figure {
	hours := make([]int, 24)
	for h := range hours {
		hours[h] = h
	}
	weekdays := make([]string, 0, len(history.Weekdays))
	for _, d := range history.Weekdays {
		weekdays = append(weekdays, d.String())
	}

	var z [][]float64
	if len(cells) > 0 {
		grid := query.Grid(cells)
		z = make([][]float64, len(grid))
		for d := range grid {
			z[d] = append([]float64(nil), grid[d][:]...)
		}
	}

	layout := darkLayout("When you listen the most", "Hour", "Weekday")
	layout.XAxis.Dtick = 1
	layout.YAxis.Type = "category"
	layout.YAxis.Autorange = "reversed"
	return Figure{
		Data: []Trace{{
			Type:       "heatmap",
			X:          hours,
			Y:          weekdays,
			Z:          z,
			Colorscale: colorscale(magma),
			Hover:      "%{y} %{x}:00: %{z:.1f} min<extra></extra>",
		}},
		Layout: layout,
	}
}
