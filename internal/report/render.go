package report

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// DefaultFile is where the report is written unless told otherwise.
const DefaultFile = "sprint_stats.png"

// Image geometry: 18.5x10.5 inches at 100 dpi.
const (
	Width  = 18.5 * vg.Inch
	Height = 10.5 * vg.Inch
	DPI    = 100
)

// ErrNoSprints is returned when there is nothing to plot.
var ErrNoSprints = errors.New("no sprints to plot")

// Render draws each table as a grouped bar chart, stacked top to bottom
// in one PNG at path. The file appears only once fully written.
func Render(path string, tables ...Table) error {
	if len(tables) == 0 || len(tables[0].Sprints) == 0 {
		return ErrNoSprints
	}

	plots := make([][]*plot.Plot, len(tables))
	for i, t := range tables {
		p, err := barChart(t)
		if err != nil {
			return fmt.Errorf("chart %q: %w", t.Title, err)
		}
		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.NewWith(vgimg.UseWH(Width, Height), vgimg.UseDPI(DPI))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(tables),
		Cols:      1,
		PadY:      vg.Millimeter * 6,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	return writePNG(path, img)
}

func writePNG(path string, img *vgimg.Canvas) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".sprint_stats-*.png")
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set image file mode: %w", err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode png: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write image file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write image file to %s: %w", path, err)
	}
	return nil
}

func barChart(t Table) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = t.Title
	p.X.Label.Text = "Sprint"
	p.Y.Label.Text = t.Title
	p.Y.Min = 0
	p.Legend.Top = true
	p.NominalX(t.Sprints...)

	if len(t.Users) == 0 {
		return p, nil
	}

	// Each sprint slot is one unit wide; the group fills 80% of it.
	slot := (Width - 2*vg.Inch) / vg.Length(len(t.Sprints))
	barWidth := slot * 0.8 / vg.Length(len(t.Users))
	colors := palette(len(t.Users))

	for u, user := range t.Users {
		bars, err := plotter.NewBarChart(plotter.Values(t.Values[u]), barWidth)
		if err != nil {
			return nil, err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = colors[u]
		bars.Offset = vg.Length(float64(u)-float64(len(t.Users)-1)/2) * barWidth
		p.Add(bars)
		p.Legend.Add(user, bars)
	}
	return p, nil
}

// palette spreads n colours evenly around the HCL hue wheel so adjacent
// users stay distinguishable.
func palette(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		h := 360 * float64(i) / float64(n)
		out[i] = colorful.Hcl(h, 0.55, 0.65).Clamped()
	}
	return out
}
