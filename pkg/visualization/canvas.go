package visualization

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"

	"dimviz/pkg/navigation"
	"dimviz/pkg/reduce"
)

// minExportSide is the smallest side an exported image is scaled up to
const minExportSide = 256

// FileCanvasOptions configures a FileCanvas.
type FileCanvasOptions struct {
	Dir          string
	Format       string
	JPEGQuality  int
	ColorMap     string
	ContrastLow  float64
	ContrastHigh float64
	DrawROI      bool
	ScaleBar     bool
}

// FileCanvas renders every update to image files: 2D views as PNG, JPEG or
// TIFF, spectra as PNG line charts. Cursor modes also get a layout image
// with the navigation image and the detail view side by side or stacked.
// It stands in for an interactive display and may be shared by several
// visualizers.
type FileCanvas struct {
	mu sync.Mutex

	opts    FileCanvasOptions
	cmap    ColorMap
	seq     int
	written []string
	lastROI map[string]navigation.Rect
}

// NewFileCanvas creates the output directory and checks the options.
func NewFileCanvas(opts FileCanvasOptions) (*FileCanvas, error) {
	cmap, err := ColorMapByName(opts.ColorMap)
	if err != nil {
		return nil, err
	}
	switch opts.Format {
	case "png", "jpeg", "jpg", "tiff", "tif":
	default:
		return nil, fmt.Errorf("unsupported export format %q", opts.Format)
	}
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = 90
	}
	if err := os.MkdirAll(opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	return &FileCanvas{opts: opts, cmap: cmap, lastROI: map[string]navigation.Rect{}}, nil
}

// Written returns the files written so far, in order.
func (c *FileCanvas) Written() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.written))
	copy(out, c.written)
	return out
}

// Redraw writes the view. In cursor modes it also writes the navigation
// image whenever the ROI moved, followed by the combined layout image.
func (c *FileCanvas) Redraw(u ViewUpdate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	prefix := fmt.Sprintf("%s_%s_%03d", safeName(u.View.Title), u.ID.String()[:8], c.seq)
	key := u.ID.String()

	var nav *image.RGBA
	if u.Navigation != nil {
		var err error
		nav, err = c.renderImage(*u.Navigation)
		if err != nil {
			return fmt.Errorf("failed to render navigation image: %w", err)
		}
		if c.opts.DrawROI {
			drawROI(nav, u.Area, u.ROI)
		}
		if last, ok := c.lastROI[key]; !ok || last != u.ROI {
			if err := c.save(nav, prefix+"_nav"); err != nil {
				return err
			}
			c.lastROI[key] = u.ROI
		}
	}

	var detail image.Image
	if u.View.IsImage() {
		img, err := c.renderImage(u.View)
		if err != nil {
			return fmt.Errorf("failed to render view: %w", err)
		}
		if c.opts.ScaleBar && len(u.View.Extent) == 4 {
			drawScaleBar(img, u.View)
		}
		if err := c.save(img, prefix+"_view"); err != nil {
			return err
		}
		detail = img
	} else {
		data, err := renderChart(u.View)
		if err != nil {
			return err
		}
		if err := c.writeFile(prefix+"_spectrum.png", data); err != nil {
			return err
		}
		if nav != nil {
			if detail, err = png.Decode(bytes.NewReader(data)); err != nil {
				return fmt.Errorf("failed to decode chart: %w", err)
			}
		}
	}

	if nav == nil {
		return nil
	}
	return c.save(layout(nav, detail, u.Horizontal), prefix+"_layout")
}

// layout places the navigation image left of the detail view when
// horizontal, above it otherwise.
func layout(nav, detail image.Image, horizontal bool) *image.RGBA {
	nb, db := nav.Bounds(), detail.Bounds()
	var bounds image.Rectangle
	var at image.Point
	if horizontal {
		bounds = image.Rect(0, 0, nb.Dx()+db.Dx(), max(nb.Dy(), db.Dy()))
		at = image.Pt(nb.Dx(), 0)
	} else {
		bounds = image.Rect(0, 0, max(nb.Dx(), db.Dx()), nb.Dy()+db.Dy())
		at = image.Pt(0, nb.Dy())
	}
	dst := image.NewRGBA(bounds)
	draw.Draw(dst, bounds, image.Black, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rectangle{Max: nb.Size()}, nav, nb.Min, draw.Src)
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(db.Size())}, detail, db.Min, draw.Src)
	return dst
}

// renderImage maps the view through the contrast window and colormap and
// scales small images up with nearest-neighbour sampling.
func (c *FileCanvas) renderImage(v reduce.View) (*image.RGBA, error) {
	lo, hi, err := ContrastLimits(v.Data, c.opts.ContrastLow, c.opts.ContrastHigh)
	if err != nil {
		return nil, err
	}
	m := v.Matrix()
	rows, cols := m.Dims()
	src := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			src.SetRGBA(x, y, c.cmap.At((m.At(y, x)-lo)/(hi-lo)))
		}
	}

	scale := 1
	for cols*scale < minExportSide && rows*scale < minExportSide {
		scale++
	}
	if scale == 1 {
		return src, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, cols*scale, rows*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

func (c *FileCanvas) save(img image.Image, name string) error {
	ext := c.opts.Format
	switch ext {
	case "jpg":
		ext = "jpeg"
	case "tif":
		ext = "tiff"
	}
	path := filepath.Join(c.opts.Dir, name+"."+ext)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	switch ext {
	case "jpeg":
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: c.opts.JPEGQuality})
	case "tiff":
		err = tiff.Encode(file, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = png.Encode(file, img)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	c.written = append(c.written, path)
	return nil
}

func (c *FileCanvas) writeFile(name string, data []byte) error {
	path := filepath.Join(c.opts.Dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	c.written = append(c.written, path)
	return nil
}

// renderChart plots a 1D view against its physical coordinates as PNG.
func renderChart(v reduce.View) ([]byte, error) {
	xs := v.XValues
	if len(xs) != len(v.Data) {
		xs = make([]float64, len(v.Data))
		for i := range xs {
			xs[i] = float64(i)
		}
	}
	ys := v.Data
	if len(ys) == 1 {
		xs = []float64{xs[0], xs[0] + 1}
		ys = []float64{ys[0], ys[0]}
	}

	xr, yr := paddedRange(xs), paddedRange(ys)
	graph := chart.Chart{
		Title:  v.Title,
		Width:  800,
		Height: 480,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{Name: v.XLabel, Range: &chart.ContinuousRange{Min: xr[0], Max: xr[1]}},
		YAxis: chart.YAxis{Name: v.YLabel, Range: &chart.ContinuousRange{Min: yr[0], Max: yr[1]}},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "experiment",
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 1.5},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart %q: %w", v.Title, err)
	}
	return buf.Bytes(), nil
}

func paddedRange(values []float64) [2]float64 {
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return [2]float64{lo - 0.5, hi + 0.5}
	}
	pad := (hi - lo) * 0.05
	return [2]float64{lo - pad, hi + pad}
}

// drawROI outlines the ROI, mapping display pixels onto the exported image.
func drawROI(img *image.RGBA, area, roi navigation.Rect) {
	if area.Width <= 0 || area.Height <= 0 {
		return
	}
	b := img.Bounds()
	sx := float64(b.Dx()) / area.Width
	sy := float64(b.Dy()) / area.Height
	x0 := int((roi.X - area.X) * sx)
	y0 := int((roi.Y - area.Y) * sy)
	x1 := int((roi.X-area.X+roi.Width)*sx) - 1
	y1 := int((roi.Y-area.Y+roi.Height)*sy) - 1
	red := color.RGBA{R: 255, A: 255}
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, red)
		img.SetRGBA(x, y1, red)
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, red)
		img.SetRGBA(x1, y, red)
	}
}

// drawScaleBar paints a white bar with its caption in the lower left corner.
func drawScaleBar(img *image.RGBA, v reduce.View) {
	width := v.Extent[1] - v.Extent[0]
	if width == 0 {
		return
	}
	bar := ScaleBarFor(width, v.XUnits)
	b := img.Bounds()
	length := int(float64(bar.Size) / width * float64(b.Dx()))
	if width < 0 {
		length = -length
	}
	thickness := b.Dy() / 50
	if thickness < 2 {
		thickness = 2
	}
	margin := b.Dx() / 20
	top := b.Max.Y - margin - thickness
	draw.Draw(img, image.Rect(margin, top, margin+length, top+thickness), image.White, image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(margin, top-4),
	}
	d.DrawString(bar.Label)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func safeName(s string) string {
	s = strings.Trim(unsafeChars.ReplaceAllString(s, "_"), "_")
	if s == "" {
		return "view"
	}
	return s
}
