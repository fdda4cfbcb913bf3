package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"dimviz/internal/sample"
	"dimviz/pkg/config"
	"dimviz/pkg/navigation"
	"dimviz/pkg/roles"
	"dimviz/pkg/visualization"
)

// pointList collects repeated -click x,y flags
type pointList [][2]float64

func (p *pointList) String() string {
	parts := make([]string, len(*p))
	for i, pt := range *p {
		parts[i] = fmt.Sprintf("%g,%g", pt[0], pt[1])
	}
	return strings.Join(parts, " ")
}

func (p *pointList) Set(s string) error {
	fields := strings.Split(s, ",")
	if len(fields) != 2 {
		return fmt.Errorf("want x,y, got %q", s)
	}
	var pt [2]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return fmt.Errorf("bad coordinate %q: %w", f, err)
		}
		pt[i] = v
	}
	*p = append(*p, pt)
	return nil
}

// parseBin accepts "b" or "bx,by"
func parseBin(s string) (int, int, error) {
	fields := strings.Split(s, ",")
	if len(fields) > 2 {
		return 0, 0, fmt.Errorf("want b or bx,by, got %q", s)
	}
	bins := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return 0, 0, fmt.Errorf("bad bin %q: %w", f, err)
		}
		bins[i] = v
	}
	if len(bins) == 1 {
		return bins[0], bins[0], nil
	}
	return bins[0], bins[1], nil
}

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "dimviz.yaml", "Configuration file (defaults are used if it does not exist)")
	modeName := flag.String("mode", "", "Visualizer mode, overrides the configuration")
	outputDir := flag.String("output", "", "Directory for exported views, overrides the configuration")
	var clicks pointList
	flag.Var(&clicks, "click", "Click at display pixel x,y on the navigation image (repeatable)")
	bin := flag.String("bin", "", "Bin size as b or bx,by")
	scroll := flag.Int("scroll", 0, "Scroll steps: positive scrolls up, negative scrolls down")
	frame := flag.Int("frame", -1, "Jump to this frame of an image stack")
	average := flag.Bool("average", false, "Show the mean of all frames of an image stack")
	writeConfig := flag.String("write-config", "", "Write the default configuration to this path and exit")
	flag.Parse()

	if *writeConfig != "" {
		if err := config.CreateDefaultConfigFile(*writeConfig); err != nil {
			log.Fatalf("Failed to write configuration: %v", err)
		}
		fmt.Printf("Default configuration written to: %s\n", *writeConfig)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *modeName != "" {
		cfg.Navigation.Mode = *modeName
	}
	if *outputDir != "" {
		cfg.Export.Dir = *outputDir
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	mode, err := roles.ParseMode(cfg.Navigation.Mode)
	if err != nil {
		log.Fatalf("Invalid mode: %v", err)
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Output.Verbose {
		logger = log.New(os.Stderr, "dimviz: ", log.LstdFlags)
	}

	fmt.Println("================================")
	fmt.Println("DIMVIZ: AXIS-ROLE DRIVEN VIEWS OF MULTI-DIMENSIONAL DATA")
	fmt.Println("================================")

	ds, err := sample.Dataset(mode)
	if err != nil {
		log.Fatalf("Failed to build dataset: %v", err)
	}
	fmt.Printf("Dataset %q, shape %v, roles %v\n", ds.Title, ds.Shape(), ds.Roles())

	canvas, err := visualization.NewFileCanvas(visualization.FileCanvasOptions{
		Dir:          cfg.Export.Dir,
		Format:       cfg.Export.Format,
		JPEGQuality:  cfg.Export.JPEGQuality,
		ColorMap:     cfg.Display.ColorMap,
		ContrastLow:  cfg.Display.ContrastLow,
		ContrastHigh: cfg.Display.ContrastHigh,
		DrawROI:      cfg.Export.DrawROI,
		ScaleBar:     cfg.Display.ScaleBar,
	})
	if err != nil {
		log.Fatalf("Failed to create canvas: %v", err)
	}

	startTime := time.Now()
	v, err := visualization.New(ds, mode, visualization.Options{
		Resolve:       cfg.ResolveOptions(),
		PixelsPerCell: cfg.Display.PixelsPerCell,
		Horizontal:    cfg.Display.Horizontal,
		Canvas:        canvas,
		Logger:        logger,
	})
	if err != nil {
		log.Fatalf("Failed to create visualizer: %v", err)
	}
	fmt.Printf("Mode %s, slots %v\n", mode, v.Assignment().Slots())

	// Replay the scripted events in a fixed order
	if cfg.Navigation.BinX > 1 || cfg.Navigation.BinY > 1 {
		v.SetBin(cfg.Navigation.BinX, cfg.Navigation.BinY)
	}
	if *bin != "" {
		bx, by, err := parseBin(*bin)
		if err != nil {
			log.Fatalf("Invalid -bin: %v", err)
		}
		v.SetBin(bx, by)
	}
	for _, pt := range clicks {
		if !v.Click(pt[0], pt[1]) {
			log.Printf("Warning: click at %g,%g is outside the navigation image", pt[0], pt[1])
		}
	}
	if *frame >= 0 {
		v.SetFrame(*frame)
	}
	dir := navigation.Up
	steps := *scroll
	if steps < 0 {
		dir, steps = navigation.Down, -steps
	}
	for i := 0; i < steps; i++ {
		v.Scroll(dir)
	}
	if *average {
		v.ToggleAverage(true)
	}

	view, err := v.CurrentView()
	if err != nil {
		log.Fatalf("Failed to compute view: %v", err)
	}
	summary, err := view.Summarize()
	if err != nil {
		log.Fatalf("Failed to summarize view: %v", err)
	}

	state := v.State()
	fmt.Printf("\nFinal view %q, shape %v\n", view.Title, view.Shape)
	fmt.Printf("- Selection: %s\n", v.Selection())
	fmt.Printf("- Cursor: (%d, %d), bin %dx%d, frame %d, average %v\n",
		state.X, state.Y, state.BinX, state.BinY, state.Frame, state.Average)
	fmt.Printf("- Values: min %.3f, max %.3f, mean %.3f, std %.3f\n",
		summary.Min, summary.Max, summary.Mean, summary.StdDev)

	written := canvas.Written()
	fmt.Printf("\n%d files written to %s in %.2f seconds:\n", len(written), cfg.Export.Dir, time.Since(startTime).Seconds())
	for _, path := range written {
		fmt.Printf("- %s\n", path)
	}
}
