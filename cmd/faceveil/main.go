// Command faceveil obscures regions of a photo from the command line.
//
//	faceveil -in photo.jpg -out veiled.png -regions regions.json [-mode full_blur] [-intensity 0.75]
//
// The regions file is a JSON array of normalized rectangles with a
// bottom-left origin:
//
//	[{"x":0.25,"y":0.25,"w":0.5,"h":0.5,"rotation":0.0}]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"

	"go.uber.org/zap"

	"github.com/yyyoichi/faceveil"
	"github.com/yyyoichi/faceveil/internal/config"
	"github.com/yyyoichi/faceveil/internal/logger"
)

type regionSpec struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Rotation float64 `json:"rotation"`
}

func main() {
	var (
		configPath  = flag.String("config", "", "path to config file")
		inPath      = flag.String("in", "", "input image (png or jpeg)")
		outPath     = flag.String("out", "", "output image (png or jpeg)")
		regionsPath = flag.String("regions", "", "regions JSON file")
		mode        = flag.String("mode", "", "privacy mode override")
		intensity   = flag.Float64("intensity", -1, "intensity override in [0,1]")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *intensity >= 0 {
		cfg.Intensity = *intensity
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log, *inPath, *outPath, *regionsPath); err != nil {
		log.Fatal("failed", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger, inPath, outPath, regionsPath string) error {
	if inPath == "" || outPath == "" || regionsPath == "" {
		return fmt.Errorf("-in, -out and -regions are required")
	}

	src, format, err := decodeImage(inPath)
	if err != nil {
		return fmt.Errorf("%w: %w", faceveil.ErrNoPixelData, err)
	}
	log.Info("decoded input",
		zap.String("path", inPath),
		zap.String("format", format),
		zap.Int("width", src.Bounds().Dx()),
		zap.Int("height", src.Bounds().Dy()),
	)

	regions, err := readRegions(regionsPath)
	if err != nil {
		return err
	}
	log.Info("loaded regions", zap.Int("count", len(regions)))

	boxColor, err := config.ParseColor(cfg.BoxColor)
	if err != nil {
		return err
	}
	out, err := faceveil.Apply(context.Background(), src, regions,
		faceveil.WithMode(cfg.PrivacyMode()),
		faceveil.WithIntensity(cfg.Intensity),
		faceveil.WithBoxColor(boxColor),
	)
	if err != nil {
		return err
	}
	log.Info("applied pipeline",
		zap.String("mode", cfg.Mode),
		zap.Float64("intensity", cfg.Intensity),
	)

	if err := encodeImage(outPath, out); err != nil {
		return fmt.Errorf("%w: %w", faceveil.ErrRender, err)
	}
	log.Info("wrote output", zap.String("path", outPath))
	return nil
}

func decodeImage(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	return image.Decode(f)
}

func readRegions(path string) ([]faceveil.Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var specs []regionSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("failed to parse regions file: %w", err)
	}
	regions := make([]faceveil.Region, len(specs))
	for i, s := range specs {
		regions[i] = faceveil.NewFaceRegion(faceveil.Rect{X: s.X, Y: s.Y, W: s.W, H: s.H}).
			WithRotation(s.Rotation)
	}
	return regions, nil
}

func encodeImage(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	default:
		return png.Encode(f, img)
	}
}
