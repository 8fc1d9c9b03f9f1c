// bmp-editor loads an uncompressed BMP, applies edits to it and writes it back.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apex/log"

	"github.com/anas-shakeel/bmp-editor/internal/bmp"
	"github.com/anas-shakeel/bmp-editor/internal/config"
	"github.com/anas-shakeel/bmp-editor/internal/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.WithError(err).Fatal("bmp-editor failed")
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("bmp-editor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: bmp-editor [flags] <input.bmp>\n")
		fs.PrintDefaults()
	}

	out := fs.String("out", "", "write the result to this file")
	transforms := fs.String("t", "", "comma separated transforms: invert, rotate90, flip, grayscale, luma")
	brightness := fs.Float64("brightness", 0, "adjust brightness by this amount (see -brightness-method)")
	brightnessMethod := fs.String("brightness-method", "add", "brightness method: add or multiply")
	contrast := fs.Float64("contrast", 1, "adjust contrast by this factor (> 1 increases, < 1 decreases)")
	channel := fs.String("channel", "", "keep only this color channel: red, green or blue")
	crop := fs.String("crop", "", "crop to x,y,width,height (after transforms)")
	depth := fs.Int("depth", 0, "save with this bit depth: 1, 4, 8 or 24")
	info := fs.Bool("info", false, "print image metadata")
	printImage := fs.Bool("print", false, "draw the image in the terminal (small images only)")
	configPath := fs.String("config", "", "configuration file (default "+config.DefaultPath+")")
	logLevel := fs.String("log-level", "", "logging level: debug, info, warn, error (overrides config)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected exactly one input file")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if *logLevel != "" {
		level = *logLevel
	}
	logging.Init(stderr, level)

	input := fs.Arg(0)
	img, err := bmp.ReadBitmap(input)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"file":     input,
		"width":    img.Width(),
		"height":   img.Height(),
		"bitcount": img.BitCount(),
	}).Info("Loaded bitmap")

	names := append(append([]string{}, cfg.Transforms...), splitList(*transforms)...)
	for _, name := range names {
		t, err := bmp.ParseTransform(name)
		if err != nil {
			return err
		}
		img.ApplyTransform(t)
		log.Infof("Applied %s", t)
	}

	if set["brightness"] {
		if err := img.Brightness(*brightness, *brightnessMethod); err != nil {
			return fmt.Errorf("brightness: %w", err)
		}
		log.Infof("Adjusted brightness (%s %v)", *brightnessMethod, *brightness)
	}
	if set["contrast"] {
		if err := img.Contrast(*contrast); err != nil {
			return fmt.Errorf("contrast: %w", err)
		}
		log.Infof("Adjusted contrast (%v)", *contrast)
	}
	if *channel != "" {
		if err := img.IsolateChannel(*channel); err != nil {
			return fmt.Errorf("channel: %w", err)
		}
		log.Infof("Isolated %s channel", *channel)
	}

	if *crop != "" {
		x, y, w, h, err := parseRect(*crop)
		if err != nil {
			return err
		}
		if err := img.Crop(x, y, w, h); err != nil {
			return fmt.Errorf("crop: %w", err)
		}
	}

	if *depth != 0 {
		if err := img.ConvertBitCount(*depth, reusablePalette(img, *depth)); err != nil {
			return err
		}
	}

	if *info {
		img.PrintMetadata(stdout)
	}
	if *printImage {
		img.PrintBitmap(stdout, cfg.Print.Block)
	}

	if *out != "" {
		return saveImage(img, *out, cfg.Save.CopyUnmodified)
	}
	return nil
}

// saveImage writes img to dst. An unmodified image is copied from its source
// file when copyUnmodified is set; if that fails it is re-encoded instead.
func saveImage(img *bmp.BitmapImage, dst string, copyUnmodified bool) error {
	if !img.Modified() && copyUnmodified {
		err := copyFile(img.Filename(), dst)
		if err == nil {
			log.Infof("File not modified, copied %s to %s", img.Filename(), dst)
			return nil
		}
		log.WithError(err).Warn("Copy failed, using manual data generation instead")
	}

	if err := img.WriteFile(dst); err != nil {
		return fmt.Errorf("failed to save %s: %w", dst, err)
	}
	log.Infof("Image saved successfully to %s", dst)
	return nil
}

func copyFile(src, dst string) error {
	if src == "" {
		return errors.New("no source file")
	}

	absSrc, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return err
	}
	if absSrc == absDst {
		return nil // Already there
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	outFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(outFile, in); err != nil {
		outFile.Close()
		return err
	}
	return outFile.Close()
}

// reusablePalette returns the image's own palette when it fits the target depth
func reusablePalette(img *bmp.BitmapImage, depth int) bmp.Palette {
	pal := img.Palette()
	if depth > 8 || len(pal) == 0 || len(pal) > 1<<depth {
		return nil
	}
	return pal
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// parseRect parses "x,y,width,height"
func parseRect(s string) (x, y, w, h int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("invalid crop %q: want x,y,width,height", s)
	}

	var n [4]int
	for i, part := range parts {
		n[i], err = strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0, 0, 0, 0, fmt.Errorf("invalid crop %q: %w", s, err)
		}
	}
	return n[0], n[1], n[2], n[3], nil
}
