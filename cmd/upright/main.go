// Command upright resizes image files, applying their Exif orientation.
//
//	upright [flags] file...
//	upright -rotate 90 file...
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"upright/internal/config"
	"upright/internal/pipeline"
	"upright/internal/resize"
	"upright/internal/storage"
	"upright/internal/worker"
)

func main() {
	cfg := config.Load()

	var (
		width   = flag.Float64("w", 0, "target width in points (0 keeps aspect)")
		height  = flag.Float64("h", 0, "target height in points (0 keeps aspect)")
		mode    = flag.String("mode", "fit", "content mode: fit, fill or stretch (alias exact)")
		crop    = flag.Bool("crop", false, "crop fill results to the target box")
		quality = flag.String("quality", "default", "interpolation: none, low, medium, high, default")
		scale   = flag.Float64("scale", 1, "pixels per point")
		format  = flag.String("format", cfg.OutputFormat, "output format: webp, avif, png, jpeg")
		outDir  = flag.String("out", cfg.DataDir, "output directory")
		workers = flag.Int("workers", cfg.Workers, "concurrent jobs")
		rotate  = flag.Int("rotate", 0, "rotate files in place counter-clockwise by 90, 180, 270 or -90 degrees instead of resizing")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if *rotate != 0 {
		os.Exit(rotateFiles(flag.Args(), *rotate))
	}

	m, err := pipeline.ParseMode(*mode)
	if err != nil {
		log.Fatalf("upright: %v", err)
	}
	q, err := resize.ParseQuality(*quality)
	if err != nil {
		log.Fatalf("upright: %v", err)
	}
	f, err := pipeline.NormalizeFormat(*format)
	if err != nil {
		log.Fatalf("upright: %v", err)
	}

	store := storage.New(*outDir)
	if err := storage.EnsureDir(store.BaseDir); err != nil {
		log.Fatalf("upright: %v", err)
	}
	if n, err := store.Clean(time.Hour); err != nil {
		log.Printf("upright: cleaning temp files: %v", err)
	} else if n > 0 {
		log.Printf("upright: removed %d stale temp files", n)
	}

	opts := pipeline.Options{
		Width:   *width,
		Height:  *height,
		Mode:    m,
		Crop:    *crop,
		Quality: q,
		Scale:   *scale,
		Format:  f,
		Encode: pipeline.EncodeOptions{
			WebPQuality: cfg.WebPQuality,
			AVIFQuality: cfg.AVIFQuality,
			AVIFSpeed:   cfg.AVIFSpeed,
		},
		MaxBytes: cfg.MaxUploadBytes,
	}
	jobs := make([]worker.Job, 0, flag.NArg())
	for _, in := range flag.Args() {
		jobs = append(jobs, worker.Job{Input: in, Options: opts})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	failed := 0
	for _, r := range worker.NewWorker(store, *workers).Run(ctx, jobs) {
		if r.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.Job.Input, r.Err)
			continue
		}
		fmt.Printf("%s -> %s (%dx%d, %d bytes)\n", r.Job.Input, r.Output, r.Width, r.Height, r.Size)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func rotateFiles(paths []string, angle int) int {
	code := 0
	for _, p := range paths {
		w, h, n, err := pipeline.RotateFile(p, angle)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", p, err)
			code = 1
			continue
		}
		fmt.Printf("%s rotated (%dx%d, %d bytes)\n", p, w, h, n)
	}
	return code
}
