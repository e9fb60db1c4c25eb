package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/pgavlin/lilraster/internal/bitmap"
	"github.com/pgavlin/lilraster/internal/driveboard"
	"github.com/pgavlin/lilraster/internal/engrave"
	"github.com/pgavlin/lilraster/internal/laser"
	"github.com/pgavlin/lilraster/internal/source"
)

// barcodeSize is the pixel size barcodes are generated at before rastering.
const barcodeSize = 512

type imageFlags struct {
	file     string
	barcode  string
	text     string
	font     string
	textSize float64
	svgWidth int
}

func loadImage(ctx context.Context, flags imageFlags) (image.Image, error) {
	count := 0
	for _, v := range []string{flags.file, flags.barcode, flags.text} {
		if v != "" {
			count++
		}
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of -file, -barcode and -text must be specified")
	}

	switch {
	case flags.barcode != "":
		kind, content, ok := strings.Cut(flags.barcode, ":")
		if !ok {
			return nil, fmt.Errorf("-barcode must have the form kind:content")
		}
		return source.Barcode(kind, content, barcodeSize)
	case flags.text != "":
		var fontData []byte
		if flags.font != "" {
			data, err := source.LoadFont(ctx, flags.font)
			if err != nil {
				return nil, err
			}
			fontData = data
		}
		return source.Text(strings.ReplaceAll(flags.text, `\n`, "\n"), fontData, flags.textSize)
	default:
		return source.Open(ctx, flags.file, source.Options{SVGWidth: flags.svgWidth})
	}
}

func main() {
	settings := laser.DefaultSettings
	flag.Float64Var(&settings.Width, "width", settings.Width, "the engraved width in mm")
	flag.Float64Var(&settings.EnergyDensity, "energy-density", settings.EnergyDensity, "the energy delivered to black regions, in J/mm^2")
	flag.Float64Var(&settings.PPMM, "ppmm", settings.PPMM, "the requested resolution in dots per mm")
	flag.Float64Var(&settings.LeadIn, "lead-in", settings.LeadIn, "the requested lead-in distance in mm")
	flag.Float64Var(&settings.PosX, "pos-x", settings.PosX, "the X position of the top-left corner in mm")
	flag.Float64Var(&settings.PosY, "pos-y", settings.PosY, "the Y position of the top-left corner in mm")
	flag.BoolVar(&settings.Bidirectional, "bidirectional", settings.Bidirectional, "engrave alternate lines in reverse")
	flag.BoolVar(&settings.SkipEmpty, "skip-empty", settings.SkipEmpty, "trim blank margins from each line")
	flag.BoolVar(&settings.Invert, "invert", settings.Invert, "fire on light instead of dark regions")
	flag.BoolVar(&settings.Binary, "binary", settings.Binary, "threshold the image instead of dithering it")
	flag.Float64Var(&settings.MaxFeedrate, "max-feedrate", settings.MaxFeedrate, "the maximum raster feedrate in mm/min")
	flag.Float64Var(&settings.MaxIntensity, "max-intensity", settings.MaxIntensity, "the maximum laser duty cycle in percent")

	var images imageFlags
	flag.StringVar(&images.file, "file", "", "the path or URL of the image to engrave, if any")
	flag.StringVar(&images.barcode, "barcode", "", "a barcode to engrave, as kind:content (qr or datamatrix)")
	flag.StringVar(&images.text, "text", "", "a text label to engrave, if any")
	flag.StringVar(&images.font, "font", "", "the path or URL of the label font, if any")
	flag.Float64Var(&images.textSize, "text-size", 24, "the label size in points")
	flag.IntVar(&images.svgWidth, "svg-width", 0, "the pixel width to render SVG documents at")

	var machinePath, ditherName, port, outputPath, previewPath, serveAddress string
	var previewScale int
	var simulate bool
	flag.StringVar(&machinePath, "machine", "", "the path to the machine profile, if any")
	flag.StringVar(&ditherName, "dither", "", fmt.Sprintf("the ditherer to use (one of %v)", bitmap.DithererNames()))
	flag.StringVar(&port, "port", "", "the serial port of the driveboard, if any")
	flag.StringVar(&outputPath, "output", "", "the path to write the program to, if any")
	flag.StringVar(&previewPath, "preview", "", "the path to write a PNG preview to, if any")
	flag.IntVar(&previewScale, "preview-scale", 2, "the preview size in pixels per dot")
	flag.StringVar(&serveAddress, "serve", "", "the address to serve on, if any")
	flag.BoolVar(&simulate, "simulate", false, "simulate the program and report its motion")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	machine := laser.Lasersaur
	if machinePath != "" {
		m, err := loadMachine(machinePath)
		if err != nil {
			log.Fatalf("error loading machine profile: %v", err)
		}
		machine = m
	}

	if _, err := bitmap.NewDitherer(ditherName); err != nil {
		log.Fatalf("%v", err)
	}
	newDitherer := func() bitmap.Ditherer {
		d, _ := bitmap.NewDitherer(ditherName)
		return d
	}

	img, err := loadImage(ctx, images)
	if err != nil {
		log.Fatalf("error loading image: %v", err)
	}

	w, err := openSink(port, outputPath, machine.BaudRate)
	if err != nil {
		log.Fatalf("error opening output: %v", err)
	}

	if serveAddress != "" {
		s := &server{
			img:      img,
			settings: settings,
			machine:  machine,
			runner:   &engrave.Runner{NewDitherer: newDitherer},
			sink:     w,
		}
		err := serve(serveAddress, s)
		w.Close()
		log.Fatalf("serve error: %v", err)
	}

	job, err := engrave.Prepare(ctx, img, settings, machine, newDitherer())
	if err != nil {
		log.Fatalf("error preparing job: %v", err)
	}
	newReport(job).log()

	if previewPath != "" {
		if err := writePreview(previewPath, job.Pulses, previewScale); err != nil {
			log.Fatalf("error writing preview: %v", err)
		}
	}

	program, err := job.Program()
	if err != nil {
		log.Fatalf("error generating program: %v", err)
	}
	if simulate {
		logSimulation(driveboard.Simulate(program, machine.TravelFeedrate))
	}

	if err = driveboard.New(w).Run(program, machine.TravelFeedrate); err != nil {
		log.Fatalf("error sending program: %v", err)
	}
	if err = w.Close(); err != nil {
		log.Fatalf("error closing output: %v", err)
	}
}
