// Command roadmark computes road markings for centerlines read from a
// GeoJSON file.
//
// Usage:
//
//	roadmark -in roads.geojson -subject main -kind crosswalk -out marking.geojson
//	roadmark -in roads.geojson -all -png preview.png
//	roadmark -serve localhost:8080
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path"
	"runtime"
	"strings"
	"syscall"
	"time"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"seehuhn.de/go/roadmark"
	"seehuhn.de/go/roadmark/exchange"
	"seehuhn.de/go/roadmark/marking"
	"seehuhn.de/go/roadmark/preview"
	"seehuhn.de/go/roadmark/sample"
	"seehuhn.de/go/roadmark/server"
)

var (
	inFile     = flag.String("in", "", "GeoJSON file with road centerlines (default stdin)")
	subjectID  = flag.String("subject", "", "ID of the road to mark (default: first road)")
	allRoads   = flag.Bool("all", false, "mark every road in the input")
	configFile = flag.String("config", "", "JSON configuration file")
	kind       = flag.String("kind", "", "marking kind [solid, dashed, crosswalk, guide]")
	width      = flag.Float64("width", 0, "line width in metres (0 keeps the configured value)")
	spacing    = flag.Float64("spacing", -1, "spacing in metres (negative keeps the configured value)")
	seed       = flag.Uint64("seed", 0, "RANSAC seed (0 keeps the configured value)")
	fit        = flag.Bool("fit", false, "follow only the points supporting the fitted line")

	outFile = flag.String("out", "", "output GeoJSON file (default stdout)")
	pngFile = flag.String("png", "", "write a PNG preview")
	pdfFile = flag.String("pdf", "", "write a PDF preview")

	serveAddr = flag.String("serve", "", "run the HTTP server on this address")
	logLevel  = flag.String("log-level", "info", "log level [debug, info, warn, error, fatal, panic]")
	logFile   = flag.String("log-file", "", "also write the log to this file, with rotation")

	LOG_LEVELS = map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"panic": logrus.PanicLevel,
	}
)

func main() {
	flag.Parse()
	log := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %s", err)
	}

	if *serveAddr != "" {
		if err := serve(cfg, log); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := run(cfg, log); err != nil {
		log.Fatal(err)
	}
}

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&formatter.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.000",
		HideKeys:        false,
		CallerFirst:     true,
		CustomCallerFormatter: func(f *runtime.Frame) string {
			s := strings.Split(f.Function, ".")
			return fmt.Sprintf(" [%s:%d][%s()]", path.Base(f.File), f.Line, s[len(s)-1])
		},
	})
	if level, ok := LOG_LEVELS[*logLevel]; ok {
		log.SetLevel(level)
	} else {
		log.Fatalf("invalid log level: %s", *logLevel)
	}

	if *logFile != "" {
		log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   *logFile,
			LocalTime:  true,
			Compress:   true,
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 3,
		}))
		log.SetReportCaller(true)
	}
	return log
}

// loadConfig reads the configuration file, if any, and applies the
// command line overrides.
func loadConfig() (roadmark.Config, error) {
	cfg := roadmark.DefaultConfig()
	if *configFile != "" {
		var err error
		cfg, err = roadmark.LoadConfig(*configFile)
		if err != nil {
			return cfg, err
		}
	}

	if *kind != "" {
		k, err := marking.ParseKind(*kind)
		if err != nil {
			return cfg, err
		}
		cfg.Kind = k
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *spacing >= 0 {
		cfg.Spacing = *spacing
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *fit {
		cfg.Fit = true
	}
	return cfg, cfg.Validate()
}

func run(cfg roadmark.Config, log *logrus.Logger) error {
	in := io.Reader(os.Stdin)
	if *inFile != "" {
		f, err := os.Open(*inFile)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	paths, err := exchange.ReadPaths(in)
	if err != nil {
		return err
	}

	g, err := roadmark.New(cfg, log)
	if err != nil {
		return err
	}

	var results []roadmark.Result
	if *allRoads {
		results, err = g.GenerateAll(context.Background(), paths, nil)
		if err != nil {
			return err
		}
	} else {
		var subject sample.Path
		var others []sample.Path
		subject, others, err = exchange.Split(paths, *subjectID)
		if err != nil {
			return err
		}
		results = []roadmark.Result{g.Generate(subject, others)}
	}

	markings := make([]marking.Marking, 0, len(results))
	for i, res := range results {
		if res.Marking.IsEmpty() {
			log.WithField("index", i).Warn("no marking generated")
			continue
		}
		markings = append(markings, res.Marking)
	}
	log.WithFields(logrus.Fields{
		"roads":    len(results),
		"markings": len(markings),
	}).Info("done")

	if err := writeGeoJSON(markings); err != nil {
		return err
	}

	opt := preview.DefaultOptions()
	if *pngFile != "" {
		if err := writePNG(*pngFile, markings, opt); err != nil {
			return err
		}
	}
	if *pdfFile != "" {
		if err := preview.WritePDF(*pdfFile, markings, opt); err != nil {
			return err
		}
	}
	return nil
}

func writeGeoJSON(markings []marking.Marking) error {
	if *outFile == "" {
		return encodeGeoJSON(os.Stdout, markings)
	}

	f, err := os.Create(*outFile)
	if err != nil {
		return err
	}
	if err := encodeGeoJSON(f, markings); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encodeGeoJSON(w io.Writer, markings []marking.Marking) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exchange.FeatureCollection(markings...))
}

func writePNG(fileName string, markings []marking.Marking, opt preview.Options) error {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	if err := png.Encode(f, preview.Raster(markings, opt)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func serve(cfg roadmark.Config, log *logrus.Logger) error {
	h, err := server.New(cfg, log)
	if err != nil {
		return err
	}
	s := &http.Server{
		Addr:              *serveAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Infof("server listening at %v", s.Addr)
		errc <- s.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}
