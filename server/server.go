// Package server provides an HTTP front end for the road marking
// generator.
//
// Routes:
//
//	POST /v1/markings?subject=<id>     GeoJSON paths in, GeoJSON marking out
//	POST /v1/preview.png?subject=<id>  GeoJSON paths in, PNG preview out
//	GET  /healthz
//
// The query parameters kind, width, spacing and seed override the base
// configuration for a single request.
package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"seehuhn.de/go/roadmark"
	"seehuhn.de/go/roadmark/exchange"
	"seehuhn.de/go/roadmark/marking"
	"seehuhn.de/go/roadmark/preview"
)

const (
	maxBodySize       = 8 << 20 // bytes of uploaded GeoJSON
	maxCachedPreviews = 256
)

// Server answers marking requests.
type Server struct {
	cfg     roadmark.Config
	opt     preview.Options
	log     logrus.FieldLogger
	cache   *preview.Cache
	handler http.Handler
}

// New returns a server using cfg as the base configuration.
func New(cfg roadmark.Config, log logrus.FieldLogger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	s := &Server{
		cfg:   cfg,
		opt:   preview.DefaultOptions(),
		log:   log,
		cache: preview.NewCache(),
	}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/markings", s.handleMarkings).Methods(http.MethodPost)
	r.HandleFunc("/v1/preview.png", s.handlePreview).Methods(http.MethodPost)
	s.handler = r
	return s, nil
}

// ServeHTTP implements [http.Handler].
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMarkings(w http.ResponseWriter, r *http.Request) {
	_, res, err := s.generate(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("X-Junction-Type", res.Junction.Type.String())
	w.Header().Set("X-Fit-Converged", strconv.FormatBool(res.Fit.Converged))
	s.writeJSON(w, http.StatusOK, exchange.FeatureCollection(res.Marking))
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	body, res, err := s.generate(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if s.cache.Len() >= maxCachedPreviews {
		s.cache.Invalidate("")
	}
	sum := sha256.Sum256(body)
	key := preview.Key(r.URL.Query().Get("subject"), hex.EncodeToString(sum[:])+"?"+r.URL.RawQuery)
	img := s.cache.Get(key, func() *image.RGBA {
		return preview.Raster([]marking.Marking{res.Marking}, s.opt)
	})

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Junction-Type", res.Junction.Type.String())
	if err := png.Encode(w, img); err != nil {
		s.log.WithError(err).Warn("writing preview failed")
	}
}

// generate decodes the request and runs the generator.  It returns the
// raw request body together with the result.
func (s *Server) generate(w http.ResponseWriter, r *http.Request) ([]byte, roadmark.Result, error) {
	q := r.URL.Query()
	cfg, err := s.override(q)
	if err != nil {
		return nil, roadmark.Result{}, badRequest(err)
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return nil, roadmark.Result{}, badRequest(err)
	}
	paths, err := exchange.ReadPaths(bytes.NewReader(body))
	if err != nil {
		return nil, roadmark.Result{}, badRequest(err)
	}
	subject, others, err := exchange.Split(paths, q.Get("subject"))
	if err != nil {
		return nil, roadmark.Result{}, err
	}

	log := s.log.WithFields(logrus.Fields{
		"subject": subject.ID,
		"paths":   len(paths),
		"kind":    cfg.Kind,
	})
	g, err := roadmark.New(cfg, log)
	if err != nil {
		return nil, roadmark.Result{}, badRequest(err)
	}
	res := g.Generate(subject, others)
	log.WithField("placements", len(res.Marking.Placements)).Info("marking generated")
	return body, res, nil
}

// override applies the query parameters to the base configuration.
func (s *Server) override(q url.Values) (roadmark.Config, error) {
	cfg := s.cfg
	if v := q.Get("kind"); v != "" {
		kind, err := marking.ParseKind(v)
		if err != nil {
			return cfg, err
		}
		cfg.Kind = kind
	}
	for name, dst := range map[string]*float64{"width": &cfg.Width, "spacing": &cfg.Spacing} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s %q: %w", name, v, err)
		}
		*dst = x
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid seed %q: %w", v, err)
		}
		cfg.Seed = seed
	}
	return cfg, cfg.Validate()
}

type requestError struct {
	err error
}

func (e requestError) Error() string { return e.err.Error() }
func (e requestError) Unwrap() error { return e.err }

func badRequest(err error) error {
	return requestError{err: err}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var reqErr requestError
	switch {
	case errors.Is(err, exchange.ErrUnknownPath):
		status = http.StatusNotFound
	case errors.As(err, &reqErr):
		status = http.StatusBadRequest
	}
	s.log.WithError(err).WithField("status", status).Debug("request failed")
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Warn("writing response failed")
	}
}
