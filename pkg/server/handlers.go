package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/colgraph/pkg/buildinfo"
	"github.com/matzehuels/colgraph/pkg/dataset"
	"github.com/matzehuels/colgraph/pkg/errors"
	"github.com/matzehuels/colgraph/pkg/pipeline"
	"github.com/matzehuels/colgraph/pkg/render"
	"github.com/matzehuels/colgraph/pkg/settings"
	"github.com/matzehuels/colgraph/pkg/store"
)

// Response headers.
const (
	HeaderRenderID = "X-Render-ID"
	HeaderCache    = "X-Cache"
)

// chartRequest is the body of render and create requests.
type chartRequest struct {
	Dataset  *dataset.Dataset `json:"dataset"`
	Settings json.RawMessage  `json:"settings,omitempty"`
	Options  render.Options   `json:"options"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

type createResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	f := render.FormatSVG
	if q := r.URL.Query().Get("format"); q != "" {
		parsed, err := render.ParseFormat(q)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		f = parsed
	}

	ds, st, opts, err := s.decodeChart(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, ds, st, opts, f)
}

func (s *Server) handleCreateChart(w http.ResponseWriter, r *http.Request) {
	ds, st, opts, err := s.decodeChart(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := ds.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	c := store.NewChart(ds, st, opts)
	if err := s.store.Save(r.Context(), c); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/v1/charts/"+c.ID+"/svg")
	writeJSON(w, http.StatusCreated, createResponse{ID: c.ID})
}

func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateChartID(id); err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "chart %s not found", id))
		return
	}
	f, err := render.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	c, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.render(w, r, c.Dataset, c.Settings, c.Options, f)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, ds *dataset.Dataset, st settings.Settings, opts render.Options, f render.Format) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	result, err := s.runner.Execute(ctx, pipeline.Request{
		Dataset:  ds,
		Settings: st,
		Options:  opts,
		Formats:  []render.Format{f},
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body := result.Artifacts[string(f)]
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set(HeaderRenderID, result.RenderID)
	if result.CacheInfo.RenderHit {
		w.Header().Set(HeaderCache, "hit")
	} else {
		w.Header().Set(HeaderCache, "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// decodeChart reads a chartRequest body. Settings are decoded over the
// defaults; the dataset is required.
func (s *Server) decodeChart(w http.ResponseWriter, r *http.Request) (*dataset.Dataset, settings.Settings, render.Options, error) {
	var req chartRequest
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		return nil, settings.Settings{}, render.Options{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
		}
		return nil, settings.Settings{}, render.Options{}, err
	}
	if req.Dataset == nil {
		return nil, settings.Settings{}, render.Options{}, errors.New(errors.ErrCodeInvalidInput, "dataset is required")
	}
	st, err := settings.DecodeJSON(req.Settings)
	if err != nil {
		return nil, settings.Settings{}, render.Options{}, err
	}
	return req.Dataset, st, req.Options, nil
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// StatusFor maps an error to an HTTP status code.
func StatusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidSettings,
		errors.ErrCodeInvalidDataset, errors.ErrCodeInvalidOutput:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeDomain:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := string(errors.GetCode(err))
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", middleware.GetReqID(r.Context()))
		code = string(errors.ErrCodeInternal)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: errorDetail{
		Code:      code,
		Message:   msg,
		RequestID: middleware.GetReqID(r.Context()),
	}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
