package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/matzehuels/molfig/pkg/buildinfo"
	"github.com/matzehuels/molfig/pkg/errors"
	molio "github.com/matzehuels/molfig/pkg/io"
	"github.com/matzehuels/molfig/pkg/pipeline"
)

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	Molecule json.RawMessage `json:"molecule"`
	Options  json.RawMessage `json:"options,omitempty"`
}

// RenderResponse is the body of a successful render.
type RenderResponse struct {
	RequestID string            `json:"request_id"`
	Chemfig   string            `json:"chemfig"`
	Width     float64           `json:"width"`
	Height    float64           `json:"height"`
	Artifacts map[string][]byte `json:"artifacts,omitempty"`
	Cached    bool              `json:"cached"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Current())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req RenderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if len(req.Molecule) == 0 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "request has no molecule"))
		return
	}

	opts := pipeline.DefaultOptions()
	if len(req.Options) > 0 {
		if err := json.Unmarshal(req.Options, &opts); err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidOption, err, "decode options"))
			return
		}
	}
	// Server output is always a complete \chemfig command.
	opts.SubmolName = ""
	opts.ChemfigCommand = true
	opts.Logger = s.logger
	if !hasFormat(opts.Formats, pipeline.FormatTeX) {
		opts.Formats = append([]string{pipeline.FormatTeX}, opts.Formats...)
	}

	g, err := s.runner.DecodeReader(ctx, "request "+RequestID(ctx), bytes.NewReader(req.Molecule), molio.ReadJSON)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(ctx, g, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := RenderResponse{
		RequestID: RequestID(ctx),
		Chemfig:   string(result.Artifacts[pipeline.FormatTeX]),
		Width:     result.Stats.Width,
		Height:    result.Stats.Height,
		Cached:    result.CacheInfo.RenderHit,
	}
	for format, data := range result.Artifacts {
		if format == pipeline.FormatTeX {
			continue
		}
		if resp.Artifacts == nil {
			resp.Artifacts = make(map[string][]byte)
		}
		resp.Artifacts[format] = data
	}
	writeJSON(w, http.StatusOK, resp)
}

func hasFormat(formats []string, want string) bool {
	for _, f := range formats {
		if f == want {
			return true
		}
	}
	return false
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidAtom, errors.ErrCodeInvalidBond,
		errors.ErrCodeInvalidRange, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidOption,
		errors.ErrCodeInvalidSubmol, errors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case errors.ErrCodeToolkit:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error("render failed", "id", RequestID(r.Context()), "error", err)
		code = errors.ErrCodeInternal
		msg = "internal server error"
	}
	writeJSON(w, status, ErrorResponse{
		Code:      code,
		Message:   msg,
		RequestID: RequestID(r.Context()),
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}
