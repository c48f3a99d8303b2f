package api

import (
	"encoding/json"
	"net/http"

	"github.com/deltaddl/deltaddl/internal/ddl"
	"github.com/deltaddl/deltaddl/internal/ellie"
	"github.com/deltaddl/deltaddl/internal/model"
	"github.com/deltaddl/deltaddl/internal/sanitize"
)

// handleSample returns the bundled example model document.
func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(model.SampleJSON))
}

// handleOptions returns the generation defaults and accepted enum values.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	methods := make([]string, len(sanitize.AllMethods))
	for i, m := range sanitize.AllMethods {
		methods[i] = string(m)
	}

	jsonResponse(w, http.StatusOK, OptionsResponse{
		Defaults:        s.baseOptions(),
		SanitizeMethods: methods,
		ConstraintModes: []string{
			string(ddl.ConstraintAlter),
			string(ddl.ConstraintComments),
			string(ddl.ConstraintNone),
		},
	})
}

// handleGenerate parses the submitted model document and returns the DDL.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if len(req.Document) == 0 {
		errorResponse(w, http.StatusBadRequest, "document is required")
		return
	}

	m, err := model.Parse(req.Document)
	if err != nil {
		errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	gen := ddl.Generator{
		Model:   m,
		Options: req.Options.apply(s.baseOptions()),
		TypeMap: s.typeMap,
	}
	res, err := gen.Generate()
	if err != nil {
		errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	for _, d := range m.Diagnostics {
		s.logger.Warn("model diagnostic", "model", m.Name, "detail", d)
	}

	jsonResponse(w, http.StatusOK, GenerateResponse{
		ModelName: m.Name,
		Filename:  ddl.OutputFilename(m.Name),
		DDL:       res.DDL,
		Warnings:  res.Warnings,
	})
}

// handleFetch retrieves a model document from the Ellie.ai API and returns it
// verbatim, so the client can inspect it before generating.
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	var req FetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.ModelID == "" {
		errorResponse(w, http.StatusBadRequest, "model_id is required")
		return
	}

	env, token := req.Environment, req.Token
	if s.cfg != nil {
		if env == "" {
			env = s.cfg.Ellie.Environment
		}
		if token == "" {
			token = s.cfg.Ellie.Token
		}
	}
	if token == "" {
		errorResponse(w, http.StatusBadRequest, "token is required")
		return
	}

	client := ellie.New(env, token)
	client.BaseURL = s.ellieBaseURL

	body, err := client.FetchModel(r.Context(), req.ModelID)
	if err != nil {
		s.logger.Error("fetch failed", "model_id", req.ModelID, "error", err)
		errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// baseOptions returns the configured generation defaults.
func (s *Server) baseOptions() ddl.Options {
	if s.cfg != nil {
		return s.cfg.Options()
	}
	return ddl.DefaultOptions()
}
