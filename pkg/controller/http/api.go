package http

import (
	"net/http"

	"github.com/secmon-lab/riskdss/pkg/domain/model"
	"github.com/secmon-lab/riskdss/pkg/utils/errutil"
)

func (s *Server) overviewHandler(w http.ResponseWriter, r *http.Request) {
	_, params, err := parseQuery(r, s.dashboard.Config())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	view, err := s.dashboard.Overview(r.Context(), params)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	writeJSON(w, r, view)
}

func (s *Server) analysisHandler(w http.ResponseWriter, r *http.Request) {
	_, params, err := parseQuery(r, s.dashboard.Config())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	view, err := s.dashboard.Analysis(r.Context(), params)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	writeJSON(w, r, view)
}

func (s *Server) criticalHandler(w http.ResponseWriter, r *http.Request) {
	_, params, err := parseQuery(r, s.dashboard.Config())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	view, err := s.dashboard.Critical(r.Context(), params)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	writeJSON(w, r, view)
}

func (s *Server) recordsHandler(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Parameters model.Parameters      `json:"parameters"`
		Records    []model.DerivedRecord `json:"records"`
	}

	_, params, err := parseQuery(r, s.dashboard.Config())
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	records, err := s.dashboard.Records(r.Context(), params)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err)
		return
	}

	writeJSON(w, r, response{Parameters: params, Records: records})
}
