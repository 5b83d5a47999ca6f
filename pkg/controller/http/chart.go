package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
	"github.com/secmon-lab/riskdss/pkg/service/chart"
	"github.com/secmon-lab/riskdss/pkg/utils/errutil"
	"github.com/secmon-lab/riskdss/pkg/utils/safe"
)

type chartRenderer func(w io.Writer, records []model.DerivedRecord, format chart.Format) error

func (s *Server) chartHandler(render chartRenderer, format chart.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.serveChart(w, r, render, format)
	}
}

func (s *Server) serveChart(w http.ResponseWriter, r *http.Request, render chartRenderer, format chart.Format) {
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

	// render fully before committing the header so a failure can still be a 500
	var buf bytes.Buffer
	if err := render(&buf, records, format); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to render chart"))
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	safe.Write(r.Context(), w, buf.Bytes())
}
