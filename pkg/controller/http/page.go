package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskdss/pkg/domain/model"
	"github.com/secmon-lab/riskdss/pkg/domain/types"
	"github.com/secmon-lab/riskdss/pkg/utils/errutil"
	"github.com/secmon-lab/riskdss/pkg/utils/safe"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	noCriticalMessage = "No critical risks detected"
	criticalMessage   = "Immediate attention required"
)

type viewOption struct {
	Name     string
	Slug     string
	Selected bool
}

type pageData struct {
	Title    string
	Caption  string
	Controls controls
	Views    []viewOption
	Error    string
	Overview *model.OverviewView
	Analysis *model.AnalysisView
	Critical *model.CriticalView
	Limits   limits
}

type limits struct {
	MaxThreshold int
	MaxReduction int
}

func parsePageTemplate() (*template.Template, error) {
	funcs := template.FuncMap{
		"score": func(v float64) string {
			return strconv.FormatFloat(v, 'f', 2, 64)
		},
		"noCritical": func() string { return noCriticalMessage },
		"critical":   func() string { return criticalMessage },
	}

	tmpl, err := template.New("dashboard.html").Funcs(funcs).ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse dashboard template")
	}
	return tmpl, nil
}

// pageHandler renders the dashboard. Every control change submits the form,
// so each request is one full recomputation for the chosen view.
func (s *Server) pageHandler(w http.ResponseWriter, r *http.Request) {
	cfg := s.dashboard.Config()
	data := pageData{
		Title:   cfg.Title,
		Caption: cfg.Caption,
		Limits: limits{
			MaxThreshold: model.MaxThreshold,
			MaxReduction: model.MaxReductionPct,
		},
	}

	view, params, err := parseQuery(r, cfg)
	if err != nil {
		if errutil.StatusCode(err) != http.StatusBadRequest {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		errutil.Log(r.Context(), err, http.StatusBadRequest)
		view = cfg.DefaultView.Normalize()
		data.Controls = newControls(view, cfg.DefaultParameters)
		data.Views = viewOptions(view)
		data.Error = err.Error()
		s.renderPage(w, r, http.StatusBadRequest, data)
		return
	}

	data.Controls = newControls(view, params)
	data.Views = viewOptions(view)

	switch view {
	case types.ViewModeAnalysis:
		data.Analysis, err = s.dashboard.Analysis(r.Context(), params)
	case types.ViewModeCritical:
		data.Critical, err = s.dashboard.Critical(r.Context(), params)
	default:
		data.Overview, err = s.dashboard.Overview(r.Context(), params)
	}
	if err != nil {
		status := errutil.StatusCode(err)
		if status != http.StatusBadRequest {
			errutil.HandleHTTP(r.Context(), w, err)
			return
		}
		errutil.Log(r.Context(), err, status)
		data.Error = err.Error()
		s.renderPage(w, r, status, data)
		return
	}

	s.renderPage(w, r, http.StatusOK, data)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to render dashboard page"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, buf.Bytes())
}

func viewOptions(selected types.ViewMode) []viewOption {
	modes := types.AllViewModes()
	options := make([]viewOption, len(modes))
	for i, m := range modes {
		options[i] = viewOption{
			Name:     m.String(),
			Slug:     m.Slug(),
			Selected: m == selected,
		}
	}
	return options
}
