package webpool

import (
	"github.com/indigo-web/webpool/http"
	"github.com/indigo-web/webpool/pages"
	"github.com/indigo-web/webpool/router/inbuilt"
	"github.com/indigo-web/webpool/router/static"
)

// DefaultRouter serves files from the configured static root and the generated pages:
// the home page at /, /about, /status and its JSON counterpart at /api/status.
func (a *App) DefaultRouter() *inbuilt.Router {
	return inbuilt.New().
		Logger(a.logger).
		Static(static.New(a.cfg.Static.Root)).
		Route("/", a.home).
		Route("/about", about).
		Route("/status", a.status).
		Route("/api/status", a.statusJSON)
}

func (a *App) home(*http.Request) (*http.Response, error) {
	body, err := pages.Home(a.Port())
	if err != nil {
		return nil, err
	}

	return http.NewResponse().Bytes(body), nil
}

func about(*http.Request) (*http.Response, error) {
	body, err := pages.About()
	if err != nil {
		return nil, err
	}

	return http.NewResponse().Bytes(body), nil
}

func (a *App) status(*http.Request) (*http.Response, error) {
	body, err := pages.StatusPage(a.statusInfo())
	if err != nil {
		return nil, err
	}

	return http.NewResponse().Bytes(body), nil
}

func (a *App) statusJSON(*http.Request) (*http.Response, error) {
	return http.NewResponse().JSON(a.statusInfo())
}

func (a *App) statusInfo() pages.Status {
	stats := a.Stats()

	return pages.Status{
		Port:      a.Port(),
		State:     stats.State.String(),
		Workers:   stats.Workers,
		Live:      stats.Live,
		Queued:    stats.Queued,
		Completed: stats.Completed,
		Failed:    stats.Failed,
	}
}
