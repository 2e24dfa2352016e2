package webui

import (
	"net/http"

	"github.com/davecgh/go-spew/spew"
)

type debugData struct {
	Title string
	Pre   string
}

// debugIndexHandler dumps run store state for inspection during development.
// The route is not registered when Env is production.
func (ui *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	payload := struct {
		Config    any
		Retention string
		Runs      any
	}{
		Config:    ui.Config,
		Retention: ui.Runs.Retention().String(),
		Runs:      ui.Runs.Snapshot(),
	}

	ui.render(w, http.StatusOK, "debug_index.html", debugData{
		Title: "Run Store",
		Pre:   spew.Sdump(payload),
	})
}
