package webui

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/julienschmidt/httprouter"

	"reportengine.dev/internal/dataset"
	"reportengine.dev/internal/logging"
	"reportengine.dev/internal/report"
	"reportengine.dev/internal/runstore"
)

// formPage feeds the upload form template; Message carries error text on the
// 400 path.
type formPage struct {
	Message string
}

// successPage feeds the post-generate page.
type successPage struct {
	RunID   string
	Summary dataset.Summary
}

func (ui *WebUI) indexHandler(w http.ResponseWriter, r *http.Request) {
	ui.render(w, http.StatusOK, "index.html", formPage{})
}

func (ui *WebUI) templateHandler(w http.ResponseWriter, r *http.Request) {
	data, err := ui.Runs.Template()
	if err != nil {
		ui.Logger.Error("failed to serve template csv", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="template.csv"`)
	if _, err := w.Write(data); err != nil {
		ui.Logger.Error("failed to write template csv", "error", err)
	}
}

func (ui *WebUI) generateHandler(w http.ResponseWriter, r *http.Request) {
	// Piggyback expired-run cleanup on generate traffic; a failed sweep never
	// blocks report generation.
	if deleted, err := ui.Runs.Sweep(); err != nil {
		ui.Logger.Warn("run sweep failed", "error", err)
	} else if deleted > 0 {
		ui.Logger.Info("swept expired runs", "deleted", deleted)
	}

	r.Body = http.MaxBytesReader(w, r.Body, ui.Config.MaxUploadBytes)
	if err := r.ParseMultipartForm(ui.Config.MaxUploadBytes); err != nil {
		ui.render(w, http.StatusBadRequest, "index.html", formPage{
			Message: fmt.Sprintf("Your upload is too large. The limit is %s.", formatLimit(ui.Config.MaxUploadBytes)),
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		ui.render(w, http.StatusBadRequest, "index.html", formPage{
			Message: "Please choose a file to upload.",
		})
		return
	}
	defer logging.SafeClose(file, ui.Logger, "close upload")

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		ui.render(w, http.StatusBadRequest, "index.html", formPage{
			Message: "Please upload a .csv file.",
		})
		return
	}

	run, err := ui.Runs.Create()
	if err != nil {
		ui.serverError(w, "failed to create run", err)
		return
	}

	if err := saveUpload(file, run.InputPath()); err != nil {
		ui.serverError(w, "failed to store upload", err)
		return
	}

	opts := report.Options{
		Title:   strings.TrimSpace(r.FormValue("report_title")),
		Company: strings.TrimSpace(r.FormValue("company_name")),
	}

	table, summary, err := report.Build(run.InputPath(), run.ReportPath(), opts)
	if err != nil {
		var derr *dataset.Error
		if errors.As(err, &derr) {
			ui.render(w, http.StatusBadRequest, "index.html", formPage{Message: derr.Friendly()})
			return
		}
		ui.serverError(w, "failed to build report", err)
		return
	}

	if err := report.WriteWorkbook(run.WorkbookPath(), table, summary); err != nil {
		// The PDF is the primary artifact; a workbook failure degrades the
		// run rather than failing it.
		ui.Logger.Error("failed to write results workbook", "run_id", run.ID, "error", err)
	}

	ui.Logger.Info("report generated",
		"run_id", run.ID,
		"total", summary.Total,
		"verdict", string(summary.OverallVerdict))

	ui.render(w, http.StatusOK, "success.html", successPage{RunID: run.ID, Summary: summary})
}

func (ui *WebUI) downloadHandler(w http.ResponseWriter, r *http.Request) {
	ui.serveArtifact(w, r, func(run runstore.Run) (string, string, string) {
		return run.ReportPath(), "application/pdf", "report.pdf"
	})
}

func (ui *WebUI) workbookHandler(w http.ResponseWriter, r *http.Request) {
	ui.serveArtifact(w, r, func(run runstore.Run) (string, string, string) {
		return run.WorkbookPath(), "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "results.xlsx"
	})
}

// serveArtifact resolves the run id from the URL and streams one artifact, or
// renders the apology page when the run has expired or never existed.
func (ui *WebUI) serveArtifact(w http.ResponseWriter, r *http.Request, pick func(runstore.Run) (path, contentType, filename string)) {
	params := httprouter.ParamsFromContext(r.Context())
	id := params.ByName("run_id")

	run, err := ui.Runs.Open(id)
	if err != nil {
		ui.render(w, http.StatusNotFound, "notfound.html", nil)
		return
	}

	path, contentType, filename := pick(run)
	if _, err := os.Stat(path); err != nil {
		ui.render(w, http.StatusNotFound, "notfound.html", nil)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	http.ServeFile(w, r, path)
}

func (ui *WebUI) serverError(w http.ResponseWriter, message string, err error) {
	ui.Logger.Error(message, "error", err)
	ui.render(w, http.StatusInternalServerError, "index.html", formPage{
		Message: "Something went wrong while generating your report. Please try again.",
	})
}

func formatLimit(n int64) string {
	if n >= 1<<20 {
		return fmt.Sprintf("%d MiB", n>>20)
	}
	return fmt.Sprintf("%d KiB", n>>10)
}

func saveUpload(src io.Reader, path string) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create input file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("write input file: %w", err)
	}
	return dst.Close()
}
