package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/raviminds/estate-crm/internal/entity"
	"github.com/raviminds/estate-crm/internal/infra/fileparse"
	"github.com/raviminds/estate-crm/internal/infra/http/middleware"
	"github.com/raviminds/estate-crm/internal/usecase"
)

const maxImportSize = 20 << 20 // 20 MiB

type ImportHandler struct {
	ImportUC *usecase.ImportLeadsUseCase
	Logger   *zap.Logger
}

func NewImportHandler(importUC *usecase.ImportLeadsUseCase, logger *zap.Logger) *ImportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportHandler{ImportUC: importUC, Logger: logger}
}

// Handle runs POST /leads/import: multipart "file" plus "companyId". The
// upload is spooled to a temp file that is removed on every exit path.
func (h *ImportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	companyID := r.FormValue("companyId")
	if companyID == "" {
		writeError(w, http.StatusBadRequest, "companyId is required (select a company first)")
		return
	}

	tmpPath, err := spoolUpload(file, header.Filename)
	if err != nil {
		h.Logger.Error("spool upload failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	defer os.Remove(tmpPath)

	report, err := h.ImportUC.Execute(r.Context(), usecase.ImportInput{
		CompanyID:   companyID,
		FilePath:    tmpPath,
		Filename:    header.Filename,
		CreatedBy:   r.FormValue("createdBy"),
		NotifyEmail: r.FormValue("notifyEmail"),
	})
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrCompanyNotFound):
			writeError(w, http.StatusNotFound, "company not found")
		case errors.Is(err, fileparse.ErrUnsupportedKind):
			writeError(w, http.StatusBadRequest, "unsupported file type, use CSV/XLS/XLSX")
		default:
			h.Logger.Error("import failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "file parsing failed")
		}
		return
	}

	middleware.RecordImportRows("created", report.Created)
	middleware.RecordImportRows("skipped", report.Skipped)
	middleware.RecordImportRows("error", report.Errors)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"summary":     report,
		"skippedRows": report.SkippedRows,
	})
}

// spoolUpload copies the multipart part to a temp file, keeping the original
// extension so the importer can detect the kind.
func spoolUpload(src io.Reader, filename string) (string, error) {
	tmp, err := os.CreateTemp("", "lead-import-*"+filepath.Ext(filename))
	if err != nil {
		return "", err
	}
	defer tmp.Close()

	if _, err := io.Copy(tmp, src); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
