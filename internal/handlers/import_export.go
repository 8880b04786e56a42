package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/models"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/services"
)

// MaxUploadBytes caps an uploaded workbook.
const MaxUploadBytes = 32 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// .xlsx files are zip archives
var zipMagic = []byte("PK\x03\x04")

var errNotXLSX = errors.New("file is not an .xlsx workbook")

type ImportExportHandler struct {
	importer services.ImportService
	exporter services.ExportService
}

func NewImportExportHandler(importer services.ImportService, exporter services.ExportService) *ImportExportHandler {
	return &ImportExportHandler{importer: importer, exporter: exporter}
}

// HandleImport replaces the portfolio with an uploaded workbook.
// @Summary Import workbook
// @Description Upload an .xlsx workbook; categories, assets, snapshots and values are fully replaced
// @Tags import-export
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Workbook (.xlsx)"
// @Success 200 {object} models.ImportResult
// @Failure 400 {object} models.ImportResult
// @Failure 500 {object} models.ImportResult
// @Router /import [post]
func (h *ImportExportHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, failure("导入失败: ", fmt.Errorf("invalid upload: %w", err)))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, failure("导入失败: ", fmt.Errorf("missing file field: %w", err)))
		return
	}
	defer file.Close()

	body, err := sniffXLSX(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, failure("导入失败: ", err))
		return
	}

	result, err := h.importer.ImportWorkbook(r.Context(), body)
	if err != nil {
		writeJSON(w, statusFor(err), result)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// sniffXLSX checks the zip signature without consuming it.
func sniffXLSX(r io.Reader) (io.Reader, error) {
	head := make([]byte, len(zipMagic))
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if !bytes.Equal(head[:n], zipMagic) {
		return nil, errNotXLSX
	}
	return io.MultiReader(bytes.NewReader(head[:n]), r), nil
}

// HandleExport streams the portfolio as a workbook.
// @Summary Export workbook
// @Description Download the portfolio in the import layout with rate and guide sheets
// @Tags import-export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} models.ImportResult
// @Router /export [get]
func (h *ImportExportHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	file, err := h.exporter.ExportWorkbook(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, failure("导出失败: ", err))
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(file.Bytes)))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Bytes)
}

func failure(prefix string, err error) *models.ImportResult {
	return &models.ImportResult{Success: false, Message: prefix + err.Error()}
}
