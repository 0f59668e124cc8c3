// Package http provides http transport for repair records
package http

import (
	stdhttp "net/http"
	"path/filepath"
	"strings"

	"repairlog/internal/modkit/httpkit"
	perr "repairlog/internal/platform/errors"
	"repairlog/internal/services/api/repairs/domain"
	svc "repairlog/internal/services/api/repairs/service"
)

// maxImportMemory bounds the multipart parse buffer, not the CSV size
const maxImportMemory = 32 << 20

// Register mounts repairs endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// ordered listing with optional ?period=thisMonth|lastMonth|thisYear
	httpkit.Get(r, "/", h.list)

	// manual form entry
	httpkit.PostJSON[domain.ManualEntryInput](r, "/", h.create)

	// bulk CSV import, multipart field "file"
	r.Post("/import", httpkit.Call(h.importCSV))
}

type handlers struct{ svc svc.Service }

// @Summary List repair records
// @Tags Repairs
// @Produce json
// @Param period query string false "thisMonth, lastMonth or thisYear"
// @Success 200 {array} domain.RepairRecord "ok"
// @Router /repairs [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context(), r.URL.Query().Get("period"))
}

// @Summary Log one repair sale manually
// @Tags Repairs
// @Accept json
// @Produce json
// @Param payload body domain.ManualEntryInput true "Form state"
// @Success 200 {object} domain.CreateResult "ok"
// @Router /repairs [post]
func (h *handlers) create(r *stdhttp.Request, in domain.ManualEntryInput) (any, error) {
	return h.svc.Create(r.Context(), in)
}

// @Summary Import an eBay order-history CSV
// @Tags Repairs
// @Accept mpfd
// @Produce json
// @Param file formData file true "CSV export, .csv only"
// @Success 200 {object} domain.ImportResult "ok"
// @Router /repairs/import [post]
func (h *handlers) importCSV(r *stdhttp.Request) (any, error) {
	if err := r.ParseMultipartForm(maxImportMemory); err != nil {
		return nil, perr.InvalidArgf("expected multipart form with a csv file")
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		return nil, perr.InvalidArgf("missing csv file field")
	}
	defer func() { _ = file.Close() }()

	if !strings.EqualFold(filepath.Ext(hdr.Filename), ".csv") {
		return nil, perr.InvalidArgf("only .csv files are accepted")
	}

	return h.svc.Import(r.Context(), file)
}
