package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jpkrishna28/mls-point-locator/internal/report"
	"github.com/jpkrishna28/mls-point-locator/internal/store"
)

// ReportHandler renders the per-facility PDF. The clock is a field so
// tests can pin the generated_date stamp.
type ReportHandler struct {
	Store *store.FacilityStore
	Now   func() time.Time
}

func NewReportHandler(st *store.FacilityStore) *ReportHandler {
	return &ReportHandler{Store: st, Now: func() time.Time { return time.Now().UTC() }}
}

// DownloadPDF renders the facility report and returns it as an attachment
// named MLS_Point_<code>.pdf. Generation time and the requesting user are
// stamped into the field map before rendering; the generator itself stays
// a pure function of its input.
func (h *ReportHandler) DownloadPDF(c echo.Context) error {
	code := c.Param("code")
	rec, ok := h.Store.GetByCode(code)
	if !ok {
		return notFound(c, code)
	}

	fields := rec.Clone()
	fields["generated_date"] = h.Now().Format("2006-01-02 15:04:05")
	if username, ok := c.Get("username").(string); ok {
		fields["generated_by"] = username
	}

	pdf, err := report.Generate(fields)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "generating PDF failed"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename=MLS_Point_`+code+`.pdf`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}
