package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jpkrishna28/mls-point-locator/internal/model"
	"github.com/jpkrishna28/mls-point-locator/internal/store"
)

func testReportHandler() *ReportHandler {
	h := NewReportHandler(store.New([]model.Record{
		{"mls_point_code": "M1", "mls_point_name": "Alpha Godown", "district_name": "X"},
	}))
	h.Now = func() time.Time { return time.Date(2025, 8, 6, 11, 0, 0, 0, time.UTC) }
	return h
}

func downloadPDF(t *testing.T, h *ReportHandler, code string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "admin")
	c.SetParamNames("code")
	c.SetParamValues(code)
	if err := h.DownloadPDF(c); err != nil {
		t.Fatalf("download: %v", err)
	}
	return rec
}

func TestDownloadPDFHeadersAndBody(t *testing.T) {
	h := testReportHandler()
	rec := downloadPDF(t, h, "M1")

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	cd := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(cd, "MLS_Point_M1.pdf") {
		t.Fatalf("content disposition = %q", cd)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("body is not a PDF")
	}
}

func TestDownloadPDFStableUnderPinnedClock(t *testing.T) {
	h := testReportHandler()
	first := downloadPDF(t, h, "M1")
	second := downloadPDF(t, h, "M1")
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Fatalf("same record and clock must produce identical documents")
	}
}

func TestDownloadPDFUnknownCode(t *testing.T) {
	h := testReportHandler()
	rec := downloadPDF(t, h, "NOPE")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", rec.Code)
	}
}
