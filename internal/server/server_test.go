package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexiusacademia/gotimber/internal/ec5"
	"github.com/alexiusacademia/gotimber/internal/report"
	"github.com/xuri/excelize/v2"
)

func newTestRouter() http.Handler {
	return NewRouter(&Handler{Meta: report.Meta{Author: "Default Author"}}, nil)
}

func do(t *testing.T, h http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestCheckDefaults(t *testing.T) {
	rec := do(t, newTestRouter(), "POST", "/api/check", `{}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}

	var resp CheckResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Applied != 3000 || !resp.Compliant {
		t.Errorf("applied = %g, compliant = %v", resp.Applied, resp.Compliant)
	}
	screws := resp.Families[ec5.Screws]
	if screws.Result == nil || screws.Error != "" {
		t.Fatalf("screws = %+v", screws)
	}
	if u := screws.Utilization; u < 32.8 || u > 32.9 {
		t.Errorf("screw utilization = %g, want ≈32.83", u)
	}
}

func TestCheckReportsFamilyErrors(t *testing.T) {
	rec := do(t, newTestRouter(), "POST", "/api/check", `{"bolts": {"diameter": 12, "class": "12.9", "quantity": 4}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var raw struct {
		Families map[string]map[string]any `json:"families"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	bolts := raw.Families["bolts"]
	if bolts["kind"] != "unknown_grade" || bolts["field"] != "bolts.class" {
		t.Errorf("bolts = %v", bolts)
	}
	if _, ok := bolts["capacity"]; ok {
		t.Error("failed family should carry no capacity")
	}
	if _, ok := raw.Families["nails"]["capacity"]; !ok {
		t.Error("nails should still be computed")
	}
}

func TestCheckRejectsBadPayload(t *testing.T) {
	router := newTestRouter()
	for _, body := range []string{`{`, `{"wood": "C24"}`} {
		if rec := do(t, router, "POST", "/api/check", body); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, rec.Code)
		}
	}
	for _, req := range []struct{ method, target string }{
		{"GET", "/api/check"},
		{"DELETE", "/api/report"},
		{"POST", "/api/tables/wood"},
	} {
		rec := do(t, router, req.method, req.target, "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s %s: status = %d, want 405", req.method, req.target, rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("%s %s: content type = %q", req.method, req.target, ct)
		}
	}
	if rec := do(t, router, "GET", "/api/unknown", ""); rec.Code != http.StatusNotFound {
		t.Errorf("GET /api/unknown: status = %d, want 404", rec.Code)
	}
}

func TestReport(t *testing.T) {
	rec := do(t, newTestRouter(), "POST", "/api/report", `{"meta": {"project": "Shed"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("body is not a PDF")
	}
}

func TestTables(t *testing.T) {
	router := newTestRouter()

	rec := do(t, router, "GET", "/api/tables/wood", "")
	var grades []ec5.WoodGrade
	if err := json.Unmarshal(rec.Body.Bytes(), &grades); err != nil || len(grades) != 10 {
		t.Errorf("wood table: %d grades, err %v", len(grades), err)
	}

	rec = do(t, router, "GET", "/api/tables/kmod", "")
	var kmod []KmodEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &kmod); err != nil || len(kmod) != 15 {
		t.Errorf("kmod table: %d entries, err %v", len(kmod), err)
	}

	rec = do(t, router, "GET", "/api/tables/spacing", "")
	var spacing map[ec5.Family]ec5.SpacingRequirement
	if err := json.Unmarshal(rec.Body.Bytes(), &spacing); err != nil || spacing[ec5.Bolts].A3t.Base != 80 {
		t.Errorf("spacing table = %+v, err %v", spacing, err)
	}

	if rec := do(t, router, "GET", "/api/tables/steel", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown table: status = %d, want 404", rec.Code)
	}
}

func TestBatchUpload(t *testing.T) {
	f := excelize.NewFile()
	f.SetSheetRow("Sheet1", "A1", &[]any{"wood_grade", "t1"})
	f.SetSheetRow("Sheet1", "A2", &[]any{"C24", 40})
	f.SetSheetRow("Sheet1", "A3", &[]any{"C24", "x"})
	xlsx, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "in.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	part.Write(xlsx.Bytes())
	mw.Close()

	req := httptest.NewRequest("POST", "/api/batch", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	if got := rec.Header().Get("X-Skipped-Rows"); got != "3" {
		t.Errorf("skipped rows = %q, want 3", got)
	}
	out, err := excelize.OpenReader(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()
	rows, _ := out.GetRows("Summary")
	if len(rows) != 4 {
		t.Errorf("summary has %d lines, want 4", len(rows))
	}
}

func TestRateLimit(t *testing.T) {
	router := NewRouter(&Handler{}, NewIPRateLimiter(0.001, 2))

	send := func(addr string) int {
		req := httptest.NewRequest("GET", "/api/tables/bolts", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	// Ports differ between connections of the same client
	for _, addr := range []string{"10.0.0.1:5000", "10.0.0.1:5001"} {
		if code := send(addr); code != http.StatusOK {
			t.Fatalf("request from %s: status = %d", addr, code)
		}
	}
	if code := send("10.0.0.1:5002"); code != http.StatusTooManyRequests {
		t.Errorf("third request: status = %d, want 429", code)
	}
	if code := send("10.0.0.2:5000"); code != http.StatusOK {
		t.Errorf("other client: status = %d", code)
	}

	// Health checks are never limited
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("GET", "/healthz", nil)
		req.RemoteAddr = "10.0.0.1:6000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("healthz: status = %d", rec.Code)
		}
	}
}

func TestLimiterEvictsIdleClients(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.getLimiter("10.0.0.1")
	now = now.Add(5 * time.Minute)
	limiter.getLimiter("10.0.0.2")
	if n := limiter.Clients(); n != 2 {
		t.Fatalf("tracking %d clients, want 2", n)
	}

	now = now.Add(6 * time.Minute)
	if n := limiter.Evict(IdleClientTTL); n != 1 {
		t.Errorf("evicted %d clients, want 1", n)
	}
	if n := limiter.Clients(); n != 1 {
		t.Errorf("tracking %d clients after eviction, want 1", n)
	}

	// An evicted client starts over with a full bucket
	if !limiter.getLimiter("10.0.0.1").Allow() {
		t.Error("returning client should be allowed")
	}
}

func TestRunShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skip("no loopback listener:", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, addr, newTestRouter()) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/healthz")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server did not come up: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
