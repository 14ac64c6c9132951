// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lease-lens/internal/analyzer"
	"lease-lens/internal/config"
)

type staticModel struct{}

func (staticModel) Complete(_ context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, "classify ONLY the most important sentences") {
		return `{"high_severity": [{"text": "Failure to pay rent shall result in eviction.", "reason": "eviction"}],
			"medium_severity": [], "low_severity": []}`, nil
	}
	return "Summary text.", nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	a := analyzer.New(cfg, staticModel{}, nil)
	return NewServer(cfg, a, nil, t.TempDir())
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatal(err)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestAnalyze_RejectsUnsupportedExtension(t *testing.T) {
	srv := newTestServer(t)
	buf, contentType := multipartBody(t, "file", "lease.exe", []byte("binary"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyze_RejectsMissingFile(t *testing.T) {
	srv := newTestServer(t)
	buf, contentType := multipartBody(t, "document", "lease.txt", []byte("text"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyze_TextUploadEndToEnd(t *testing.T) {
	srv := newTestServer(t)
	lease := "This agreement is made between the landlord and the tenant for one year.\n\n" +
		"Failure to pay rent shall result in eviction and loss of the deposit amount.\n"
	buf, contentType := multipartBody(t, "file", "lease.txt", []byte(lease))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", buf)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp AnalyzeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.RunID == "" || resp.Result == nil {
		t.Fatal("response missing run id or result")
	}
	if len(resp.Result.High) != 1 {
		t.Errorf("high clauses = %d, want 1", len(resp.Result.High))
	}

	// The highlighted document must be downloadable under the returned URL.
	dl := httptest.NewRequest(http.MethodGet, resp.DocumentURL, nil)
	dlRec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(dlRec, dl)
	if dlRec.Code != http.StatusOK {
		t.Fatalf("download status = %d", dlRec.Code)
	}
	if ct := dlRec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
}

func TestDownload_UnknownRun(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/results/6f1e7a36-1111-2222-3333-444455556666/document", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDownload_InvalidRunID(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/results/not-a-uuid/document", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
