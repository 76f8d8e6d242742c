package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/meditalks/backend/internal/core/domain"
	"github.com/meditalks/backend/internal/core/ports"
	"github.com/meditalks/backend/internal/core/usecase"
	"github.com/meditalks/backend/internal/culture"
	"github.com/meditalks/backend/internal/observability/metrics"
)

type fakeGenerator struct {
	name      string
	available bool
}

func (f *fakeGenerator) Name() string    { return f.name }
func (f *fakeGenerator) Available() bool { return f.available }
func (f *fakeGenerator) Generate(context.Context, string, ports.GenerateOptions) (string, error) {
	return "", nil
}

type fakeAdapter struct {
	result    domain.AdaptationResult
	gotCtxID  string
	gotMsg    string
	callCount int
}

func (f *fakeAdapter) Adapt(_ context.Context, message, contextID string) domain.AdaptationResult {
	f.callCount++
	f.gotMsg = message
	f.gotCtxID = contextID
	out := f.result
	out.OriginalMessage = message
	out.ContextID = contextID
	return out
}

type fakeExtractor struct {
	result  domain.ExtractionResult
	gotData []byte
}

func (f *fakeExtractor) Extract(_ context.Context, data []byte) domain.ExtractionResult {
	f.gotData = data
	return f.result
}

type fakeAnalyzer struct {
	result  domain.AnalysisResult
	gotText string
	gotCtx  string
	gotLang string
}

func (f *fakeAnalyzer) AnalyzeDocument(_ context.Context, text, contextID, targetLanguage string) domain.AnalysisResult {
	f.gotText = text
	f.gotCtx = contextID
	f.gotLang = targetLanguage
	return f.result
}

func (f *fakeAnalyzer) AnalyzeAndSummarize(_ context.Context, text, _, _ string) domain.AnalysisResult {
	f.gotText = text
	return f.result
}

type panicAdapter struct{}

func (panicAdapter) Adapt(context.Context, string, string) domain.AdaptationResult {
	panic("adapter exploded")
}

type testRouter struct {
	handler   http.Handler
	adapter   *fakeAdapter
	extractor *fakeExtractor
	analyzer  *fakeAnalyzer
	deps      Deps
}

func newTestRouter(t *testing.T, mutate func(*Deps)) *testRouter {
	t.Helper()

	catalog, err := culture.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}

	adapter := &fakeAdapter{result: domain.AdaptationResult{
		AdaptedMessage: "adapted text",
		Source:         "SEA-Lion",
		Timestamp:      time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}}
	extractor := &fakeExtractor{result: domain.ExtractionResult{
		Success:          true,
		Text:             "Take two tablets daily with food.",
		DetectedLanguage: "en",
		WordCount:        6,
		Method:           "mupdf",
	}}
	analyzer := &fakeAnalyzer{result: domain.AnalysisResult{
		Success: true,
		Summary: "Take the medication twice a day.",
		Source:  "SEA-Lion",
	}}

	deps := Deps{
		Logger:         slog.New(slog.DiscardHandler),
		Metrics:        metrics.NewHTTPServerMetrics("test"),
		Validator:      usecase.NewValidator(catalog, 10),
		Adapter:        adapter,
		Extractor:      extractor,
		Analyzer:       analyzer,
		Catalog:        catalog,
		SEALion:        &fakeGenerator{name: "SEA-Lion", available: true},
		Gemini:         &fakeGenerator{name: "Gemini", available: true},
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxUploadBytes: 10 * 1024 * 1024,
	}
	if mutate != nil {
		mutate(&deps)
	}

	return &testRouter{
		handler:   NewRouter(deps).Handler(),
		adapter:   adapter,
		extractor: extractor,
		analyzer:  analyzer,
		deps:      deps,
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func dataField(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", body)
	}
	return data
}

func errorMessage(t *testing.T, body map[string]any) string {
	t.Helper()
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("response has no error object: %v", body)
	}
	msg, _ := errObj["message"].(string)
	return msg
}

func TestRootBanner(t *testing.T) {
	tr := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "MediTalks Backend API" {
		t.Errorf("message = %v", body["message"])
	}
	if body["status"] != "running" {
		t.Errorf("status = %v", body["status"])
	}
	endpoints, _ := body["endpoints"].([]any)
	if len(endpoints) != 5 {
		t.Errorf("endpoints = %v", endpoints)
	}
}

func TestUnknownPathReturnsJSON404(t *testing.T) {
	tr := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	if got := errorMessage(t, body); got != "Endpoint not found" {
		t.Errorf("message = %q", got)
	}
	errObj := body["error"].(map[string]any)
	if errObj["code"] != float64(404) {
		t.Errorf("code = %v, want 404", errObj["code"])
	}
}

func TestHealthReportsProviderAvailability(t *testing.T) {
	tests := []struct {
		name        string
		sealionUp   bool
		geminiUp    bool
		wantPrimary string
	}{
		{"sealion primary", true, true, "SEA-Lion"},
		{"gemini primary when sealion down", false, true, "Gemini"},
		{"gemini primary when both down", false, false, "Gemini"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestRouter(t, func(d *Deps) {
				d.SEALion = &fakeGenerator{name: "SEA-Lion", available: tt.sealionUp}
				d.Gemini = &fakeGenerator{name: "Gemini", available: tt.geminiUp}
			})
			rec := httptest.NewRecorder()
			tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			body := decodeBody(t, rec)
			if body["status"] != "OK" {
				t.Errorf("status = %v", body["status"])
			}
			ai, _ := body["ai_services"].(map[string]any)
			if ai["sealion_available"] != tt.sealionUp {
				t.Errorf("sealion_available = %v, want %v", ai["sealion_available"], tt.sealionUp)
			}
			if ai["gemini_available"] != tt.geminiUp {
				t.Errorf("gemini_available = %v, want %v", ai["gemini_available"], tt.geminiUp)
			}
			if ai["primary_service"] != tt.wantPrimary {
				t.Errorf("primary_service = %v, want %q", ai["primary_service"], tt.wantPrimary)
			}
		})
	}
}

func TestListContextsExcludesGeneralSentinel(t *testing.T) {
	tr := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cultural-adaptation/contexts", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("success = %v", body["success"])
	}
	raw := rec.Body.String()
	if !strings.Contains(raw, "thai-low-literacy") {
		t.Errorf("contexts missing thai-low-literacy: %s", raw)
	}
	if strings.Contains(raw, `"general"`) {
		t.Errorf("contexts list must not include the general sentinel: %s", raw)
	}
}

func postJSON(handler http.Handler, path string, payload any) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGenerateAdaptation(t *testing.T) {
	const validMessage = "Please take your blood pressure medication every morning."

	t.Run("success", func(t *testing.T) {
		tr := newTestRouter(t, nil)
		rec := postJSON(tr.handler, "/api/cultural-adaptation/generate", map[string]string{
			"message": validMessage,
			"context": "thai-low-literacy",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		data := dataField(t, decodeBody(t, rec))
		if data["adaptedMessage"] != "adapted text" {
			t.Errorf("adaptedMessage = %v", data["adaptedMessage"])
		}
		if data["originalMessage"] != validMessage {
			t.Errorf("originalMessage = %v", data["originalMessage"])
		}
		if data["culturalContext"] != "thai-low-literacy" {
			t.Errorf("culturalContext = %v", data["culturalContext"])
		}
		if data["timestamp"] != "2025-03-01T12:00:00Z" {
			t.Errorf("timestamp = %v", data["timestamp"])
		}
		if tr.adapter.callCount != 1 {
			t.Errorf("Adapt called %d times", tr.adapter.callCount)
		}
	})

	t.Run("unrecognized context reaches the adapter", func(t *testing.T) {
		tr := newTestRouter(t, nil)
		rec := postJSON(tr.handler, "/api/cultural-adaptation/generate", map[string]string{
			"message": validMessage,
			"context": "klingon",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		if tr.adapter.gotCtxID != "klingon" {
			t.Errorf("context passed to adapter = %q", tr.adapter.gotCtxID)
		}
	})

	t.Run("general context accepted", func(t *testing.T) {
		tr := newTestRouter(t, nil)
		rec := postJSON(tr.handler, "/api/cultural-adaptation/generate", map[string]string{
			"message": validMessage,
			"context": "general",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		if tr.adapter.gotCtxID != "general" {
			t.Errorf("context passed to adapter = %q", tr.adapter.gotCtxID)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		tr := newTestRouter(t, nil)
		rec := httptest.NewRecorder()
		tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cultural-adaptation/generate", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("status = %d, want 405", rec.Code)
		}
	})

	t.Run("bad request bodies", func(t *testing.T) {
		tests := []struct {
			name    string
			payload any
			wantMsg string
		}{
			{"no body", nil, "No JSON data provided"},
			{"missing message", map[string]string{"context": "thai-low-literacy"}, "Message is required"},
			{"blank message", map[string]string{"message": "   ", "context": "thai-low-literacy"}, "Message is required"},
			{"missing context", map[string]string{"message": validMessage}, "Cultural context is required"},
			{"short message", map[string]string{"message": "short", "context": "thai-low-literacy"}, "Message must be at least 10 characters long"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				tr := newTestRouter(t, nil)
				rec := postJSON(tr.handler, "/api/cultural-adaptation/generate", tt.payload)
				if rec.Code != http.StatusBadRequest {
					t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
				}
				if got := errorMessage(t, decodeBody(t, rec)); got != tt.wantMsg {
					t.Errorf("message = %q, want %q", got, tt.wantMsg)
				}
				if tr.adapter.callCount != 0 {
					t.Errorf("Adapt called on invalid input")
				}
			})
		}
	})
}

// TestGenerateAdaptationFallbackRoundTrip runs the real adaptation use case
// with no providers wired, so the response must be the static template.
func TestGenerateAdaptationFallbackRoundTrip(t *testing.T) {
	const message = "Take your diabetes medication after every meal."

	tr := newTestRouter(t, func(d *Deps) {
		d.Adapter = usecase.NewAdaptMessageUseCase(slog.New(slog.DiscardHandler))
	})

	rec := postJSON(tr.handler, "/api/cultural-adaptation/generate", map[string]string{
		"message": message,
		"context": "malay-traditional",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	data := dataField(t, decodeBody(t, rec))
	want := "Nasihat penting mengenai kesihatan: " + message + "\n\nSila rujuk doktor"
	if data["adaptedMessage"] != want {
		t.Errorf("adaptedMessage = %q, want %q", data["adaptedMessage"], want)
	}

	rec = postJSON(tr.handler, "/api/cultural-adaptation/generate", map[string]string{
		"message": message,
		"context": "general",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	data = dataField(t, decodeBody(t, rec))
	want = "Important health advice: " + message + "\n\nPlease consult with your doctor."
	if data["adaptedMessage"] != want {
		t.Errorf("adaptedMessage = %q, want %q", data["adaptedMessage"], want)
	}

	// Unknown context ids are not rejected; they fall back to the
	// generic English template.
	rec = postJSON(tr.handler, "/api/cultural-adaptation/generate", map[string]string{
		"message": message,
		"context": "klingon-starbase",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	data = dataField(t, decodeBody(t, rec))
	if data["adaptedMessage"] != want {
		t.Errorf("adaptedMessage = %q, want %q", data["adaptedMessage"], want)
	}
	if data["culturalContext"] != "klingon-starbase" {
		t.Errorf("culturalContext = %v", data["culturalContext"])
	}
}

func multipartBody(t *testing.T, fileField, filename string, content []byte, fields map[string]string) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestExtractPDF(t *testing.T) {
	pdfBytes := []byte("%PDF-1.4 fake document body")

	post := func(t *testing.T, handler http.Handler, body io.Reader, contentType string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/extract-pdf", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("success with defaults", func(t *testing.T) {
		tr := newTestRouter(t, nil)
		body, ct := multipartBody(t, "pdf", "notes.pdf", pdfBytes, nil)
		rec := post(t, tr.handler, body, ct)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		data := dataField(t, decodeBody(t, rec))
		if data["summary"] != "Take the medication twice a day." {
			t.Errorf("summary = %v", data["summary"])
		}
		if data["fileName"] != "notes.pdf" {
			t.Errorf("fileName = %v", data["fileName"])
		}
		if data["detectedLanguage"] != "en" {
			t.Errorf("detectedLanguage = %v", data["detectedLanguage"])
		}
		if data["outputLanguage"] != "en" {
			t.Errorf("outputLanguage = %v", data["outputLanguage"])
		}
		if data["culturalContext"] != "general" {
			t.Errorf("culturalContext = %v", data["culturalContext"])
		}
		if data["wordCount"] != float64(6) {
			t.Errorf("wordCount = %v", data["wordCount"])
		}
		if !bytes.Equal(tr.extractor.gotData, pdfBytes) {
			t.Errorf("extractor got %q", tr.extractor.gotData)
		}
		if tr.analyzer.gotText != tr.extractor.result.Text {
			t.Errorf("analyzer got %q", tr.analyzer.gotText)
		}
	})

	t.Run("form fields forwarded", func(t *testing.T) {
		tr := newTestRouter(t, nil)
		body, ct := multipartBody(t, "pdf", "notes.pdf", pdfBytes, map[string]string{
			"context":         "thai-low-literacy",
			"target_language": "th",
		})
		rec := post(t, tr.handler, body, ct)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		data := dataField(t, decodeBody(t, rec))
		if data["culturalContext"] != "thai-low-literacy" {
			t.Errorf("culturalContext = %v", data["culturalContext"])
		}
		if data["outputLanguage"] != "th" {
			t.Errorf("outputLanguage = %v", data["outputLanguage"])
		}
		if tr.analyzer.gotCtx != "thai-low-literacy" || tr.analyzer.gotLang != "th" {
			t.Errorf("analyzer got (%q, %q)", tr.analyzer.gotCtx, tr.analyzer.gotLang)
		}
	})

	t.Run("empty summary replaced", func(t *testing.T) {
		tr := newTestRouter(t, func(d *Deps) {
			d.Analyzer = &fakeAnalyzer{result: domain.AnalysisResult{Success: true, Source: "fallback"}}
		})
		body, ct := multipartBody(t, "pdf", "notes.pdf", pdfBytes, nil)
		rec := post(t, tr.handler, body, ct)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		data := dataField(t, decodeBody(t, rec))
		if data["summary"] != "Content extracted successfully" {
			t.Errorf("summary = %v", data["summary"])
		}
	})

	t.Run("missing file", func(t *testing.T) {
		tr := newTestRouter(t, nil)
		body, ct := multipartBody(t, "pdf", "", nil, map[string]string{"context": "general"})
		rec := post(t, tr.handler, body, ct)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if got := errorMessage(t, decodeBody(t, rec)); got != "No PDF file uploaded" {
			t.Errorf("message = %q", got)
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		tr := newTestRouter(t, nil)
		body, ct := multipartBody(t, "pdf", "notes.docx", pdfBytes, nil)
		rec := post(t, tr.handler, body, ct)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if got := errorMessage(t, decodeBody(t, rec)); got != "Invalid file type. Allowed extensions: .pdf" {
			t.Errorf("message = %q", got)
		}
	})

	t.Run("extraction failure", func(t *testing.T) {
		tr := newTestRouter(t, func(d *Deps) {
			d.Extractor = &fakeExtractor{result: domain.ExtractionResult{
				Success:          false,
				Err:              "Could not extract text from PDF",
				DetectedLanguage: "unknown",
			}}
		})
		body, ct := multipartBody(t, "pdf", "notes.pdf", pdfBytes, nil)
		rec := post(t, tr.handler, body, ct)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		if got := errorMessage(t, decodeBody(t, rec)); got != "PDF extraction failed: Could not extract text from PDF" {
			t.Errorf("message = %q", got)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		tr := newTestRouter(t, nil)
		rec := httptest.NewRecorder()
		tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/extract-pdf", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("status = %d, want 405", rec.Code)
		}
	})
}

func TestPanicBecomesJSON500(t *testing.T) {
	tr := newTestRouter(t, func(d *Deps) {
		d.Adapter = panicAdapter{}
	})
	rec := postJSON(tr.handler, "/api/cultural-adaptation/generate", map[string]string{
		"message": "Please take your medication every morning.",
		"context": "general",
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeBody(t, rec)
	if got := errorMessage(t, body); got != "Internal server error" {
		t.Errorf("message = %q", got)
	}
	errObj := body["error"].(map[string]any)
	if errObj["code"] != float64(500) {
		t.Errorf("code = %v, want 500", errObj["code"])
	}
}

func TestCORSPreflight(t *testing.T) {
	tr := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/cultural-adaptation/generate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin for unlisted origin = %q", got)
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	tr := newTestRouter(t, nil)
	rec := httptest.NewRecorder()
	tr.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("X-Request-Id header missing")
	}
}
