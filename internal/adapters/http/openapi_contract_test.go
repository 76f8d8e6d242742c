package httpadapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

func loadAPIContract(t *testing.T) routers.Router {
	t.Helper()
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromFile("../../../api/openapi.yaml")
	if err != nil {
		t.Fatalf("load openapi document: %v", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		t.Fatalf("openapi document invalid: %v", err)
	}
	contract, err := legacy.NewRouter(doc)
	if err != nil {
		t.Fatalf("build contract router: %v", err)
	}
	return contract
}

// checkContract validates a recorded response against the published API
// document. Request bodies are excluded; they were already consumed by the
// handler under test.
func checkContract(t *testing.T, contract routers.Router, req *http.Request, rec *httptest.ResponseRecorder) {
	t.Helper()

	route, pathParams, err := contract.FindRoute(req)
	if err != nil {
		t.Fatalf("route %s %s not in openapi document: %v", req.Method, req.URL.Path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
			Options:    &openapi3filter.Options{ExcludeRequestBody: true},
		},
		Status: rec.Code,
		Header: rec.Header(),
	}
	input.SetBodyBytes(rec.Body.Bytes())

	if err := openapi3filter.ValidateResponse(context.Background(), input); err != nil {
		t.Errorf("%s %s response violates contract: %v\nbody: %s",
			req.Method, req.URL.Path, err, rec.Body.String())
	}
}

func TestResponsesMatchOpenAPIContract(t *testing.T) {
	contract := loadAPIContract(t)
	const validMessage = "Please take your blood pressure medication every morning."

	t.Run("health", func(t *testing.T) {
		tr := newTestRouter(t, nil)
		req := httptest.NewRequest(http.MethodGet, "http://localhost/api/health", nil)
		rec := httptest.NewRecorder()
		tr.handler.ServeHTTP(rec, req)
		checkContract(t, contract, req, rec)
	})

	t.Run("contexts", func(t *testing.T) {
		tr := newTestRouter(t, nil)
		req := httptest.NewRequest(http.MethodGet, "http://localhost/api/cultural-adaptation/contexts", nil)
		rec := httptest.NewRecorder()
		tr.handler.ServeHTTP(rec, req)
		checkContract(t, contract, req, rec)
	})

	t.Run("generate success", func(t *testing.T) {
		tr := newTestRouter(t, nil)
		rec := postJSON(tr.handler, "http://localhost/api/cultural-adaptation/generate", map[string]string{
			"message": validMessage,
			"context": "thai-low-literacy",
		})
		req := httptest.NewRequest(http.MethodPost, "http://localhost/api/cultural-adaptation/generate", nil)
		checkContract(t, contract, req, rec)
	})

	t.Run("generate validation error", func(t *testing.T) {
		tr := newTestRouter(t, nil)
		rec := postJSON(tr.handler, "http://localhost/api/cultural-adaptation/generate", map[string]string{
			"message": "short",
			"context": "thai-low-literacy",
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		req := httptest.NewRequest(http.MethodPost, "http://localhost/api/cultural-adaptation/generate", nil)
		checkContract(t, contract, req, rec)
	})

	t.Run("extract success", func(t *testing.T) {
		tr := newTestRouter(t, nil)
		body, ct := multipartBody(t, "pdf", "notes.pdf", []byte("%PDF-1.4 fake"), nil)
		req := httptest.NewRequest(http.MethodPost, "http://localhost/api/extract-pdf", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		tr.handler.ServeHTTP(rec, req)
		checkContract(t, contract, req, rec)
	})

	t.Run("extract missing file", func(t *testing.T) {
		tr := newTestRouter(t, nil)
		body, ct := multipartBody(t, "pdf", "", nil, map[string]string{"context": "general"})
		req := httptest.NewRequest(http.MethodPost, "http://localhost/api/extract-pdf", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		tr.handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want 400", rec.Code)
		}
		checkContract(t, contract, req, rec)
	})
}
