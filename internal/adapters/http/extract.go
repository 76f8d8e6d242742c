package httpadapter

import (
	"io"
	"net/http"
	"strings"
)

const (
	extractionSuccess = "success"
	extractionFailure = "failure"
)

func (rt *Router) extractPDF(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if rt.deps.MaxUploadBytes > 0 {
		// Leave headroom for the multipart framing around the file part.
		r.Body = http.MaxBytesReader(w, r.Body, rt.deps.MaxUploadBytes+64*1024)
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No PDF file uploaded")
		return
	}
	defer file.Close()

	contextID := strings.TrimSpace(r.FormValue("context"))
	if contextID == "" {
		contextID = "general"
	}
	targetLanguage := strings.TrimSpace(r.FormValue("target_language"))
	if targetLanguage == "" {
		targetLanguage = "en"
	}

	upload := rt.deps.Validator.ValidateFileUpload(header.Filename, header.Size)
	if !upload.Valid {
		respondError(w, http.StatusBadRequest, upload.Message)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		rt.deps.Logger.Error("upload_read_failed", "error", err, "file", header.Filename)
		respondError(w, http.StatusBadRequest, "No PDF file uploaded")
		return
	}

	result := rt.deps.Extractor.Extract(r.Context(), data)
	if !result.Success {
		rt.deps.Metrics.RecordExtraction(serviceName, result.Method, extractionFailure)
		respondError(w, http.StatusBadRequest, "PDF extraction failed: "+result.Err)
		return
	}
	rt.deps.Metrics.RecordExtraction(serviceName, result.Method, extractionSuccess)

	analysis := rt.deps.Analyzer.AnalyzeDocument(r.Context(), result.Text, contextID, targetLanguage)
	rt.deps.Metrics.RecordAnalysis(serviceName, analysis.Source)

	summary := analysis.Summary
	if summary == "" {
		summary = "Content extracted successfully"
	}

	respondData(w, http.StatusOK, map[string]any{
		"summary":          summary,
		"fileName":         header.Filename,
		"detectedLanguage": result.DetectedLanguage,
		"outputLanguage":   targetLanguage,
		"wordCount":        result.WordCount,
		"culturalContext":  contextID,
	})
}
