package v1

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/Dhagoo/Financial-Health-Assistant/internal/exporter"
	"github.com/Dhagoo/Financial-Health-Assistant/internal/model"
)

func newTestRouter(t *testing.T, opts Options) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(model.MustDefaultBenchmarkTable(), nil, opts)
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

// 构造 multipart 上传请求；fields 为额外表单字段
func newUploadRequest(t *testing.T, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeUpload(t *testing.T, w *httptest.ResponseRecorder) UploadResponse {
	t.Helper()
	var resp UploadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v body=%s", err, w.Body.String())
	}
	return resp
}

func TestUpload_CSVServicesAboveAverage(t *testing.T) {
	r := newTestRouter(t, Options{})

	csv := "Type,Amount\nRevenue,10000\nExpense,2000\n"
	w := serve(r, newUploadRequest(t, "ledger.csv", []byte(csv), map[string]string{"industry": "Services"}))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	resp := decodeUpload(t, w)
	if resp.AnalysisID == "" || resp.Filename != "ledger.csv" {
		t.Fatalf("unexpected id/filename: %q %q", resp.AnalysisID, resp.Filename)
	}
	m := resp.Metrics
	if m.TotalRevenue != 10000 || m.TotalExpenses != 2000 || m.NetProfit != 8000 {
		t.Fatalf("unexpected totals: %+v", m)
	}
	if m.Benchmarking.Status != "Above Average" || m.Benchmarking.IndustryAvg != "25.0%" || m.Benchmarking.Current != "80.00%" {
		t.Fatalf("unexpected benchmarking: %+v", m.Benchmarking)
	}
	if len(m.Alerts) != 2 || m.Alerts[0] != "Profitability is strong" {
		t.Fatalf("unexpected alerts: %v", m.Alerts)
	}
	if !strings.Contains(resp.MultilingualSummary, "Net Profit is $8000.00") {
		t.Fatalf("unexpected summary: %q", resp.MultilingualSummary)
	}
	if resp.Recommendation == "" {
		t.Fatalf("recommendation should not be empty")
	}
}

func TestUpload_DefaultsAndHindiSummary(t *testing.T) {
	r := newTestRouter(t, Options{})

	csv := "Type,Amount\nRevenue,1000\nExpense,950\n"
	w := serve(r, newUploadRequest(t, "thin.CSV", []byte(csv), map[string]string{"lang": "hi-IN"}))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	resp := decodeUpload(t, w)
	if resp.Metrics.Benchmarking.Industry != "General" || resp.Metrics.Benchmarking.Status != "Below Average" {
		t.Fatalf("unexpected benchmarking: %+v", resp.Metrics.Benchmarking)
	}
	if !strings.HasPrefix(resp.MultilingualSummary, "वित्तीय सारांश") {
		t.Fatalf("expected hindi summary, got %q", resp.MultilingualSummary)
	}
}

func TestUpload_XLSX(t *testing.T) {
	r := newTestRouter(t, Options{})

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Type", "Amount", "Category"},
		{"Revenue", 5000, "Sales"},
		{"Expense", 7000, "Rent"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	_ = f.Close()

	w := serve(r, newUploadRequest(t, "loss.xlsx", buf.Bytes(), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	resp := decodeUpload(t, w)
	if resp.Metrics.NetProfit != -2000 {
		t.Fatalf("unexpected net profit: %v", resp.Metrics.NetProfit)
	}
	if len(resp.Metrics.ExpenseCategories) != 1 || resp.Metrics.ExpenseCategories[0].Category != "Rent" {
		t.Fatalf("unexpected categories: %+v", resp.Metrics.ExpenseCategories)
	}
}

func TestUpload_Errors(t *testing.T) {
	r := newTestRouter(t, Options{})

	cases := []struct {
		name     string
		filename string
		content  string
		status   int
		contains string
	}{
		{"unsupported extension", "ledger.txt", "Type,Amount\n", http.StatusBadRequest, "Invalid file format"},
		{"missing column", "ledger.csv", "Kind,Amount\nRevenue,10\n", http.StatusBadRequest, "Type"},
		{"empty file", "ledger.csv", "", http.StatusBadRequest, "empty"},
		{"missing file", "", "", http.StatusBadRequest, "details"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(r, newUploadRequest(t, tc.filename, []byte(tc.content), map[string]string{"industry": "Retail"}))
			if w.Code != tc.status {
				t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), tc.contains) {
				t.Fatalf("body %s should contain %q", w.Body.String(), tc.contains)
			}
		})
	}
}

func TestUpload_OutOfRangeAmountIsSkipped(t *testing.T) {
	r := newTestRouter(t, Options{})

	csv := "Type,Amount\nRevenue,1e400\nExpense,10\nRevenue,1e9999999\n"
	w := serve(r, newUploadRequest(t, "overflow.csv", []byte(csv), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	m := decodeUpload(t, w).Metrics
	if m.TotalRevenue != 0 || m.TotalExpenses != 10 || m.NetProfit != -10 {
		t.Fatalf("unexpected totals: %+v", m)
	}
	if m.SkippedRows != 2 || len(m.SkippedLines) != 2 || m.SkippedLines[0] != 2 || m.SkippedLines[1] != 4 {
		t.Fatalf("unexpected skipped rows: %d %v", m.SkippedRows, m.SkippedLines)
	}
}

func TestUpload_FormatCheckedBeforeSize(t *testing.T) {
	r := newTestRouter(t, Options{MaxUploadBytes: 16})

	w := serve(r, newUploadRequest(t, "notes.txt", bytes.Repeat([]byte("x"), 64), nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Invalid file format") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestUpload_TooLarge(t *testing.T) {
	r := newTestRouter(t, Options{MaxUploadBytes: 16})

	csv := "Type,Amount\nRevenue,10000\nExpense,2000\nExpense,3000\n"
	w := serve(r, newUploadRequest(t, "big.csv", []byte(csv), nil))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
}

func TestSampleFile(t *testing.T) {
	r := newTestRouter(t, Options{})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/sample-csv", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, exporter.SampleCSVFilename) {
		t.Fatalf("unexpected disposition: %q", got)
	}
	if !bytes.Equal(w.Body.Bytes(), exporter.SampleCSV()) {
		t.Fatalf("sample body mismatch")
	}

	w = serve(r, httptest.NewRequest(http.MethodGet, "/sample-csv?format=XLSX", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected xlsx status: %d body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != xlsxContentType {
		t.Fatalf("unexpected content type: %q", got)
	}
	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	_ = f.Close()

	w = serve(r, httptest.NewRequest(http.MethodGet, "/sample-csv?format=pdf", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status for pdf: %d", w.Code)
	}
}

func TestSampleFile_RoundTripsThroughUpload(t *testing.T) {
	r := newTestRouter(t, Options{})

	w := serve(r, newUploadRequest(t, exporter.SampleCSVFilename, exporter.SampleCSV(), nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	m := decodeUpload(t, w).Metrics
	if m.TotalRevenue != 85550 || m.TotalExpenses != 52950 || m.NetProfit != 32600 {
		t.Fatalf("unexpected totals: %+v", m)
	}
	if m.RowCount != 10 || m.SkippedRows != 0 {
		t.Fatalf("unexpected row counts: %d %d", m.RowCount, m.SkippedRows)
	}
}

func TestListIndustries(t *testing.T) {
	r := newTestRouter(t, Options{})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/industries", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", w.Code)
	}

	var resp struct {
		Industries      []IndustryResponse `json:"industries"`
		DefaultIndustry string             `json:"default_industry"`
		Languages       []string           `json:"languages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Industries) != 5 || resp.Industries[0].Industry != "General" {
		t.Fatalf("unexpected industries: %+v", resp.Industries)
	}
	if resp.Industries[0].IndustryAvg != "15.0%" {
		t.Fatalf("unexpected industry avg: %q", resp.Industries[0].IndustryAvg)
	}
	if resp.DefaultIndustry != "General" || len(resp.Languages) != 2 {
		t.Fatalf("unexpected defaults: %q %v", resp.DefaultIndustry, resp.Languages)
	}
}

func TestIntegrationStubs(t *testing.T) {
	r := newTestRouter(t, Options{})

	cases := []struct {
		path   string
		status int
	}{
		{"/bank-integration", http.StatusBadRequest},
		{"/bank-integration?bank_name=HDFC", http.StatusNotImplemented},
		{"/gst-data", http.StatusBadRequest},
		{"/gst-data?gstin=short", http.StatusBadRequest},
		{"/gst-data?gstin=27AAPFU0939F1ZV", http.StatusNotImplemented},
	}
	for _, tc := range cases {
		w := serve(r, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if w.Code != tc.status {
			t.Fatalf("%s: unexpected status %d body=%s", tc.path, w.Code, w.Body.String())
		}
	}
}
