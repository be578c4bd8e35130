package advice

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Dhagoo/Financial-Health-Assistant/internal/model"
)

func metrics(revenue, expenses int64, status model.BenchmarkStatus) *model.MetricsRecord {
	rev := decimal.NewFromInt(revenue)
	exp := decimal.NewFromInt(expenses)
	return &model.MetricsRecord{
		TotalRevenue:  rev,
		TotalExpenses: exp,
		NetProfit:     rev.Sub(exp),
		Benchmarking:  model.Benchmarking{Status: status},
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		revenue  int64
		expenses int64
		want     Outlook
	}{
		{"loss with zero revenue", 0, 100, OutlookLoss},
		{"loss", 1000, 1200, OutlookLoss},
		{"thin margin", 1000, 950, OutlookThin},
		{"exactly ten percent is healthy", 1000, 900, OutlookHealthy},
		{"healthy", 10000, 2000, OutlookHealthy},
		{"empty data", 0, 0, OutlookThin},
	}
	for _, tc := range cases {
		if got := Classify(metrics(tc.revenue, tc.expenses, model.StatusBelowAverage)); got != tc.want {
			t.Fatalf("%s: Classify=%q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestRecommend_Texts(t *testing.T) {
	t.Parallel()

	if got := Recommend(metrics(0, 100, model.StatusBelowAverage)); got != recommendations[OutlookLoss] {
		t.Fatalf("loss text mismatch: %q", got)
	}
	if got := Recommend(metrics(1000, 950, model.StatusBelowAverage)); got != recommendations[OutlookThin] {
		t.Fatalf("thin text mismatch: %q", got)
	}
	if got := Recommend(metrics(10000, 2000, model.StatusAboveAverage)); got != recommendations[OutlookHealthy] {
		t.Fatalf("healthy text mismatch: %q", got)
	}
}

func TestSummary_Languages(t *testing.T) {
	t.Parallel()

	m := metrics(10000, 2000, model.StatusAboveAverage)

	if got, want := Summary(m, "en"), "Financial Summary: Net Profit is $8000.00. Industry status: Above Average."; got != want {
		t.Fatalf("en: got %q, want %q", got, want)
	}
	if got, want := Summary(m, "hi-IN"), "वित्तीय सारांश: शुद्ध लाभ $8000.00 है। उद्योग की स्थिति: Above Average।"; got != want {
		t.Fatalf("hi: got %q, want %q", got, want)
	}
}

func TestSummary_UnknownLanguageFallsBack(t *testing.T) {
	t.Parallel()

	m := metrics(1000, 950, model.StatusBelowAverage)
	want := Summary(m, DefaultLanguage)
	for _, lang := range []string{"", "fr", "zz-ZZ", "english"} {
		if got := Summary(m, lang); got != want {
			t.Fatalf("Summary(%q)=%q, want %q", lang, got, want)
		}
	}
}

func TestLanguages(t *testing.T) {
	t.Parallel()

	got := Languages()
	if len(got) != 2 || got[0] != "en" || got[1] != "hi" {
		t.Fatalf("Languages=%v", got)
	}
}
