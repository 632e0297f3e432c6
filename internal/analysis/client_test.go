package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"vinoscan/internal/config"
	"vinoscan/internal/wine"
)

func testConfig(baseURL string) config.Analysis {
	return config.Analysis{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		Model:          "gemini-3-flash-preview",
		TimeoutSeconds: 5,
	}
}

func labelText(t *testing.T, doc map[string]string) string {
	t.Helper()
	inner, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal label payload: %v", err)
	}
	body, err := json.Marshal(map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"parts": []map[string]string{{"text": string(inner)}},
			},
		}},
	})
	if err != nil {
		t.Fatalf("marshal response: %v", err)
	}
	return string(body)
}

func TestAnalyzeLabelParsesAttributes(t *testing.T) {
	var gotPath, gotKey string
	var gotBody generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(labelText(t, map[string]string{
			"name":        "Château Margaux",
			"maker":       "Château Margaux",
			"year":        "2015",
			"type":        "Red",
			"description": "Full-bodied with firm tannins.",
		})))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	facts, err := client.AnalyzeLabel(context.Background(), "data:image/jpeg;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("AnalyzeLabel: %v", err)
	}
	if gotPath != "/models/gemini-3-flash-preview:generateContent" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if facts.Name != "Château Margaux" || facts.Year != "2015" || facts.Type != wine.TypeRed {
		t.Errorf("unexpected facts: %+v", facts)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 2 {
		t.Fatalf("unexpected request shape: %+v", gotBody)
	}
	inline := gotBody.Contents[0].Parts[1].InlineData
	if inline == nil || inline.Data != "aGVsbG8=" {
		t.Errorf("inline image payload = %+v, want bare base64", inline)
	}
}

func TestAnalyzeLabelDefaultsMissingFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(labelText(t, map[string]string{"description": "something"})))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	facts, err := client.AnalyzeLabel(context.Background(), "aGVsbG8=")
	if err != nil {
		t.Fatalf("AnalyzeLabel: %v", err)
	}
	if facts.Name != "Unknown Wine" {
		t.Errorf("Name = %q, want Unknown Wine", facts.Name)
	}
	if facts.Maker != "Unknown Maker" {
		t.Errorf("Maker = %q, want Unknown Maker", facts.Maker)
	}
	if facts.Year != "N/V" {
		t.Errorf("Year = %q, want N/V", facts.Year)
	}
	if facts.Type != wine.TypeOther {
		t.Errorf("Type = %q, want Other", facts.Type)
	}
}

func TestAnalyzeLabelCoercesType(t *testing.T) {
	cases := []struct {
		raw  string
		want wine.Type
	}{
		{"Red", wine.TypeRed},
		{"rosé", wine.TypeRose},
		{"WHITE", wine.TypeWhite},
		{"Cabernet Sauvignon", wine.TypeOther},
		{"", wine.TypeOther},
	}
	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(labelText(t, map[string]string{"name": "X", "type": tc.raw})))
		}))
		client := NewClient(testConfig(server.URL))
		facts, err := client.AnalyzeLabel(context.Background(), "aGVsbG8=")
		server.Close()
		if err != nil {
			t.Fatalf("AnalyzeLabel(%q): %v", tc.raw, err)
		}
		if facts.Type != tc.want {
			t.Errorf("type %q coerced to %q, want %q", tc.raw, facts.Type, tc.want)
		}
	}
}

func TestAnalyzeLabelMissingCredential(t *testing.T) {
	cfg := testConfig("http://localhost:1")
	cfg.APIKey = ""
	client := NewClient(cfg)
	_, err := client.AnalyzeLabel(context.Background(), "aGVsbG8=")
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("err = %v, want ErrMissingCredential", err)
	}
}

func TestAnalyzeLabelUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(testConfig(server.URL), WithSleeper(func(time.Duration) {}))
	_, err := client.AnalyzeLabel(context.Background(), "aGVsbG8=")
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("err = %v, want ErrUnreachable", err)
	}
}

func TestAnalyzeLabelProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), WithRetryMaxAttempts(1))
	_, err := client.AnalyzeLabel(context.Background(), "aGVsbG8=")
	if !errors.Is(err, ErrProvider) {
		t.Fatalf("err = %v, want ErrProvider", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("err = %v, want provider message surfaced", err)
	}
}

func TestAnalyzeLabelRetriesTransientFailures(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(labelText(t, map[string]string{"name": "Eventually", "type": "Red"})))
	}))
	defer server.Close()

	var sleeps []time.Duration
	client := NewClient(testConfig(server.URL), WithSleeper(func(d time.Duration) {
		sleeps = append(sleeps, d)
	}))
	facts, err := client.AnalyzeLabel(context.Background(), "aGVsbG8=")
	if err != nil {
		t.Fatalf("AnalyzeLabel: %v", err)
	}
	if facts.Name != "Eventually" {
		t.Errorf("facts = %+v", facts)
	}
	if calls != 3 {
		t.Errorf("server saw %d calls, want 3", calls)
	}
	if len(sleeps) != 2 || sleeps[1] <= sleeps[0] {
		t.Errorf("backoff sleeps = %v, want two increasing delays", sleeps)
	}
}

func TestAnalyzeLabelDoesNotRetryBadRequest(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL), WithSleeper(func(time.Duration) {}))
	_, err := client.AnalyzeLabel(context.Background(), "aGVsbG8=")
	if !errors.Is(err, ErrProvider) {
		t.Fatalf("err = %v, want ErrProvider", err)
	}
	if calls != 1 {
		t.Errorf("server saw %d calls, want no retry on 400", calls)
	}
}

func TestAnalyzeLabelEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.AnalyzeLabel(context.Background(), "aGVsbG8=")
	if !errors.Is(err, ErrEmptyResponse) {
		t.Fatalf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestAnalyzeLabelMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"parts": []map[string]string{{"text": "not json at all"}},
				},
			}},
		})
		w.Write(body)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	_, err := client.AnalyzeLabel(context.Background(), "aGVsbG8=")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestAnalyzeLabelContextCancelled(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := NewClient(testConfig(server.URL))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.AnalyzeLabel(ctx, "aGVsbG8=")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
