package spectral

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gonum.org/v1/gonum/mat"
)

func fakeOllama(t *testing.T, dims map[string]int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/embeddings", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		dim, ok := dims[req.Model]
		if !ok {
			http.Error(w, "unknown model", http.StatusNotFound)
			return
		}
		emb := make([]float64, dim)
		for i := range emb {
			emb[i] = float64(i + 1)
		}
		json.NewEncoder(w).Encode(map[string][]float64{"embedding": emb})
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestCheckReachable(t *testing.T) {
	ts := fakeOllama(t, nil)
	client := NewOllamaClient(ts.URL, 5*time.Second)

	if err := client.CheckReachable(context.Background()); err != nil {
		t.Fatalf("CheckReachable: %v", err)
	}
}

func TestCheckReachableDown(t *testing.T) {
	client := NewOllamaClient("http://127.0.0.1:1", 500*time.Millisecond)
	if err := client.CheckReachable(context.Background()); err == nil {
		t.Fatal("expected an error when nothing listens")
	}
}

func TestEmbeddings(t *testing.T) {
	ts := fakeOllama(t, map[string]int{"draft": 4})
	client := NewOllamaClient(ts.URL, 5*time.Second)

	emb, err := client.Embeddings(context.Background(), "draft", "hello")
	if err != nil {
		t.Fatalf("Embeddings: %v", err)
	}
	if len(emb) != 4 || emb[0] != 1 || emb[3] != 4 {
		t.Fatalf("unexpected embedding %v", emb)
	}
}

func TestEmbeddingsUnknownModel(t *testing.T) {
	ts := fakeOllama(t, map[string]int{"draft": 4})
	client := NewOllamaClient(ts.URL, 5*time.Second)

	if _, err := client.Embeddings(context.Background(), "missing", "hello"); err == nil {
		t.Fatal("expected an error for an unknown model")
	}
}

func TestEmbeddingsEmptyVector(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/embeddings", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string][]float64{"embedding": {}})
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	client := NewOllamaClient(ts.URL, 5*time.Second)
	if _, err := client.Embeddings(context.Background(), "m", "t"); err == nil {
		t.Fatal("expected an error for an empty embedding")
	}
}

func TestRunEndToEnd(t *testing.T) {
	ts := fakeOllama(t, map[string]int{"draft": 2, "teacher": 3})
	client := NewOllamaClient(ts.URL, 5*time.Second)

	// 3x2 alignment matrix lifts the 2-dim draft embedding to teacher space.
	w := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		1, 1,
	})
	results, err := Run(context.Background(), client, w, []string{"a", "b"}, "draft", "teacher")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Cosine < -1.0001 || r.Cosine > 1.0001 {
			t.Fatalf("cosine %v out of range for %q", r.Cosine, r.Text)
		}
		if r.SpecMSE < 0 {
			t.Fatalf("negative spectral MSE %v for %q", r.SpecMSE, r.Text)
		}
	}
}
