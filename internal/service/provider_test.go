package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bankora/bankora-api/internal/config"
	"github.com/bankora/bankora-api/internal/domain"
)

func TestFinGenieClientEnvelope(t *testing.T) {
	var gotQuery, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("key")

		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Contents) == 1 && len(req.Contents[0].Parts) == 1 {
			gotQuery = req.Contents[0].Parts[0].Text
		}

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "the answer"}}}},
			},
		})
	}))
	defer srv.Close()

	client := NewFinGenieClient(srv.URL, "secret-key")
	text, err := client.Answer(context.Background(), "what is a savings account")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if text != "the answer" {
		t.Errorf("want %q, got %q", "the answer", text)
	}
	if gotQuery != "what is a savings account" {
		t.Errorf("query not wrapped correctly: %q", gotQuery)
	}
	if gotKey != "secret-key" {
		t.Errorf("api key not passed as query parameter: %q", gotKey)
	}
}

func TestFinGenieClientNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := NewFinGenieClient(srv.URL, "k")
	if _, err := client.Answer(context.Background(), "q"); err == nil {
		t.Fatal("expected error for empty candidates")
	}
}

func TestBankoraClientEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Query != "atm locations" {
			t.Errorf("unexpected query: %q", req.Query)
		}
		json.NewEncoder(w).Encode(map[string]string{"response": "found three"})
	}))
	defer srv.Close()

	client := NewBankoraClient(srv.URL)
	text, err := client.Answer(context.Background(), "atm locations")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if text != "found three" {
		t.Errorf("want %q, got %q", "found three", text)
	}
}

func TestBankoraClientMalformedEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"result":"wrong field"}`))
	}))
	defer srv.Close()

	client := NewBankoraClient(srv.URL)
	if _, err := client.Answer(context.Background(), "q"); err == nil {
		t.Fatal("expected error for malformed envelope")
	}
}

func TestBankoraClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewBankoraClient(srv.URL)
	if _, err := client.Answer(context.Background(), "q"); err == nil {
		t.Fatal("expected error for upstream failure")
	}
}

func TestProviderRouterFallsBackWithRealClients(t *testing.T) {
	bankoraSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer bankoraSrv.Close()

	var fallbackQuery string
	finGenieSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		fallbackQuery = req.Contents[0].Parts[0].Text
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "fallback answer"}}}},
			},
		})
	}))
	defer finGenieSrv.Close()

	router := NewProviderRouter(NewFinGenieClient(finGenieSrv.URL, "k"), NewBankoraClient(bankoraSrv.URL))

	text, err := router.Answer(context.Background(), domain.ModelBankora, "mobile money fees")
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	if text != "fallback answer" {
		t.Errorf("want fallback answer, got %q", text)
	}
	if !strings.HasPrefix(fallbackQuery, config.BankoraFallbackPrefix) {
		t.Errorf("fallback prompt missing prefix: %q", fallbackQuery)
	}
	if !strings.HasSuffix(fallbackQuery, "mobile money fees") {
		t.Errorf("fallback prompt missing original query: %q", fallbackQuery)
	}
}

func TestProviderRouterRejectsUnknownModel(t *testing.T) {
	router := NewProviderRouter(echoProvider("fingenie"), echoProvider("bankora"))

	if _, err := router.Answer(context.Background(), "mystery", "q"); err != domain.ErrInvalidModelType {
		t.Fatalf("expected ErrInvalidModelType, got %v", err)
	}
}
