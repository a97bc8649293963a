package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIGenerateImage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Fatalf("expected bearer auth")
		}
		if r.URL.Path != "/images/generations" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req imageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "dall-e-3" || req.Size != "1024x1024" {
			t.Fatalf("unexpected model/size %s/%s", req.Model, req.Size)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]string{
				{"url": "https://images.example/abc.png"},
			},
		})
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL)
	url, err := client.GenerateImage(context.Background(), ImagePrompt("Cafe", "20% off"))
	if err != nil {
		t.Fatalf("generate image: %v", err)
	}
	if url != "https://images.example/abc.png" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestOpenAIGenerateImageErrorCarriesType(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"message": "Your prompt was rejected",
				"type":    "invalid_request_error",
			},
		})
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL)
	_, err := client.GenerateImage(context.Background(), "prompt")
	if err == nil {
		t.Fatalf("expected error")
	}
	if ErrorKind(err) != "invalid_request_error" {
		t.Fatalf("unexpected kind %q", ErrorKind(err))
	}
}

func TestOpenAIGenerateImageEmptyData(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"data": []interface{}{}})
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL)
	_, err := client.GenerateImage(context.Background(), "prompt")
	if err == nil {
		t.Fatalf("expected error for empty data")
	}
}

func TestOpenAIRespond(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/responses" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req responsesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Input != "Say hello" {
			t.Fatalf("unexpected input %q", req.Input)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"output": []map[string]interface{}{
				{
					"type": "message",
					"content": []map[string]string{
						{"type": "output_text", "text": "Hello!"},
					},
				},
			},
		})
	}))
	defer server.Close()

	client := NewOpenAIClient("test-key", server.URL)
	out, err := client.Respond(context.Background(), "Say hello")
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if out != "Hello!" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestOpenAINetworkErrorKind(t *testing.T) {
	t.Parallel()

	// Point at a closed server to force a transport failure.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewOpenAIClient("test-key", server.URL)
	_, err := client.GenerateImage(context.Background(), "prompt")
	if err == nil {
		t.Fatalf("expected error")
	}
	if ErrorKind(err) != "network_error" {
		t.Fatalf("unexpected kind %q", ErrorKind(err))
	}
}
