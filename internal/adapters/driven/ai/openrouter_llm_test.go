package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenRouterChat_NoKeyServesStubs(t *testing.T) {
	chat := NewOpenRouterChat("", "", "")

	tests := []struct {
		prompt string
		want   string
	}{
		{"How do I get to Burabay?", "Burabay"},
		{"Что посмотреть в Кокшетау?", "Kokshetau"},
		{"Recommend a hotel please", "hotels"},
		{"Plan a route for two days", "route"},
		{"something entirely unrelated", "Aqmola"},
	}

	for _, tt := range tests {
		answer, err := chat.Chat(context.Background(), tt.prompt, "en")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(strings.ToLower(answer), strings.ToLower(tt.want)) {
			t.Errorf("prompt %q: expected answer mentioning %q, got %q", tt.prompt, tt.want, answer)
		}
	}
}

func TestOpenRouterChat_UpstreamReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Take the train from Astana."}}]}`))
	}))
	defer server.Close()

	chat := NewOpenRouterChat("test-key", "", server.URL)
	answer, err := chat.Chat(context.Background(), "How do I get there?", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "Take the train from Astana." {
		t.Errorf("unexpected answer: %q", answer)
	}
}

func TestOpenRouterChat_UpstreamFailureFallsBackToStub(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	chat := NewOpenRouterChat("test-key", "", server.URL)
	answer, err := chat.Chat(context.Background(), "Tell me about burabay", "en")
	if err != nil {
		t.Fatalf("expected degraded answer, got error: %v", err)
	}
	if !strings.Contains(answer, "Burabay") {
		t.Errorf("expected canned Burabay answer, got %q", answer)
	}
}
