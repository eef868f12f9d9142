package summary

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/korbo/claude-chats/internal/config"
	"github.com/korbo/claude-chats/internal/session"
)

type fakeSummarizer struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
}

func (f *fakeSummarizer) Summarize(_ context.Context, message string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, message)
	f.mu.Unlock()
	if f.fail[message] {
		return "", fmt.Errorf("boom")
	}
	return "label for " + message, nil
}

func chatFixture(id, msg string) session.Chat {
	return session.Chat{ID: id, FirstMessage: msg, Timestamp: time.Now()}
}

func newCache(t *testing.T) *Cache {
	return LoadCache(filepath.Join(t.TempDir(), "summaries.json"))
}

func TestGenerateOnlyUncached(t *testing.T) {
	cache := newCache(t)
	cache.Merge(map[string]string{"a": "already cached"})

	fake := &fakeSummarizer{}
	chats := []session.Chat{
		chatFixture("a", "first message a"),
		chatFixture("b", "first message b"),
		chatFixture("c", "first message c"),
	}

	n, err := Generate(context.Background(), fake, chats, cache, 4, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n != 2 {
		t.Errorf("generated %d, want 2", n)
	}
	if len(fake.calls) != 2 {
		t.Errorf("issued %d requests, want 2 (cached item must be skipped)", len(fake.calls))
	}
	if got, _ := cache.Get("a"); got != "already cached" {
		t.Errorf("cached entry overwritten: %q", got)
	}
	if got, ok := cache.Get("b"); !ok || got != "label for first message b" {
		t.Errorf("Get(b) = %q, %v", got, ok)
	}
}

func TestGenerateSkipsPlaceholders(t *testing.T) {
	cache := newCache(t)
	fake := &fakeSummarizer{}
	chats := []session.Chat{
		{ID: "empty"}, // no first message: placeholder chat
		chatFixture("real", "actual text"),
	}

	if _, err := Generate(context.Background(), fake, chats, cache, 4, nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(fake.calls) != 1 {
		t.Errorf("issued %d requests, want 1", len(fake.calls))
	}
	if _, ok := cache.Get("empty"); ok {
		t.Error("placeholder chat must not be summarized")
	}
}

func TestGenerateContinuesPastFailures(t *testing.T) {
	cache := newCache(t)
	fake := &fakeSummarizer{fail: map[string]bool{"msg b": true}}
	chats := []session.Chat{
		chatFixture("a", "msg a"),
		chatFixture("b", "msg b"),
		chatFixture("c", "msg c"),
	}

	n, err := Generate(context.Background(), fake, chats, cache, 2, nil)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if n != 2 {
		t.Errorf("generated %d, want 2", n)
	}
	if _, ok := cache.Get("b"); ok {
		t.Error("failed item must not be cached")
	}
	if _, ok := cache.Get("c"); !ok {
		t.Error("batch should continue past a failure")
	}
}

func TestGenerateProgressReachesTotal(t *testing.T) {
	cache := newCache(t)
	fake := &fakeSummarizer{}
	var chats []session.Chat
	for i := 0; i < 9; i++ {
		chats = append(chats, chatFixture(fmt.Sprintf("id%d", i), fmt.Sprintf("msg %d", i)))
	}

	var mu sync.Mutex
	var last int
	progress := func(done, total int) {
		mu.Lock()
		if done > last {
			last = done
		}
		if total != 9 {
			t.Errorf("total = %d, want 9", total)
		}
		mu.Unlock()
	}

	if _, err := Generate(context.Background(), fake, chats, cache, 4, progress); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if last != 9 {
		t.Errorf("final progress = %d, want 9", last)
	}
}

func TestGenerateNothingToDo(t *testing.T) {
	cache := newCache(t)
	n, err := Generate(context.Background(), &fakeSummarizer{}, nil, cache, 4, nil)
	if err != nil || n != 0 {
		t.Errorf("Generate = %d, %v; want 0, nil", n, err)
	}
}

func TestClientAgainstCompatibleEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"\"Login bug fix\""}}]}`)
	}))
	defer server.Close()

	client := NewClient("test-key", config.Summary{
		Model:   "gemini-2.5-flash-lite",
		BaseURL: server.URL + "/v1",
	})

	label, err := client.Summarize(context.Background(), "please fix the login bug")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if label != "Login bug fix" {
		t.Errorf("label = %q (surrounding quotes should be stripped)", label)
	}
}

func TestClientErrorResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("test-key", config.Summary{Model: "m", BaseURL: server.URL + "/v1"})
	if _, err := client.Summarize(context.Background(), "anything"); err == nil {
		t.Error("expected error from rate-limited endpoint")
	}
}
