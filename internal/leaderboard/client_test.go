package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSubmitPostsEntry(t *testing.T) {
	var got Entry
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/scores" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := New(srv.URL)
	ok := c.Submit(context.Background(), Entry{Player: "ada", Mode: "classic", Score: 1200, Level: 4, Combo: 17})
	if !ok {
		t.Fatal("Submit should succeed against an accepting server")
	}
	if got.Player != "ada" || got.Score != 1200 {
		t.Errorf("server received %+v", got)
	}
}

func TestSubmitReportsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if New(srv.URL).Submit(context.Background(), Entry{}) {
		t.Error("Submit should report server errors as false")
	}
}

func TestSubmitSwallowsNetworkErrors(t *testing.T) {
	c := New("http://127.0.0.1:1") // Nothing listens here
	if c.Submit(context.Background(), Entry{}) {
		t.Error("Submit must not report success on network failure")
	}
}

func TestFetchTop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("mode") != "classic" {
			t.Errorf("mode = %q", r.URL.Query().Get("mode"))
		}
		json.NewEncoder(w).Encode([]Entry{
			{Rank: 1, Player: "ada", Score: 900},
			{Rank: 2, Player: "bob", Score: 700},
		})
	}))
	defer srv.Close()

	entries := New(srv.URL).FetchTop(context.Background(), "classic", 10)
	if len(entries) != 2 {
		t.Fatalf("entries = %d, expected 2", len(entries))
	}
	if entries[0].Player != "ada" || entries[1].Score != 700 {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestFetchTopReturnsEmptyOnFailure(t *testing.T) {
	if got := New("http://127.0.0.1:1").FetchTop(context.Background(), "classic", 10); len(got) != 0 {
		t.Errorf("expected empty result on network failure, got %v", got)
	}
}

func TestDisabledClientNoOps(t *testing.T) {
	c := New("")
	if c.Enabled() {
		t.Error("empty URL should disable the client")
	}
	if c.Submit(context.Background(), Entry{}) {
		t.Error("disabled Submit must return false")
	}
	if got := c.FetchTop(context.Background(), "classic", 5); got != nil {
		t.Errorf("disabled FetchTop must return nil, got %v", got)
	}
}
