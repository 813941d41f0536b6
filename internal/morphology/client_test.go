package morphology

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func newTestClient(url string) *Client {
	return NewClient(Options{BaseURL: url, Timeout: time.Second, RPM: 6000})
}

func TestInflect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/inflect" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req textRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Text != "strike" {
			t.Errorf("text = %q", req.Text)
		}
		w.Write([]byte(`{"nouns":{"plural":"strikes","singular":"strike"},"verbs":{"past":"struck","present":"strikes","gerund":"striking"}}`))
	}))
	defer srv.Close()

	forms, err := newTestClient(srv.URL).Inflect(context.Background(), "strike")
	if err != nil {
		t.Fatalf("Inflect: %v", err)
	}
	want := []string{"strikes", "strike", "struck", "strikes", "striking"}
	if got := forms.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List = %v, want %v", got, want)
	}
}

func TestInflectNoNounOrVerb(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"nouns":null,"verbs":null}`))
	}))
	defer srv.Close()

	forms, err := newTestClient(srv.URL).Inflect(context.Background(), "very")
	if err != nil {
		t.Fatalf("Inflect: %v", err)
	}
	if got := forms.List(); len(got) != 0 {
		t.Errorf("expected no forms, got %v", got)
	}
}

func TestEntities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/entities" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"people":["Keir Starmer"],"organizations":["NHS"],"places":["Kent"],"nouns":["strike"]}`))
	}))
	defer srv.Close()

	ents, err := newTestClient(srv.URL).Entities(context.Background(), "Keir Starmer visits NHS strike in Kent")
	if err != nil {
		t.Fatalf("Entities: %v", err)
	}
	if got := ents.Named(); !reflect.DeepEqual(got, []string{"Keir Starmer", "NHS", "Kent"}) {
		t.Errorf("Named = %v", got)
	}
}

func TestServerErrorIsReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Inflect(context.Background(), "x"); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	var opened atomic.Bool
	c := NewClient(Options{
		BaseURL: srv.URL,
		RPM:     6000,
		OnStateChange: func(from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				opened.Store(true)
			}
		},
	})

	for i := 0; i < 3; i++ {
		c.Inflect(context.Background(), "x")
	}
	_, err := c.Inflect(context.Background(), "x")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable once the breaker is open, got %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("server called %d times, want 3", calls.Load())
	}
	if !opened.Load() {
		t.Error("state change hook not called")
	}
}

func TestNoop(t *testing.T) {
	var a Analyzer = Noop{}
	forms, err := a.Inflect(context.Background(), "anything")
	if err != nil || len(forms.List()) != 0 {
		t.Errorf("Noop.Inflect = %v, %v", forms, err)
	}
	ents, err := a.Entities(context.Background(), "anything")
	if err != nil || len(ents.Named()) != 0 {
		t.Errorf("Noop.Entities = %v, %v", ents, err)
	}
}
