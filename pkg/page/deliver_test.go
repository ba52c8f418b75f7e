package page

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWebhookDeliverPage(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL)
	p := Page{Title: "T", Fields: []Field{{Name: "A", Body: "b"}}, Footer: "F"}
	if err := wh.DeliverPage(context.Background(), p, Ephemeral); err != nil {
		t.Fatal(err)
	}
	if got.Page.Title != "T" || got.Visibility != Ephemeral {
		t.Errorf("payload = %+v", got)
	}
}

func TestWebhookDeliverPageError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL)
	if err := wh.DeliverPage(context.Background(), Page{Title: "T"}, Visible); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestDeliverAll(t *testing.T) {
	var titles []string
	d := DelivererFunc(func(_ context.Context, p Page, _ Visibility) error {
		titles = append(titles, p.Title)
		return nil
	})

	pages := []Page{{Title: "1"}, {Title: "2"}, {Title: "3"}}
	if err := DeliverAll(context.Background(), d, pages, Visible); err != nil {
		t.Fatal(err)
	}
	if len(titles) != 3 || titles[0] != "1" || titles[2] != "3" {
		t.Errorf("delivered = %v", titles)
	}
}

func TestDeliverAllStopsOnFailure(t *testing.T) {
	sentinel := errors.New("boom")
	calls := 0
	d := DelivererFunc(func(_ context.Context, p Page, _ Visibility) error {
		calls++
		if calls == 2 {
			return sentinel
		}
		return nil
	})

	err := DeliverAll(context.Background(), d, []Page{{}, {}, {}}, Visible)
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want delivery to stop at the failure", calls)
	}
}
