package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWaitReady(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()
	if err := waitReady(context.Background(), ts.URL); err != nil {
		t.Fatal(err)
	}
}

func TestWaitReadyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := waitReady(ctx, "http://127.0.0.1:1/"); err == nil {
		t.Fatal("expected an error")
	}
}
