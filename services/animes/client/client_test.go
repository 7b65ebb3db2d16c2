package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_SendsBasicAuthAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || u != "jackson" || p != "root" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/animes/3" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(Anime{ID: 3, Name: "Monster"})
	}))
	defer srv.Close()

	a, err := New(srv.URL+"/", "jackson", "root").Get(context.Background(), 3)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.ID != 3 || a.Name != "Monster" {
		t.Fatalf("unexpected anime %+v", a)
	}
}

func TestClient_DecodesErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"title":"Bad Request Exception, Check the Documentation","status":400,"details":"Anime not found","developerMessage":"ANIME_NOT_FOUND"}`))
	}))
	defer srv.Close()

	err := New(srv.URL, "user", "user").Delete(context.Background(), 9)
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.DeveloperMessage != "ANIME_NOT_FOUND" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}
