package matinput

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func collect(t *testing.T, stream string, group int) ([]Press, error) {
	t.Helper()
	var got []Press
	err := readEvents(context.Background(), bufio.NewScanner(strings.NewReader(stream)), group, func(p Press) {
		got = append(got, p)
	})
	return got, err
}

func TestReadEventsSkipsBaseline(t *testing.T) {
	stream := "event: put\n" +
		`data: {"path":"/","data":{"-old":{"matNumber":4,"groupId":1}}}` + "\n\n" +
		"event: keep-alive\ndata: null\n\n" +
		"event: put\n" +
		`data: {"path":"/-new","data":{"matNumber":2,"groupId":1,"timestamp":1700000000}}` + "\n\n" +
		"event: put\n" +
		`data: {"path":"/-old","data":null}` + "\n\n"

	got, err := collect(t, stream, 1)
	if err != nil {
		t.Fatalf("readEvents: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d presses, expected 1: %+v", len(got), got)
	}
	if got[0].Pad != 2 || got[0].Key != "-new" {
		t.Errorf("press = %+v, expected pad 2 key -new", got[0])
	}
}

func TestReadEventsEmptyBaselineAndPatch(t *testing.T) {
	stream := "event: put\ndata: {\"path\":\"/\",\"data\":null}\n\n" +
		"event: patch\n" +
		`data: {"path":"/","data":{"-a":{"matNumber":7,"groupId":1},"-b":{"matNumber":8,"groupId":2}}}` + "\n\n"

	got, err := collect(t, stream, 1)
	if err != nil {
		t.Fatalf("readEvents: %v", err)
	}
	if len(got) != 1 || got[0].Pad != 7 {
		t.Errorf("got %+v, expected only pad 7 of group 1", got)
	}
}

func TestReadEventsIgnoresDuplicatesAndFieldUpdates(t *testing.T) {
	stream := "event: put\ndata: {\"path\":\"/\",\"data\":null}\n\n" +
		"event: put\ndata: {\"path\":\"/-a\",\"data\":{\"matNumber\":1,\"groupId\":1}}\n\n" +
		"event: put\ndata: {\"path\":\"/-a\",\"data\":{\"matNumber\":1,\"groupId\":1}}\n\n" +
		"event: put\ndata: {\"path\":\"/-a/matNumber\",\"data\":5}\n\n" +
		"event: put\ndata: not json\n\n"

	got, err := collect(t, stream, 1)
	if err != nil {
		t.Fatalf("readEvents: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d presses, expected 1", len(got))
	}
}

func TestReadEventsRejectsFractionalIDs(t *testing.T) {
	stream := "event: put\ndata: {\"path\":\"/\",\"data\":null}\n\n" +
		"event: put\ndata: {\"path\":\"/-a\",\"data\":{\"matNumber\":9.5,\"groupId\":1}}\n\n" +
		"event: put\ndata: {\"path\":\"/-b\",\"data\":{\"matNumber\":1.5,\"groupId\":1.9}}\n\n" +
		"event: put\ndata: {\"path\":\"/-c\",\"data\":{\"matNumber\":2,\"groupId\":1.9}}\n\n" +
		"event: put\ndata: {\"path\":\"/-d\",\"data\":{\"matNumber\":3.0,\"groupId\":1}}\n\n"

	got, err := collect(t, stream, 1)
	if err != nil {
		t.Fatalf("readEvents: %v", err)
	}
	if len(got) != 1 || got[0].Pad != 3 || got[0].Key != "-d" {
		t.Errorf("got %+v, expected only the whole pad 3", got)
	}
}

func TestReadEventsTracksOnlyNewestKey(t *testing.T) {
	stream := "event: put\ndata: {\"path\":\"/\",\"data\":{\"-a\":{\"matNumber\":1,\"groupId\":1}}}\n\n" +
		"event: put\ndata: {\"path\":\"/-a\",\"data\":{\"matNumber\":1,\"groupId\":1}}\n\n" +
		"event: put\ndata: {\"path\":\"/-b\",\"data\":{\"matNumber\":2,\"groupId\":1}}\n\n" +
		"event: put\ndata: {\"path\":\"/-a\",\"data\":null}\n\n" +
		"event: put\ndata: {\"path\":\"/-b\",\"data\":{\"matNumber\":2,\"groupId\":1}}\n\n" +
		"event: put\ndata: {\"path\":\"/-c\",\"data\":{\"matNumber\":3,\"groupId\":1}}\n\n"

	got, err := collect(t, stream, 1)
	if err != nil {
		t.Fatalf("readEvents: %v", err)
	}
	if len(got) != 2 || got[0].Pad != 2 || got[1].Pad != 3 {
		t.Errorf("got %+v, expected pads 2 and 3", got)
	}
}

func TestReadEventsTerminalEvents(t *testing.T) {
	tests := []struct {
		event string
		want  error
	}{
		{"cancel", ErrStreamCanceled},
		{"auth_revoked", ErrAuthRevoked},
	}
	for _, tt := range tests {
		stream := "event: put\ndata: {\"path\":\"/\",\"data\":null}\n\n" +
			"event: " + tt.event + "\ndata: null\n\n" +
			"event: put\ndata: {\"path\":\"/-a\",\"data\":{\"matNumber\":1,\"groupId\":1}}\n\n"

		got, err := collect(t, stream, 1)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, expected %v", tt.event, err, tt.want)
		}
		if len(got) != 0 {
			t.Errorf("%s: no presses should be read after the stream ends", tt.event)
		}
	}
}

func TestNewFirebaseSourceValidates(t *testing.T) {
	for _, raw := range []string{"", "ftp://example.com", "://bad"} {
		if _, err := NewFirebaseSource(FirebaseConfig{DatabaseURL: raw}, nil, nil); err == nil {
			t.Errorf("NewFirebaseSource(%q) should fail", raw)
		}
	}
}

func TestFirebaseSourceStreams(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/mat_presses.json" || q.Get("orderBy") != `"groupId"` ||
			q.Get("equalTo") != "1" || q.Get("limitToLast") != "1" || q.Get("auth") != "token" {
			http.Error(w, "bad query "+r.URL.String(), http.StatusBadRequest)
			return
		}
		if r.Header.Get("Accept") != "text/event-stream" {
			http.Error(w, "not a stream request", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		io.WriteString(w, "event: put\ndata: {\"path\":\"/\",\"data\":{\"-old\":{\"matNumber\":1,\"groupId\":1}}}\n\n")
		flusher.Flush()
		<-release
		fmt.Fprintf(w, "event: put\ndata: {\"path\":\"/-new\",\"data\":{\"matNumber\":3,\"groupId\":1}}\n\n")
		flusher.Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()
	defer close(release)

	src, err := NewFirebaseSource(FirebaseConfig{DatabaseURL: srv.URL + "/", Auth: "token"}, srv.Client(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewFirebaseSource: %v", err)
	}

	sub, err := src.Subscribe(context.Background(), 1)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Close()

	release <- struct{}{}

	select {
	case p := <-sub.Presses():
		if p.Pad != 3 || p.Key != "-new" {
			t.Errorf("press = %+v, expected pad 3", p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for press")
	}

	sub.Close()
	select {
	case _, ok := <-sub.Presses():
		if ok {
			t.Error("unexpected press after Close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("press channel not closed after Close")
	}
	if sub.Err() != nil {
		t.Errorf("Err() = %v, expected nil after Close", sub.Err())
	}
}

func TestFirebaseSourceRejectedStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Permission denied"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	src, _ := NewFirebaseSource(FirebaseConfig{DatabaseURL: srv.URL}, srv.Client(), log.New(io.Discard))
	sub, err := src.Subscribe(context.Background(), 1)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	defer sub.Close()
	if err := endErr(t, sub); err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("Err() = %v, expected the 401 status", err)
	}
}

func TestFirebaseSubscribeReturnsBeforeHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	src, _ := NewFirebaseSource(FirebaseConfig{DatabaseURL: srv.URL}, srv.Client(), log.New(io.Discard))

	done := make(chan Subscription, 1)
	go func() {
		sub, _ := src.Subscribe(context.Background(), 1)
		done <- sub
	}()

	var sub Subscription
	select {
	case sub = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Subscribe waited for the server to answer")
	}
	if sub == nil {
		t.Fatal("Subscribe returned no subscription")
	}

	sub.Close()
	if err := endErr(t, sub); err != nil {
		t.Errorf("Err() = %v, expected nil after Close", err)
	}
}

func TestNewHTTPClientBoundsHeaders(t *testing.T) {
	c := NewHTTPClient()
	tr, ok := c.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("Transport = %T, expected *http.Transport", c.Transport)
	}
	if tr.ResponseHeaderTimeout != StreamHeaderTimeout {
		t.Errorf("ResponseHeaderTimeout = %v", tr.ResponseHeaderTimeout)
	}
	if c.Timeout != 0 {
		t.Error("a stream client must not carry an overall timeout")
	}
}
