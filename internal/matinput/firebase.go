package matinput

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// PressesPath is the database node mat presses are written to.
const PressesPath = "mat_presses"

// ErrStreamCanceled is returned when the database cancels the stream,
// usually because security rules deny the read.
var ErrStreamCanceled = errors.New("matinput: stream canceled by server")

// ErrAuthRevoked is returned when the auth token used by the stream expires.
var ErrAuthRevoked = errors.New("matinput: auth revoked")

// StreamHeaderTimeout bounds the wait for the stream's response headers.
const StreamHeaderTimeout = 15 * time.Second

// NewHTTPClient returns a client for long-lived streams: no overall
// timeout, but bounded dialing and response headers.
func NewHTTPClient() *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.ResponseHeaderTimeout = StreamHeaderTimeout
	return &http.Client{Transport: tr}
}

// FirebaseConfig holds the Realtime Database settings.
type FirebaseConfig struct {
	DatabaseURL string // e.g. https://project-default-rtdb.firebaseio.com
	Auth        string // optional ID token or database secret
	Buffer      int    // press buffer per subscription
}

// FirebaseSource streams mat presses from a Firebase Realtime Database
// using the REST streaming protocol (server-sent events).
type FirebaseSource struct {
	base   *url.URL
	auth   string
	buffer int
	client *http.Client
	logger *log.Logger
}

// NewFirebaseSource validates cfg and returns a source. No request is made
// until Subscribe.
func NewFirebaseSource(cfg FirebaseConfig, client *http.Client, logger *log.Logger) (*FirebaseSource, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("matinput: firebase database URL is empty")
	}
	base, err := url.Parse(strings.TrimRight(cfg.DatabaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("matinput: invalid database URL: %w", err)
	}
	if base.Scheme != "https" && base.Scheme != "http" {
		return nil, fmt.Errorf("matinput: unsupported database URL scheme %q", base.Scheme)
	}
	if client == nil {
		client = NewHTTPClient()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &FirebaseSource{
		base:   base,
		auth:   cfg.Auth,
		buffer: cfg.Buffer,
		client: client,
		logger: logger.WithPrefix("firebase"),
	}, nil
}

// Name implements Source.
func (f *FirebaseSource) Name() string {
	return "firebase"
}

// streamURL builds the query: the newest press of the group, ordered by groupId.
func (f *FirebaseSource) streamURL(group int) string {
	u := *f.base
	u.Path = strings.TrimRight(u.Path, "/") + "/" + PressesPath + ".json"

	q := url.Values{}
	q.Set("orderBy", `"groupId"`)
	q.Set("equalTo", strconv.Itoa(group))
	q.Set("limitToLast", "1")
	if f.auth != "" {
		q.Set("auth", f.auth)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Subscribe implements Source. It returns at once; the request is made by
// the reader goroutine and a failure to open the stream ends the
// subscription with that error.
func (f *FirebaseSource) Subscribe(ctx context.Context, group int) (Subscription, error) {
	s, sctx := newStream(ctx, f.buffer)

	req, err := http.NewRequestWithContext(sctx, http.MethodGet, f.streamURL(group), nil)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("matinput: build request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	go func() {
		err := f.read(sctx, req, group, s.push)
		if sctx.Err() != nil {
			err = nil
		}
		if err != nil {
			f.logger.Warn("stream ended", "error", err)
		}
		s.finish(err)
		s.Close()
	}()

	return s, nil
}

// read opens the stream and parses it until it ends.
func (f *FirebaseSource) read(ctx context.Context, req *http.Request, group int, emit func(Press)) error {
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("matinput: open stream: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("matinput: open stream: unexpected status %s", resp.Status)
	}

	f.logger.Debug("stream opened", "group", group)
	return readEvents(ctx, bufio.NewScanner(resp.Body), group, emit)
}

// pressRecord is one child of the presses node.
type pressRecord struct {
	MatNumber float64 `json:"matNumber"`
	GroupID   float64 `json:"groupId"`
}

// streamPayload is the data of put and patch events.
type streamPayload struct {
	Path string          `json:"path"`
	Data json.RawMessage `json:"data"`
}

// readEvents parses a server-sent event stream until it ends. The first put
// is the snapshot that already existed when the stream opened; it is taken
// as the baseline and not replayed.
func readEvents(ctx context.Context, sc *bufio.Scanner, group int, emit func(Press)) error {
	var (
		event    string
		data     strings.Builder
		baseline = true
		last     string // key of the newest press; the query keeps one record
	)

	dispatch := func() error {
		defer func() {
			event = ""
			data.Reset()
		}()

		switch event {
		case "put", "patch":
			var p streamPayload
			if err := json.Unmarshal([]byte(data.String()), &p); err != nil {
				return nil // malformed events are skipped
			}
			presses := decodePresses(p, event == "patch")
			if baseline && event == "put" {
				baseline = false
				for _, pr := range presses {
					last = max(last, pr.Key)
				}
				return nil
			}
			for _, pr := range presses {
				if pr.Key == last || pr.Group != group {
					continue
				}
				last = pr.Key
				emit(pr)
			}
		case "cancel":
			return ErrStreamCanceled
		case "auth_revoked":
			return ErrAuthRevoked
		}
		return nil
	}

	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := sc.Text()
		switch {
		case line == "":
			if err := dispatch(); err != nil {
				return err
			}
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("matinput: read stream: %w", err)
	}
	if event != "" {
		return dispatch()
	}
	return nil
}

// decodePresses turns a put/patch payload into presses. A payload at the
// root carries a map of children; a payload at "/<key>" carries one child.
func decodePresses(p streamPayload, patch bool) []Press {
	path := strings.Trim(p.Path, "/")

	if path == "" || patch {
		var children map[string]json.RawMessage
		if err := json.Unmarshal(p.Data, &children); err != nil {
			return nil
		}
		var out []Press
		for key, raw := range children {
			if path != "" {
				key = path + "/" + key
			}
			if pr, ok := decodeRecord(key, raw); ok {
				out = append(out, pr)
			}
		}
		return out
	}

	if strings.Contains(path, "/") {
		return nil // a field of an existing record changed
	}
	if pr, ok := decodeRecord(path, p.Data); ok {
		return []Press{pr}
	}
	return nil
}

func decodeRecord(key string, raw json.RawMessage) (Press, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return Press{}, false
	}
	var rec pressRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Press{}, false
	}
	// Fractional ids name no pad or group.
	if !whole(rec.MatNumber) || !whole(rec.GroupID) {
		return Press{}, false
	}
	return Press{Pad: int(rec.MatNumber), Group: int(rec.GroupID), Key: key}, true
}

func whole(v float64) bool {
	return v == math.Trunc(v) && math.Abs(v) <= math.MaxInt32
}
