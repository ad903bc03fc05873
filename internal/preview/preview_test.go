package preview

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/miniframe/internal/config"
	"github.com/vango-dev/miniframe/internal/errors"
)

func newTestServer(t *testing.T, cfg *config.Config) (*Server, *httptest.Server) {
	t.Helper()
	s := New(Options{Config: cfg, Registry: prometheus.NewRegistry()})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}
	return msg
}

func send(t *testing.T, conn *websocket.Conn, msg ClientMessage) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func strPtr(s string) *string { return &s }

func TestPage(t *testing.T) {
	_, ts := newTestServer(t, nil)

	status, body := get(t, ts.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	for _, want := range []string{`<title>TodoMVC</title>`, `<div id="root"></div>`, `/ws?hash=`} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, nil)
	status, body := get(t, ts.URL+"/healthz")
	if status != http.StatusOK || body != "ok\n" {
		t.Errorf("GET /healthz = %d %q", status, body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts, "")
	read(t, conn)

	status, body := get(t, ts.URL+"/metrics")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	for _, want := range []string{"miniframe_preview_sessions 1", "miniframe_renders_total"} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

func TestMetricsDisabled(t *testing.T) {
	cfg := config.New()
	off := false
	cfg.Preview.Metrics = &off
	_, ts := newTestServer(t, cfg)

	if status, _ := get(t, ts.URL+"/metrics"); status != http.StatusNotFound {
		t.Errorf("GET /metrics = %d, want 404", status)
	}
}

func TestSessionRendersAndHandlesEvents(t *testing.T) {
	s, ts := newTestServer(t, nil)
	conn := dial(t, ts, "")

	first := read(t, conn)
	if first.Type != MessageHTML {
		t.Fatalf("first message = %+v", first)
	}
	if !strings.Contains(first.HTML, "<h1>TodoMVC</h1>") || !strings.Contains(first.HTML, "<ul></ul>") {
		t.Errorf("initial html = %s", first.HTML)
	}
	if s.SessionCount() != 1 {
		t.Errorf("SessionCount() = %d, want 1", s.SessionCount())
	}

	// Typing does not render; it only updates the server-side value.
	send(t, conn, ClientMessage{Type: MessageEvent, Path: []int{0, 1}, Event: "input", Value: strPtr("write tests")})
	send(t, conn, ClientMessage{Type: MessageEvent, Path: []int{0, 2}, Event: "click"})

	msg := read(t, conn)
	if msg.Type != MessageHTML {
		t.Fatalf("message = %+v", msg)
	}
	if !strings.Contains(msg.HTML, `<li class="">write tests<button class="edit-btn">Edit</button></li>`) {
		t.Errorf("html after add = %s", msg.HTML)
	}
	if msg.Revision <= first.Revision {
		t.Errorf("revision %d not after %d", msg.Revision, first.Revision)
	}
}

func TestSessionFollowsHash(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts, "?hash=%23completed")

	first := read(t, conn)
	if first.Hash != "#completed" {
		t.Errorf("initial hash = %q", first.Hash)
	}

	send(t, conn, ClientMessage{Type: MessageHash, Hash: "#notcompleted"})
	msg := read(t, conn)
	if msg.Type != MessageHTML || msg.Hash != "#notcompleted" {
		t.Errorf("message = %+v", msg)
	}

	// Show All stores the filter, then navigates; each step renders.
	send(t, conn, ClientMessage{Type: MessageEvent, Path: []int{0, 5}, Event: "click"})
	if msg = read(t, conn); msg.Hash != "#notcompleted" {
		t.Errorf("hash after filter update = %q", msg.Hash)
	}
	if msg = read(t, conn); msg.Hash != "#all" {
		t.Errorf("hash after Show All = %q", msg.Hash)
	}
}

func TestSessionErrors(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts, "")
	read(t, conn)

	tests := []struct {
		name string
		raw  string
		code string
	}{
		{"not json", "{", errors.CodeBadMessage},
		{"unknown type", `{"type":"reload"}`, errors.CodeBadMessage},
		{"event without type", `{"type":"event","path":[0]}`, errors.CodeBadMessage},
		{"bad path", `{"type":"event","path":[0,99],"event":"click"}`, errors.CodeTargetNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.raw)); err != nil {
				t.Fatal(err)
			}
			msg := read(t, conn)
			if msg.Type != MessageError || msg.Code != tt.code {
				t.Errorf("message = %+v, want error %s", msg, tt.code)
			}
		})
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	_, ts := newTestServer(t, nil)
	a := dial(t, ts, "")
	b := dial(t, ts, "")
	read(t, a)
	read(t, b)

	send(t, a, ClientMessage{Type: MessageEvent, Path: []int{0, 1}, Event: "input", Value: strPtr("only a")})
	send(t, a, ClientMessage{Type: MessageEvent, Path: []int{0, 2}, Event: "click"})
	read(t, a)

	send(t, b, ClientMessage{Type: MessageHash, Hash: "#all"})
	msg := read(t, b)
	if strings.Contains(msg.HTML, "only a") {
		t.Error("session b sees session a's item")
	}
}

func TestServerMessageJSON(t *testing.T) {
	data, err := json.Marshal(ServerMessage{Type: MessageHTML, HTML: "<p></p>", Revision: 2})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"type":"html","html":"\u003cp\u003e\u003c/p\u003e","hash":"","revision":2}`
	if string(data) != want {
		t.Errorf("json = %s, want %s", data, want)
	}
}
