package server

import (
	"encoding/json"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/roadtower/pkg/client"
	"github.com/matzehuels/roadtower/pkg/errors"
	"github.com/matzehuels/roadtower/pkg/render/sink"
)

const payload = `{"roadmap": {"career_title": "Backend", "phases": [{"phase_name": "Foundations", "milestones": [
	{"milestone_title": "Go", "subtopics": [{"title": "Syntax"}, {"title": "Tests"}]}
]}]}}`

// fakeService is a roadmap service answering from per-user tables. It
// records the request id of every call.
type fakeService struct {
	mu     sync.Mutex
	exists map[string]bool
	status map[string]int // non-OK generate status per user
	ids    []string
}

func (f *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /check_roadmap/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		json.NewEncoder(w).Encode(map[string]bool{"exists": f.exists[r.PathValue("id")]})
	})
	mux.HandleFunc("POST /generate_roadmap", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		var req struct {
			UserID string `json:"user_id"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if code := f.status[req.UserID]; code != 0 {
			w.WriteHeader(code)
			json.NewEncoder(w).Encode(map[string]string{"error": "db down"})
			return
		}
		w.Write([]byte(payload))
	})
	return mux
}

func (f *fakeService) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, r.Header.Get(client.RequestIDHeader))
}

func (f *fakeService) requestIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.ids)
}

// newTestServer starts the fake service and a render server backed by it.
func newTestServer(t *testing.T, f *fakeService) *httptest.Server {
	t.Helper()
	backend := httptest.NewServer(f.handler())
	t.Cleanup(backend.Close)

	cl, err := client.New(backend.URL)
	if err != nil {
		t.Fatal(err)
	}
	s := New(Config{Backend: cl, Logger: log.New(io.Discard)})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string, header ...string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(body)
}

func wellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("malformed XML: %v", err)
		}
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeService{})

	resp, body := get(t, srv.URL+"/healthz")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, "healthy") {
		t.Errorf("body = %q", body)
	}
}

func TestRoadmapSVG(t *testing.T) {
	srv := newTestServer(t, &fakeService{exists: map[string]bool{"u1": true}})

	for _, path := range []string{"/roadmap/u1", "/roadmap?user_id=u1", "/roadmap/new-user"} {
		t.Run(path, func(t *testing.T) {
			resp, body := get(t, srv.URL+path)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, body = %s", resp.StatusCode, body)
			}
			if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
				t.Errorf("Content-Type = %q", ct)
			}
			wellFormed(t, body)
			for _, want := range []string{"Foundations", "Syntax", "Tests", `class="roadmap-svg"`} {
				if !strings.Contains(body, want) {
					t.Errorf("SVG missing %q", want)
				}
			}
		})
	}
}

func TestRoadmapFormats(t *testing.T) {
	srv := newTestServer(t, &fakeService{exists: map[string]bool{"u1": true}})

	resp, body := get(t, srv.URL+"/roadmap/u1?format=json")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("json status = %d", resp.StatusCode)
	}
	var out struct {
		Width  float64 `json:"width"`
		Groups []any   `json:"groups"`
	}
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("json body: %v", err)
	}
	if out.Width != 1400 || len(out.Groups) != 1 {
		t.Errorf("json = width %v, %d groups", out.Width, len(out.Groups))
	}

	resp, body = get(t, srv.URL+"/roadmap/u1?format=html")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("html status = %d", resp.StatusCode)
	}
	if !strings.Contains(body, `<div class="roadmap-container">`) || !strings.Contains(body, "<svg") {
		t.Errorf("html body = %q", body)
	}

	resp, _ = get(t, srv.URL+"/roadmap/u1?format=gif")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown format status = %d, want 400", resp.StatusCode)
	}
}

func TestRoadmapErrors(t *testing.T) {
	srv := newTestServer(t, &fakeService{
		exists: map[string]bool{"broken": true},
		status: map[string]int{"broken": http.StatusInternalServerError},
	})

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/roadmap", http.StatusBadRequest, "Error: please enter a user ID"},
		{"/roadmap/broken", http.StatusBadGateway, "Error: db down"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, srv.URL+tt.path)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			wellFormed(t, body)
			if !strings.Contains(body, tt.message) {
				t.Errorf("body = %q, want message %q", body, tt.message)
			}
			if !strings.Contains(body, `class="roadmap-error"`) {
				t.Error("error SVG missing roadmap-error class")
			}
		})
	}

	resp, body := get(t, srv.URL+"/roadmap/broken?format=json")
	var out errorResponse
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadGateway || out.Code != string(errors.ErrCodeBackend) {
		t.Errorf("json error = %d %+v", resp.StatusCode, out)
	}

	_, body = get(t, srv.URL+"/roadmap/broken?format=html")
	if !strings.Contains(body, `<p class="roadmap-error">Error: db down</p>`) {
		t.Errorf("html error = %q", body)
	}
}

func TestRequestID(t *testing.T) {
	f := &fakeService{exists: map[string]bool{"u1": true}}
	srv := newTestServer(t, f)

	resp, _ := get(t, srv.URL+"/roadmap/u1", client.RequestIDHeader, "req-42")
	if got := resp.Header.Get(client.RequestIDHeader); got != "req-42" {
		t.Errorf("response id = %q, want req-42", got)
	}
	ids := f.requestIDs()
	if len(ids) != 2 {
		t.Errorf("backend saw %d calls, want check and generate", len(ids))
	}
	if len(ids) == 0 {
		t.Fatal("backend saw no calls")
	}
	for _, id := range ids {
		if id != "req-42" {
			t.Errorf("backend call carried id %q, want req-42", id)
		}
	}

	resp, _ = get(t, srv.URL+"/healthz")
	if resp.Header.Get(client.RequestIDHeader) == "" {
		t.Error("no request id generated")
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeMissingInput, "x"), http.StatusBadRequest},
		{errors.New(errors.ErrCodeInvalidInput, "x"), http.StatusBadRequest},
		{&errors.BackendError{Status: 404, Message: "x"}, http.StatusBadGateway},
		{errors.New(errors.ErrCodeMalformedPayload, "x"), http.StatusBadGateway},
		{errors.New(errors.ErrCodeMissingPayload, "x"), http.StatusInternalServerError},
		{io.EOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := StatusFor(tt.err); got != tt.want {
			t.Errorf("StatusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestErrorMessageMatchesSink(t *testing.T) {
	err := &errors.BackendError{Status: 500, Message: "db down"}
	if got := sink.ErrorMessage(err); got != "Error: db down" {
		t.Errorf("ErrorMessage() = %q", got)
	}
}

func TestUnreachableBackend(t *testing.T) {
	backend := httptest.NewServer(http.NotFoundHandler())
	url := backend.URL
	backend.Close()

	cl, err := client.New(url)
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(New(Config{Backend: cl, Logger: log.New(io.Discard)}).Handler())
	defer srv.Close()

	resp, body := get(t, srv.URL+"/roadmap/u1")
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
	if !strings.Contains(body, "Error: could not connect to the backend server") {
		t.Errorf("body = %q", body)
	}
}
