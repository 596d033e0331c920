package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/longkey1/chatbot/internal/chat"
)

// recordedRequest is what the test server saw.
type recordedRequest struct {
	Method string
	Header http.Header
}

// newTestServer returns a server that answers with the given status and body
// and records the last request it saw.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *recordedRequest, *[]byte) {
	t.Helper()
	gotReq := &recordedRequest{}
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReq.Method = r.Method
		gotReq.Header = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, gotReq, &gotBody
}

func TestFetch_Success(t *testing.T) {
	srv, gotReq, gotBody := newTestServer(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"**Hi** there"}]}}]}`)

	client := NewClient(srv.URL)
	turn, err := client.Fetch(context.Background(), []chat.Turn{chat.UserTurn("Hello")})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if turn.Role != chat.RoleModel {
		t.Errorf("Role = %q, want %q", turn.Role, chat.RoleModel)
	}
	if turn.Text != "Hi there" {
		t.Errorf("Text = %q, want %q", turn.Text, "Hi there")
	}

	if gotReq.Method != http.MethodPost {
		t.Errorf("Method = %s, want POST", gotReq.Method)
	}
	if ct := gotReq.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var payload Request
	if err := json.Unmarshal(*gotBody, &payload); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	want := Request{Contents: []Content{{Role: "user", Parts: []Part{{Text: "Hello"}}}}}
	if !reflect.DeepEqual(payload, want) {
		t.Errorf("payload = %+v, want %+v", payload, want)
	}
}

func TestFetch_RequestBodyShape(t *testing.T) {
	srv, _, gotBody := newTestServer(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)

	turns := []chat.Turn{chat.UserTurn("Hello"), chat.PlaceholderTurn()}
	if _, err := NewClient(srv.URL).Fetch(context.Background(), turns); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	want := `{"contents":[{"role":"user","parts":[{"text":"Hello"}]},{"role":"model","parts":[{"text":"Thinking..."}]}]}`
	if string(*gotBody) != want {
		t.Errorf("body = %s\nwant %s", *gotBody, want)
	}
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, ErrTransport},
		{"not found", http.StatusNotFound, ``, ErrTransport},
		{"invalid json", http.StatusOK, `not json`, ErrFormat},
		{"missing candidates", http.StatusOK, `{}`, ErrFormat},
		{"empty candidates", http.StatusOK, `{"candidates":[]}`, ErrFormat},
		{"missing content", http.StatusOK, `{"candidates":[{}]}`, ErrFormat},
		{"missing parts", http.StatusOK, `{"candidates":[{"content":{}}]}`, ErrFormat},
		{"empty parts", http.StatusOK, `{"candidates":[{"content":{"parts":[]}}]}`, ErrFormat},
		{"missing text", http.StatusOK, `{"candidates":[{"content":{"parts":[{}]}}]}`, ErrFormat},
		{"null body", http.StatusOK, `null`, ErrFormat},
		{"array body", http.StatusOK, `[]`, ErrFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _, _ := newTestServer(t, tt.status, tt.body)
			_, err := NewClient(srv.URL).Fetch(context.Background(), []chat.Turn{chat.UserTurn("Hello")})
			if err == nil {
				t.Fatalf("Fetch() error = nil, want %v", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Fetch() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFetch_StatusErrorDetails(t *testing.T) {
	srv, _, _ := newTestServer(t, http.StatusInternalServerError, `upstream down`)

	client := NewClient(srv.URL)
	client.SetDebug(true)
	_, err := client.Fetch(context.Background(), nil)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Fetch() error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", statusErr.StatusCode)
	}
	if statusErr.Body != "upstream down" {
		t.Errorf("Body = %q, want %q", statusErr.Body, "upstream down")
	}
}

func TestFetch_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Fetch(context.Background(), []chat.Turn{chat.UserTurn("Hello")})
	if !errors.Is(err, ErrTransport) {
		t.Errorf("Fetch() error = %v, want ErrTransport", err)
	}
}

func TestFetch_EmptyTextIsValid(t *testing.T) {
	srv, _, _ := newTestServer(t, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"  "}]}}]}`)

	turn, err := NewClient(srv.URL).Fetch(context.Background(), nil)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if turn.Text != "" {
		t.Errorf("Text = %q, want empty", turn.Text)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		turns []chat.Turn
	}{
		{"empty", []chat.Turn{}},
		{"single user turn", []chat.Turn{chat.UserTurn("Hello")}},
		{"dialogue", []chat.Turn{
			chat.UserTurn("Hello"),
			chat.ModelTurn("Hi there"),
			chat.UserTurn("What's **new**?"),
			chat.PlaceholderTurn(),
		}},
		{"unicode and whitespace", []chat.Turn{chat.UserTurn("  こんにちは\n"), chat.ModelTurn("")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := EncodeContents(tt.turns)

			data, err := json.Marshal(req)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			var decoded Request
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}

			got := DecodeContents(decoded)
			if !reflect.DeepEqual(got, tt.turns) {
				t.Errorf("round trip = %v, want %v", got, tt.turns)
			}
		})
	}
}

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		model   string
		token   string
		want    string
	}{
		{
			name:    "all set",
			baseURL: "https://example.com/v1beta",
			model:   "gemini-1.5-pro",
			token:   "secret",
			want:    "https://example.com/v1beta/models/gemini-1.5-pro:generateContent?key=secret",
		},
		{
			name: "defaults",
			want: DefaultBaseURL + "/models/" + DefaultModel + ":generateContent",
		},
		{
			name:    "trailing slash",
			baseURL: "http://localhost:8080/",
			model:   "m",
			want:    "http://localhost:8080/models/m:generateContent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EndpointURL(tt.baseURL, tt.model, tt.token); got != tt.want {
				t.Errorf("EndpointURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
