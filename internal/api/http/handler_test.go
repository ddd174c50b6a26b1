package http_test

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	httpapi "bingo-server/internal/api/http"
	"bingo-server/internal/api/ws"
	"bingo-server/internal/config"
	"bingo-server/internal/room"
	"bingo-server/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*gin.Engine, *room.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	rm := room.NewManager(store.NewMemoryStore(), logger, rand.New(rand.NewSource(9)))
	hub := ws.NewHub(rm, logger)
	rm.SetHub(hub)
	cfg := config.Config{HTTPAddr: ":0", AllowedOrigins: []string{"*"}}
	return httpapi.NewRouter(rm, hub, cfg, logger), rm
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJoinQuickPlayRedirects(t *testing.T) {
	r, rm := newTestRouter(t)

	w := postForm(r, "/join", url.Values{"player_name": {"Alice"}, "player_id": {"p1"}})
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	loc := w.Header().Get("Location")
	if !strings.HasPrefix(loc, "/game/") || !strings.Contains(loc, "player_id=p1") {
		t.Fatalf("Location = %q", loc)
	}

	code := strings.TrimPrefix(loc, "/game/")
	code = code[:strings.Index(code, "?")]
	if _, ok := rm.Get(code); !ok {
		t.Fatalf("redirect points at unknown room %q", code)
	}
}

func TestJoinGeneratesPlayerID(t *testing.T) {
	r, _ := newTestRouter(t)
	w := postForm(r, "/join", url.Values{"player_name": {"Alice"}})
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if !strings.Contains(w.Header().Get("Location"), "player_id=") {
		t.Fatalf("Location %q carries no player_id", w.Header().Get("Location"))
	}
}

func TestJoinUnknownCodeRejected(t *testing.T) {
	r, _ := newTestRouter(t)
	w := postForm(r, "/join", url.Values{
		"player_name": {"Alice"},
		"game_code":   {"NOSUCH"},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["error"] == "" {
		t.Fatal("expected an error message")
	}
}

func TestJoinFullPrivateRoomRejected(t *testing.T) {
	r, rm := newTestRouter(t)
	priv, _, err := rm.Join("h", "Host", room.JoinRequest{CreateNew: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := rm.Join("g", "Guest", room.JoinRequest{GameCode: priv.Code}); err != nil {
		t.Fatal(err)
	}

	w := postForm(r, "/join", url.Values{
		"player_name": {"Third"},
		"player_id":   {"x"},
		"game_code":   {priv.Code},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGameStateForPlayer(t *testing.T) {
	r, rm := newTestRouter(t)
	rx, _, err := rm.Join("p1", "Alice", room.JoinRequest{})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/game/"+rx.Code+"?player_id=p1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var snap map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap["room_code"] != rx.Code || snap["status"] != "waiting" {
		t.Fatalf("snapshot = %v", snap)
	}
	if snap["your_turn"] != true {
		t.Fatal("first player must hold the turn")
	}
	board := snap["board"].([]interface{})
	if len(board) != 5 {
		t.Fatalf("board rows = %d, want 5", len(board))
	}
}

func TestGameStateMissingSessionRedirects(t *testing.T) {
	r, rm := newTestRouter(t)
	rx, _, err := rm.Join("p1", "Alice", room.JoinRequest{})
	if err != nil {
		t.Fatal(err)
	}

	// No player_id, an unknown player, and an unknown room all redirect.
	for _, path := range []string{
		"/game/" + rx.Code,
		"/game/" + rx.Code + "?player_id=stranger",
		"/game/NOSUCH?player_id=p1",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/join" {
			t.Fatalf("%s: status=%d location=%q, want 302 /join", path, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestMakeMove(t *testing.T) {
	r, rm := newTestRouter(t)
	rx, _, err := rm.Join("a", "Alice", room.JoinRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := rm.Join("b", "Bob", room.JoinRequest{}); err != nil {
		t.Fatal(err)
	}

	body := `{"player_id":"a","row":0,"col":0}`
	req := httptest.NewRequest(http.MethodPost, "/game/"+rx.Code+"/make-move", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204 (%s)", w.Code, w.Body.String())
	}
	if len(rx.Called) != 1 {
		t.Fatalf("called = %v, want one number", rx.Called)
	}

	// Not the mover's turn anymore.
	req = httptest.NewRequest(http.MethodPost, "/game/"+rx.Code+"/make-move", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] != room.ErrNotYourTurn.Error() {
		t.Fatalf("error = %q, want %q", resp["error"], room.ErrNotYourTurn.Error())
	}
}

func TestMakeMoveValidation(t *testing.T) {
	r, rm := newTestRouter(t)
	rx, _, err := rm.Join("a", "Alice", room.JoinRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := rm.Join("b", "Bob", room.JoinRequest{}); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing player redirects", `{"row":0,"col":0}`, http.StatusFound},
		{"half cell", `{"player_id":"a","row":2}`, http.StatusBadRequest},
		{"out of range", `{"player_id":"a","row":9,"col":0}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/game/"+rx.Code+"/make-move", strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("%s: status = %d, want %d", tc.name, w.Code, tc.want)
		}
	}
	if len(rx.Called) != 0 {
		t.Fatalf("rejected moves called numbers: %v", rx.Called)
	}
}

func TestHealthz(t *testing.T) {
	r, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}
