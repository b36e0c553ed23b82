package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	handler "github.com/vncsmyrnk/dailyvote/internal/adapters/handler/http"
	"github.com/vncsmyrnk/dailyvote/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/dailyvote/internal/adapters/security"
	"github.com/vncsmyrnk/dailyvote/internal/core/domain"
	"github.com/vncsmyrnk/dailyvote/internal/core/ports"
	"github.com/vncsmyrnk/dailyvote/internal/core/services"
)

type repository interface {
	ports.PartyRepository
	ports.UserRepository
	ports.VoteRepository
	ports.TallyRepository
}

func newTestServer(t *testing.T, repo repository) *httptest.Server {
	t.Helper()
	return newTestServerWithConfig(t, repo, handler.RouterConfig{AllowedOrigins: []string{"*"}})
}

func newTestServerWithConfig(t *testing.T, repo repository, cfg handler.RouterConfig) *httptest.Server {
	t.Helper()

	router := handler.NewHandler(
		handler.NewPartyHandler(services.NewPartyService(repo, nil)),
		handler.NewTallyHandler(services.NewTallyService(repo, nil)),
		handler.NewVoteHandler(services.NewVoteService(repo, nil)),
		handler.NewAccountHandler(services.NewAccountService(repo, security.NewBcryptHasher(bcrypt.MinCost), nil), nil),
		nil,
		cfg,
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, server *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := server.Client().Post(server.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func get(t *testing.T, server *httptest.Server, path string) *http.Response {
	t.Helper()
	resp, err := server.Client().Get(server.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// brokenStore fails every operation, standing in for an unreachable database.
type brokenStore struct{}

var errUnreachable = errors.New("database unreachable")

func (brokenStore) List(context.Context) ([]domain.Party, error) { return nil, errUnreachable }
func (brokenStore) FindConflict(context.Context, string, string) (domain.Conflict, error) {
	return domain.NoConflict, errUnreachable
}
func (brokenStore) Create(context.Context, *domain.User) error { return errUnreachable }
func (brokenStore) GetByID(context.Context, string) (*domain.User, error) {
	return nil, errUnreachable
}
func (brokenStore) UpsertVote(context.Context, *domain.Vote) error { return errUnreachable }
func (brokenStore) GetByUser(context.Context, string) (*domain.Vote, error) {
	return nil, errUnreachable
}
func (brokenStore) CountVotes(context.Context) (domain.Tally, error) { return nil, errUnreachable }

// slowStore blocks until the request deadline passes.
type slowStore struct{ brokenStore }

func (slowStore) CountVotes(ctx context.Context) (domain.Tally, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowStore) UpsertVote(ctx context.Context, _ *domain.Vote) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestWelcomeAndMessage(t *testing.T) {
	server := newTestServer(t, memory.NewStore(nil))

	resp := get(t, server, "/api/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "welcome", string(body))

	resp = get(t, server, "/api/message")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	msg := decode[map[string]string](t, resp)
	assert.NotEmpty(t, msg["message"])
}

func TestListParties(t *testing.T) {
	server := newTestServer(t, memory.NewStore(memory.DefaultParties()))

	resp := get(t, server, "/api/parties")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	parties := decode[[]map[string]any](t, resp)
	require.Len(t, parties, 11)
	assert.Equal(t, float64(1), parties[0]["id"])
	assert.Equal(t, "自由民主党", parties[0]["name"])
	assert.Equal(t, true, parties[0]["ruling_party"])
	assert.Equal(t, false, parties[2]["ruling_party"])
}

func TestVoteFlowAndTally(t *testing.T) {
	server := newTestServer(t, memory.NewStore(memory.DefaultParties()))

	resp := postJSON(t, server, "/api/register", map[string]string{"user_id": "alice", "password": "pw1", "phone": "090-1111"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, map[string]any{"success": true}, decode[map[string]any](t, resp))

	resp = postJSON(t, server, "/api/register", map[string]string{"user_id": "bob", "password": "pw2", "phone": "090-2222"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	for _, v := range []map[string]any{
		{"user_id": "alice", "party_id": 1},
		{"user_id": "bob", "party_id": 1},
		{"user_id": "alice", "party_id": 2},
	} {
		resp = postJSON(t, server, "/api/vote", v)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "vote recorded", decode[map[string]string](t, resp)["message"])
	}

	resp = get(t, server, "/api/tally")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var tally map[string]int64
	require.NoError(t, json.Unmarshal(raw, &tally))
	require.Len(t, tally, 11)
	assert.Equal(t, int64(1), tally["自由民主党"])
	assert.Equal(t, int64(1), tally["公明党"])
	assert.Equal(t, int64(0), tally["その他"])
	assert.True(t, bytes.HasPrefix(raw, []byte(`{"自由民主党":1,"公明党":1,"立憲民主党":0`)), string(raw))

	resp = get(t, server, "/api/vote/alice")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	current := decode[map[string]any](t, resp)
	assert.Equal(t, "alice", current["user_id"])
	assert.Equal(t, float64(2), current["party_id"])
	assert.NotEmpty(t, current["voted_at"])
}

func TestCastVote_MissingFields(t *testing.T) {
	server := newTestServer(t, memory.NewStore(memory.DefaultParties()))
	resp := postJSON(t, server, "/api/register", map[string]string{"user_id": "alice", "password": "pw1", "phone": "090-1111"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = postJSON(t, server, "/api/vote", map[string]any{"user_id": "alice", "party_id": 4})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, body := range []any{
		map[string]any{"user_id": "alice"},
		map[string]any{"party_id": 1},
		map[string]any{"user_id": "", "party_id": 1},
		"not an object",
	} {
		resp := postJSON(t, server, "/api/vote", body)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, map[string]string{"error": "missing fields"}, decode[map[string]string](t, resp))
	}

	resp = get(t, server, "/api/vote/alice")
	assert.Equal(t, float64(4), decode[map[string]any](t, resp)["party_id"])
}

func TestCastVote_UnknownParty(t *testing.T) {
	server := newTestServer(t, memory.NewStore(memory.DefaultParties()))
	postJSON(t, server, "/api/register", map[string]string{"user_id": "alice", "password": "pw1", "phone": "090-1111"})

	resp := postJSON(t, server, "/api/vote", map[string]any{"user_id": "alice", "party_id": 42})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "unknown party", decode[map[string]string](t, resp)["error"])
}

func TestGetCurrentVote_NoVote(t *testing.T) {
	server := newTestServer(t, memory.NewStore(memory.DefaultParties()))

	resp := get(t, server, "/api/vote/nobody")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"user_id": "nobody", "party_id": nil}, decode[map[string]any](t, resp))
}

func TestRegister_Failures(t *testing.T) {
	server := newTestServer(t, memory.NewStore(nil))
	resp := postJSON(t, server, "/api/register", map[string]string{"user_id": "alice", "password": "pw1", "phone": "090-1111"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	tests := []struct {
		name       string
		body       any
		wantStatus int
		wantMsg    string
	}{
		{"duplicate id", map[string]string{"user_id": "alice", "password": "x", "phone": "090-3333"}, http.StatusConflict, domain.ErrDuplicateUserID.Error()},
		{"duplicate phone", map[string]string{"user_id": "carol", "password": "x", "phone": "090-1111"}, http.StatusConflict, domain.ErrDuplicateContact.Error()},
		{"missing phone", map[string]string{"user_id": "carol", "password": "x"}, http.StatusBadRequest, "missing fields"},
		{"malformed body", []int{1, 2}, http.StatusBadRequest, "missing fields"},
		{"password too long", map[string]string{"user_id": "carol", "password": strings.Repeat("a", 73), "phone": "090-4444"}, http.StatusBadRequest, domain.ErrPasswordTooLong.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, server, "/api/register", tt.body)
			require.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decode[map[string]any](t, resp)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantMsg, body["message"])
		})
	}
}

func TestLogin(t *testing.T) {
	server := newTestServer(t, memory.NewStore(nil))
	postJSON(t, server, "/api/register", map[string]string{"user_id": "alice", "password": "pw1", "phone": "090-1111"})

	resp := postJSON(t, server, "/api/login", map[string]string{"user_id": "alice", "password": "pw1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"success": true, "user_id": "alice"}, decode[map[string]any](t, resp))

	for _, password := range []string{"wrong", strings.Repeat("a", 73)} {
		resp = postJSON(t, server, "/api/login", map[string]string{"user_id": "alice", "password": password})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, map[string]any{"success": false}, decode[map[string]any](t, resp))
	}
}

func TestStoreUnavailable(t *testing.T) {
	server := newTestServer(t, brokenStore{})

	resp := get(t, server, "/api/parties")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotEmpty(t, decode[map[string]string](t, resp)["error"])

	resp = get(t, server, "/api/tally")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp = postJSON(t, server, "/api/vote", map[string]any{"user_id": "alice", "party_id": 1})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "failed to record vote", decode[map[string]string](t, resp)["error"])

	resp = postJSON(t, server, "/api/register", map[string]string{"user_id": "alice", "password": "pw1", "phone": "090-1111"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, false, decode[map[string]any](t, resp)["success"])

	// A lookup fault looks exactly like a credential mismatch.
	resp = postJSON(t, server, "/api/login", map[string]string{"user_id": "alice", "password": "pw1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"success": false}, decode[map[string]any](t, resp))
}

func TestRequestTimeout(t *testing.T) {
	server := newTestServerWithConfig(t, slowStore{}, handler.RouterConfig{
		AllowedOrigins: []string{"*"},
		RequestTimeout: 50 * time.Millisecond,
	})

	resp := get(t, server, "/api/tally")
	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, body)

	resp = postJSON(t, server, "/api/vote", map[string]any{"user_id": "alice", "party_id": 1})
	assert.Equal(t, http.StatusGatewayTimeout, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t, memory.NewStore(nil))

	req, err := http.NewRequest(http.MethodOptions, server.URL+"/api/vote", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.github.io")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost)
}
