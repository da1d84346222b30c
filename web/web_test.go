package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/moohomor/storyforge/database"
	"github.com/moohomor/storyforge/logger"
	"github.com/moohomor/storyforge/storage"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	logger.InitLogger(logging.ERROR)

	dir := t.TempDir()
	if err := database.InitDB(filepath.Join(dir, "test.db")); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.CloseDB() })

	blob, err := storage.OpenBolt(filepath.Join(dir, "blob.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { blob.Close() })

	server := NewServer(blob)
	engine, err := server.initRouter()
	if err != nil {
		t.Fatal(err)
	}
	return engine
}

func do(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	out := map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestPing(t *testing.T) {
	engine := setupRouter(t)

	w, _ := do(t, engine, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestEndToEndStoryFlow(t *testing.T) {
	engine := setupRouter(t)

	w, out := do(t, engine, http.MethodPost, "/auth/reg", gin.H{"login": "alice", "password": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", out["result"])

	w, out = do(t, engine, http.MethodPost, "/auth/login", gin.H{"login": "alice", "password": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)
	sid, _ := out["sid"].(string)
	assert.NotEmpty(t, sid)

	w, out = do(t, engine, http.MethodPost, "/storage/new_story", gin.H{"sid": sid, "name": "Draft", "content": "hello"})
	assert.Equal(t, http.StatusOK, w.Code)
	storyID := int(out["id"].(float64))
	assert.NotZero(t, storyID)

	// public story content is readable without a session
	w, out = do(t, engine, http.MethodPut, "/storage/story_content", gin.H{"id": storyID})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", out["content"])
	assert.Equal(t, "OK", out["result"])

	// flip to private: anonymous reads now fail
	w, _ = do(t, engine, http.MethodPost, "/storage/update_story_properties", gin.H{"sid": sid, "id": storyID, "private": true})
	assert.Equal(t, http.StatusOK, w.Code)
	w, out = do(t, engine, http.MethodPut, "/storage/story_content", gin.H{"id": storyID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid session", out["result"])

	w, out = do(t, engine, http.MethodPut, "/storage/story_content", gin.H{"id": storyID, "sid": sid})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hello", out["content"])
}

func TestEndToEndForeignMutationDenied(t *testing.T) {
	engine := setupRouter(t)

	for _, name := range []string{"alice", "bob"} {
		w, _ := do(t, engine, http.MethodPost, "/auth/reg", gin.H{"login": name, "password": "secret"})
		assert.Equal(t, http.StatusOK, w.Code)
	}
	_, out := do(t, engine, http.MethodPost, "/auth/login", gin.H{"login": "alice", "password": "secret"})
	aliceSid := out["sid"].(string)
	_, out = do(t, engine, http.MethodPost, "/auth/login", gin.H{"login": "bob", "password": "secret"})
	bobSid := out["sid"].(string)

	_, out = do(t, engine, http.MethodPost, "/storage/new_story", gin.H{"sid": aliceSid, "name": "Draft", "content": "hello"})
	storyID := int(out["id"].(float64))

	w, out := do(t, engine, http.MethodPost, "/storage/update_story_properties", gin.H{"sid": bobSid, "id": storyID, "name": "Hacked"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid session", out["result"])

	// metadata unchanged
	_, out = do(t, engine, http.MethodPut, "/storage/story_by_id", gin.H{"id": storyID})
	assert.Equal(t, "Draft", out["name"])
}

func TestEndToEndLogin(t *testing.T) {
	engine := setupRouter(t)

	w, _ := do(t, engine, http.MethodPost, "/auth/reg", gin.H{"login": "alice", "password": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, out := do(t, engine, http.MethodPost, "/auth/login", gin.H{"login": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Wrong login or password", out["result"])

	// malformed body
	w, _ = do(t, engine, http.MethodPost, "/auth/login", gin.H{"login": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEndToEndLogout(t *testing.T) {
	engine := setupRouter(t)

	do(t, engine, http.MethodPost, "/auth/reg", gin.H{"login": "alice", "password": "secret"})
	_, out := do(t, engine, http.MethodPost, "/auth/login", gin.H{"login": "alice", "password": "secret"})
	sid := out["sid"].(string)

	w, _ := do(t, engine, http.MethodPost, "/auth/logout", gin.H{"sid": sid})
	assert.Equal(t, http.StatusOK, w.Code)

	// session gone: creating a story now fails
	w, out = do(t, engine, http.MethodPost, "/storage/new_story", gin.H{"sid": sid, "name": "x", "content": "y"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid session", out["result"])

	// logging out twice is fine
	w, _ = do(t, engine, http.MethodPost, "/auth/logout", gin.H{"sid": sid})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEndToEndNotFound(t *testing.T) {
	engine := setupRouter(t)

	w, out := do(t, engine, http.MethodPut, "/storage/story_by_id", gin.H{"id": 12345})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found", out["result"])
}
