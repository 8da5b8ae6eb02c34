package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"vocab-center/auth"
	"vocab-center/models"
	"vocab-center/repositories"
	"vocab-center/services"

	restful "github.com/emicklei/go-restful/v3"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupContainer wires the full stack (sqlite, repositories, services,
// session filter, controllers) into a restful container for HTTP tests.
func setupContainer(t *testing.T) (*restful.Container, *gorm.DB) {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.WordClass{},
		&models.Word{},
		&models.Set{},
		&models.WordSet{},
	))

	userService := services.NewUserService(repositories.NewUserRepository(db))
	vocabService := services.NewVocabService(repositories.NewWordRepository(db), repositories.NewSetRepository(db))
	sessionFilter := auth.AuthFilter(userService)

	container := restful.NewContainer()

	rootWS := new(restful.WebService)
	NewUserController(userService).RegisterRoutes(rootWS)
	container.Add(rootWS)

	wordWS := new(restful.WebService)
	NewWordController(vocabService, sessionFilter).RegisterRoutes(wordWS)
	container.Add(wordWS)

	setWS := new(restful.WebService)
	NewSetController(vocabService, sessionFilter).RegisterRoutes(setWS)
	container.Add(setWS)

	return container, db
}

// doJSON issues a JSON request with an optional bearer token.
func doJSON(t *testing.T, container *restful.Container, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	container.ServeHTTP(w, req)
	return w
}

// registerUser registers through the HTTP surface and returns the session
// token handed out by auto-login.
func registerUser(t *testing.T, container *restful.Container, username string) (token string, userID uint) {
	t.Helper()
	w := doJSON(t, container, "POST", "/register", "", services.RegisterInput{
		Username: username,
		Password: "password",
	})
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())

	var resp AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

// createWord creates a word through the HTTP surface and returns its id.
func createWord(t *testing.T, container *restful.Container, token string, hanzi string) uint {
	t.Helper()
	w := doJSON(t, container, "POST", "/words", token, services.CreateWordInput{
		Hanzi:       hanzi,
		Translation: "translation of " + hanzi,
	})
	require.Equal(t, http.StatusCreated, w.Code, "create word failed: %s", w.Body.String())

	var resp WordResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

// createSet creates a set through the HTTP surface and returns its id.
func createSet(t *testing.T, container *restful.Container, token string, name string) uint {
	t.Helper()
	w := doJSON(t, container, "POST", "/sets", token, services.SetInput{Name: name})
	require.Equal(t, http.StatusCreated, w.Code, "create set failed: %s", w.Body.String())

	var resp SetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func membershipPath(setID, wordID uint) string {
	return fmt.Sprintf("/sets/%d/words/%d", setID, wordID)
}
