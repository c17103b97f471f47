package recipe

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/recipe-api/internal/auth"
	"github.com/forkful/recipe-api/internal/httputil"
	"github.com/forkful/recipe-api/internal/logging"
)

var testPasetoKey = []byte("0123456789abcdef0123456789abcdef")

type testAPI struct {
	router *chi.Mux
	tokens *auth.PasetoService
	store  *memStore
}

func newTestAPI(t *testing.T, provider Provider) *testAPI {
	t.Helper()

	store := newMemStore()
	service := NewService(provider, store)
	logger := logging.NewLogger(true)
	handler := NewHandler(service, logger)

	pasetoService, err := auth.NewPasetoService(testPasetoKey)
	require.NoError(t, err)
	authMiddleware := auth.NewMiddleware(pasetoService)

	r := chi.NewRouter()
	r.Route("/api/recipe", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Post("/by-ingredients", handler.ByIngredients)
		r.Post("/by-name", handler.ByName)
		r.Post("/save", handler.Save)
		r.Get("/saved", handler.Saved)
		r.Put("/update/{id}", handler.Update)
		r.Delete("/delete/{id}", handler.Delete)
	})

	return &testAPI{router: r, tokens: pasetoService, store: store}
}

func (a *testAPI) sessionFor(t *testing.T, userID uuid.UUID) *http.Cookie {
	t.Helper()
	token, err := a.tokens.CreateToken(userID, time.Hour)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.SessionCookieName, Value: token}
}

func (a *testAPI) do(t *testing.T, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) httputil.Envelope {
	t.Helper()
	var env httputil.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRecipeRoutesRequireSession(t *testing.T) {
	api := newTestAPI(t, &fakeProvider{})

	paths := []struct{ method, path string }{
		{http.MethodPost, "/api/recipe/by-ingredients"},
		{http.MethodPost, "/api/recipe/by-name"},
		{http.MethodPost, "/api/recipe/save"},
		{http.MethodGet, "/api/recipe/saved"},
		{http.MethodPut, "/api/recipe/update/" + uuid.NewString()},
		{http.MethodDelete, "/api/recipe/delete/" + uuid.NewString()},
	}

	for _, p := range paths {
		rec := api.do(t, p.method, p.path, "{}", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestByIngredientsEmptyListReturnsEmptyData(t *testing.T) {
	api := newTestAPI(t, &fakeProvider{})
	cookie := api.sessionFor(t, uuid.New())

	rec := api.do(t, http.MethodPost, "/api/recipe/by-ingredients", `{"ingredients":[]}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)

	data, ok := env.Data.([]any)
	require.True(t, ok)
	assert.Empty(t, data)
}

func TestByIngredientsReturnsSummaries(t *testing.T) {
	provider := &fakeProvider{byIngredients: []Recipe{
		{ID: 1, Title: "Tomato Soup", Summary: "A classic."},
	}}
	api := newTestAPI(t, provider)
	cookie := api.sessionFor(t, uuid.New())

	rec := api.do(t, http.MethodPost, "/api/recipe/by-ingredients", `{"ingredients":["tomato"]}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	data, err := json.Marshal(env.Data)
	require.NoError(t, err)

	var recipes []Recipe
	require.NoError(t, json.Unmarshal(data, &recipes))
	require.Len(t, recipes, 1)
	assert.Equal(t, "Tomato Soup", recipes[0].Title)
}

func TestByNameNotFound(t *testing.T) {
	api := newTestAPI(t, &fakeProvider{})
	cookie := api.sessionFor(t, uuid.New())

	rec := api.do(t, http.MethodPost, "/api/recipe/by-name", `{"name":"nonexistent"}`, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestByNameUpstreamFailure(t *testing.T) {
	api := newTestAPI(t, &fakeProvider{err: ErrUpstream})
	cookie := api.sessionFor(t, uuid.New())

	rec := api.do(t, http.MethodPost, "/api/recipe/by-name", `{"name":"carbonara"}`, cookie)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestSaveAndListFlow(t *testing.T) {
	api := newTestAPI(t, &fakeProvider{})
	userID := uuid.New()
	cookie := api.sessionFor(t, userID)

	rec := api.do(t, http.MethodPost, "/api/recipe/save",
		`{"title":"Pasta","content":{"id":7,"title":"Pasta"},"searchType":"ingredient","rating":5}`, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/recipe/saved", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	data, err := json.Marshal(env.Data)
	require.NoError(t, err)

	var recipes []SavedRecipe
	require.NoError(t, json.Unmarshal(data, &recipes))
	require.Len(t, recipes, 1)
	assert.Equal(t, "Pasta", recipes[0].Title)
	assert.Equal(t, 5, recipes[0].Rating)
	assert.JSONEq(t, `{"id":7,"title":"Pasta"}`, string(recipes[0].Content))
}

func TestSaveRejectsBadSearchType(t *testing.T) {
	api := newTestAPI(t, &fakeProvider{})
	cookie := api.sessionFor(t, uuid.New())

	rec := api.do(t, http.MethodPost, "/api/recipe/save",
		`{"title":"Pasta","content":{},"searchType":"web"}`, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteByOtherUserIs404(t *testing.T) {
	api := newTestAPI(t, &fakeProvider{})
	owner := uuid.New()
	intruder := uuid.New()

	ownerCookie := api.sessionFor(t, owner)
	rec := api.do(t, http.MethodPost, "/api/recipe/save",
		`{"title":"Pasta","content":{},"searchType":"ingredient","rating":5}`, ownerCookie)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	data, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var saved SavedRecipe
	require.NoError(t, json.Unmarshal(data, &saved))

	intruderCookie := api.sessionFor(t, intruder)
	rec = api.do(t, http.MethodDelete, "/api/recipe/delete/"+saved.ID.String(), "", intruderCookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// owner can still delete it
	rec = api.do(t, http.MethodDelete, "/api/recipe/delete/"+saved.ID.String(), "", ownerCookie)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateByOtherUserIs404(t *testing.T) {
	api := newTestAPI(t, &fakeProvider{})
	owner := uuid.New()

	ownerCookie := api.sessionFor(t, owner)
	rec := api.do(t, http.MethodPost, "/api/recipe/save",
		`{"title":"Pasta","content":{},"searchType":"name","rating":2}`, ownerCookie)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	data, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var saved SavedRecipe
	require.NoError(t, json.Unmarshal(data, &saved))

	intruderCookie := api.sessionFor(t, uuid.New())
	rec = api.do(t, http.MethodPut, "/api/recipe/update/"+saved.ID.String(),
		`{"rating":1}`, intruderCookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodPut, "/api/recipe/update/"+saved.ID.String(),
		`{"rating":4}`, ownerCookie)
	require.Equal(t, http.StatusOK, rec.Code)

	env = decodeEnvelope(t, rec)
	data, err = json.Marshal(env.Data)
	require.NoError(t, err)
	var updated SavedRecipe
	require.NoError(t, json.Unmarshal(data, &updated))
	assert.Equal(t, 4, updated.Rating)
}

func TestUpdateWithMalformedIDIs404(t *testing.T) {
	api := newTestAPI(t, &fakeProvider{})
	cookie := api.sessionFor(t, uuid.New())

	rec := api.do(t, http.MethodPut, "/api/recipe/update/not-a-uuid", `{"rating":1}`, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
