package config

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"Recipe-Share-Backend/domain"
	"Recipe-Share-Backend/entities"
	"Recipe-Share-Backend/internal/middleware"
	"Recipe-Share-Backend/internal/testutil"
	"Recipe-Share-Backend/internal/utils/mailing"
	"Recipe-Share-Backend/internal/utils/storage"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testServer struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.SetupTestDB(t)
	imageStorage, err := storage.NewLocalStorage(t.TempDir(), "/static/images")
	require.NoError(t, err)

	app, err := NewApp(db, AppOptions{
		Storage:          imageStorage,
		Mailer:           mailing.NewMailer(mailing.MailConfig{}),
		JWTSecret:        "test-secret",
		AdminSecurityKey: "let-me-in",
		AccessLog:        io.Discard,
		PasswordCost:     bcrypt.MinCost,
	})
	require.NoError(t, err)
	return &testServer{t: t, app: app, db: db}
}

func (s *testServer) do(req *http.Request, session string) *http.Response {
	s.t.Helper()
	if session != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: session})
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	return resp
}

func (s *testServer) json(method, target string, body any, session string) *http.Response {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return s.do(req, session)
}

func (s *testServer) form(target string, values url.Values, session string) *http.Response {
	s.t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return s.do(req, session)
}

// signupAndLogin registers username and returns its session cookie value.
func (s *testServer) signupAndLogin(username string) string {
	s.t.Helper()

	resp := s.json(http.MethodPost, "/signup", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	}, "")
	require.Equal(s.t, fiber.StatusOK, resp.StatusCode)

	resp = s.json(http.MethodPost, "/login", fiber.Map{"username": username, "password": "secret123"}, "")
	require.Equal(s.t, fiber.StatusOK, resp.StatusCode)
	for _, cookie := range resp.Cookies() {
		if cookie.Name == middleware.SessionCookie {
			return cookie.Value
		}
	}
	s.t.Fatalf("login for %s did not set a session cookie", username)
	return ""
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func recipeForm(name string, tags ...string) url.Values {
	values := url.Values{
		"recipe_name":  {name},
		"description":  {"A quick dinner"},
		"cuisine_type": {"Italian"},
		"prep_time":    {"10"},
		"cook_time":    {"20"},
		"instructions": {"Boil. Toss."},
		"ingredients":  {"pasta, peas"},
	}
	for _, tag := range tags {
		values.Add("tags[]", tag)
	}
	return values
}

func TestPing(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(httptest.NewRequest(http.MethodGet, "/api/ping", nil), "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", decode(t, resp)["message"])
}

func TestSignupAndLogin(t *testing.T) {
	s := newTestServer(t)
	session := s.signupAndLogin("alice")
	assert.NotEmpty(t, session)

	resp := s.json(http.MethodPost, "/signup", fiber.Map{
		"username": "alice",
		"email":    "other@example.com",
		"password": "secret123",
	}, "")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, false, decode(t, resp)["success"])

	resp = s.json(http.MethodPost, "/login", fiber.Map{"username": "alice", "password": "wrong"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, domain.MessageFailedLogin, decode(t, resp)["message"])

	resp = s.json(http.MethodPost, "/signup", fiber.Map{"username": "bob"}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSessionRequired(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(httptest.NewRequest(http.MethodGet, "/api/recommended", nil), "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, decode(t, resp), "error")

	resp = s.do(httptest.NewRequest(http.MethodGet, "/dashboard", nil), "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))

	resp = s.do(httptest.NewRequest(http.MethodGet, "/logout", nil), "")
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get(fiber.HeaderLocation))
}

func TestRecipeLifecycle(t *testing.T) {
	s := newTestServer(t)
	alice := s.signupAndLogin("alice")
	bob := s.signupAndLogin("bob")

	resp := s.form("/create-recipe", recipeForm("Pasta Primavera", domain.TagVegetarian), alice)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/recipe/pasta-primavera", resp.Header.Get(fiber.HeaderLocation))

	resp = s.form("/create-recipe", recipeForm("Pasta Primavera"), alice)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = s.do(httptest.NewRequest(http.MethodGet, "/recipe/pasta-primavera", nil), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	detail := decode(t, resp)["recipe"].(map[string]any)
	assert.Equal(t, "Pasta Primavera", detail["recipe_name"])
	assert.Equal(t, []any{"pasta", "peas"}, detail["ingredients"])
	assert.Equal(t, []any{domain.TagVegetarian}, detail["tags"])
	assert.Equal(t, false, detail["can_edit"])

	resp = s.do(httptest.NewRequest(http.MethodGet, "/recipe/missing", nil), "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = s.do(httptest.NewRequest(http.MethodGet, "/dashboard?search=primavera", nil), alice)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode(t, resp)["recipes"], 1)

	resp = s.do(httptest.NewRequest(http.MethodGet, "/edit-recipe/pasta-primavera", nil), bob)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/recipe/pasta-primavera", resp.Header.Get(fiber.HeaderLocation))

	edit := recipeForm("ignored", domain.TagVegan)
	edit.Set("description", "Now vegan")
	resp = s.form("/edit-recipe/pasta-primavera", edit, alice)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/recipe/pasta-primavera", resp.Header.Get(fiber.HeaderLocation))

	resp = s.do(httptest.NewRequest(http.MethodDelete, "/delete-recipe/Pasta%20Primavera", nil), "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = s.do(httptest.NewRequest(http.MethodDelete, "/delete-recipe/Pasta%20Primavera", nil), bob)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = s.do(httptest.NewRequest(http.MethodDelete, "/delete-recipe/Pasta%20Primavera", nil), alice)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(0), testutil.Count(t, s.db, &entities.Recipe{}, ""))
}

func TestCookbookAndRatingRoutes(t *testing.T) {
	s := newTestServer(t)
	alice := s.signupAndLogin("alice")
	bob := s.signupAndLogin("bob")

	resp := s.form("/create-recipe", recipeForm("Green Salad", domain.TagVegan), alice)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp = s.do(httptest.NewRequest(http.MethodPost, "/toggle-cookbook/Green%20Salad", nil), bob)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, true, body["in_cookbook"])
	assert.Equal(t, domain.MessageSuccessSaveToCookbook, body["message"])

	resp = s.do(httptest.NewRequest(http.MethodGet, "/check-cookbook/Green%20Salad", nil), bob)
	assert.Equal(t, true, decode(t, resp)["in_cookbook"])

	resp = s.do(httptest.NewRequest(http.MethodGet, "/check-cookbook/Green%20Salad", nil), "")
	assert.Equal(t, false, decode(t, resp)["in_cookbook"])

	resp = s.do(httptest.NewRequest(http.MethodPost, "/save-to-cookbook/Green%20Salad", nil), bob)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = s.do(httptest.NewRequest(http.MethodGet, "/cookbook", nil), bob)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode(t, resp)["recipes"], 1)

	resp = s.do(httptest.NewRequest(http.MethodPost, "/toggle-cookbook/Green%20Salad", nil), bob)
	body = decode(t, resp)
	assert.Equal(t, false, body["in_cookbook"])
	assert.Equal(t, domain.MessageSuccessRemoveFromCookbook, body["message"])

	resp = s.json(http.MethodPost, "/rate-recipe", fiber.Map{"recipe_name": "Green Salad", "rating": 6}, bob)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = s.json(http.MethodPost, "/rate-recipe", fiber.Map{"recipe_name": "Missing", "rating": 3}, bob)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = s.json(http.MethodPost, "/rate-recipe", fiber.Map{"recipe_name": "Green Salad", "rating": 4}, bob)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decode(t, resp)
	assert.InDelta(t, 4.0, body["avg_rating"], 0.001)
	assert.InDelta(t, 1.0, body["rating_count"], 0.001)

	resp = s.json(http.MethodPost, "/rate-recipe", fiber.Map{"recipe_name": "Green Salad", "rating": 2}, alice)
	body = decode(t, resp)
	assert.InDelta(t, 3.0, body["avg_rating"], 0.001)
	assert.InDelta(t, 2.0, body["rating_count"], 0.001)
}

func TestRecommendedFollowsRestrictions(t *testing.T) {
	s := newTestServer(t)
	alice := s.signupAndLogin("alice")

	require.Equal(t, fiber.StatusFound, s.form("/create-recipe", recipeForm("Green Salad", domain.TagVegan), alice).StatusCode)
	require.Equal(t, fiber.StatusFound, s.form("/create-recipe", recipeForm("Steak"), alice).StatusCode)

	resp := s.json(http.MethodPost, "/update_diet_restrictions", fiber.Map{"restrictions": []string{domain.TagVegan}}, alice)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = s.do(httptest.NewRequest(http.MethodGet, "/api/recommended", nil), alice)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	recipes := decode(t, resp)["recipes"].([]any)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Green Salad", recipes[0].(map[string]any)["recipe_name"])

	resp = s.json(http.MethodPost, "/update_diet_restrictions", fiber.Map{"restrictions": []string{"Keto"}}, alice)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAccountSettingsRoutes(t *testing.T) {
	s := newTestServer(t)
	alice := s.signupAndLogin("alice")
	s.signupAndLogin("bob")

	resp := s.json(http.MethodPost, "/change_username", fiber.Map{"new_username": "bob"}, alice)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = s.json(http.MethodPost, "/change_password", fiber.Map{"current_password": "nope", "new_password": "newsecret"}, alice)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = s.json(http.MethodPost, "/update_security_key", fiber.Map{"security_key": "wrong"}, alice)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = s.json(http.MethodPost, "/update_security_key", fiber.Map{"security_key": "let-me-in"}, alice)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decode(t, resp)["is_admin"])

	resp = s.do(httptest.NewRequest(http.MethodGet, "/settings", nil), alice)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	profile := decode(t, resp)["profile"].(map[string]any)
	assert.Equal(t, "alice", profile["username"])
	assert.Equal(t, true, profile["is_admin"])

	resp = s.do(httptest.NewRequest(http.MethodPost, "/delete_account", nil), alice)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(1), testutil.Count(t, s.db, &entities.Account{}, ""))
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(httptest.NewRequest(http.MethodGet, "/api/ping", nil), "")

	resp := s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil), "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "recipeshare_http_requests_total")
}
