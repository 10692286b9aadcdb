package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/pf-responses/respuestas-api/internal/constants"
	"github.com/pf-responses/respuestas-api/internal/database"
	"github.com/pf-responses/respuestas-api/internal/models"
	"github.com/pf-responses/respuestas-api/internal/repository"
	"github.com/pf-responses/respuestas-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type apiTestEnv struct {
	db          *gorm.DB
	router      *gin.Engine
	authService *services.AuthService
}

func setupAPITestEnv(t *testing.T) apiTestEnv {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	tagRepo := repository.NewTagRepository(db)
	authService := services.NewAuthService(userRepo)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	RegisterRoutes(r, Services{
		Auth:    authService,
		Answers: services.NewAnswerService(answerRepo, tagRepo, userRepo),
		Tags:    services.NewTagService(tagRepo),
	})

	return apiTestEnv{
		db:          db,
		router:      r,
		authService: authService,
	}
}

func (env apiTestEnv) do(t *testing.T, method, path string, payload interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// signup creates a user directly through the service and logs in over HTTP.
func (env apiTestEnv) signup(t *testing.T, email string) (*models.User, []*http.Cookie) {
	t.Helper()

	user, err := env.authService.CreateUser(context.Background(), services.CreateUserInput{
		Email:    email,
		Username: email,
		Password: "supersecret",
	})
	require.NoError(t, err)

	return user, env.login(t, email, "supersecret")
}

func (env apiTestEnv) login(t *testing.T, email, password string) []*http.Cookie {
	t.Helper()

	w := env.do(t, http.MethodPost, "/api/usuarios/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

type errorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
