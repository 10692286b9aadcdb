package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pf-responses/respuestas-api/internal/database"
	"github.com/pf-responses/respuestas-api/internal/models"
	"github.com/pf-responses/respuestas-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db            *gorm.DB
	authService   *AuthService
	answerService *AnswerService
	tagService    *TagService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()
	return newTestEnv(t, ":memory:")
}

// setupFileTestEnv uses a database file so several connections can work concurrently.
func setupFileTestEnv(t *testing.T) testEnv {
	t.Helper()
	return newTestEnv(t, filepath.Join(t.TempDir(), "respuestas.db"))
}

func newTestEnv(t *testing.T, path string) testEnv {
	db, err := database.OpenSQLite(path)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	tagRepo := repository.NewTagRepository(db)

	return testEnv{
		db:            db,
		authService:   NewAuthService(userRepo),
		answerService: NewAnswerService(answerRepo, tagRepo, userRepo),
		tagService:    NewTagService(tagRepo),
	}
}

func (env testEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := env.authService.CreateUser(context.Background(), CreateUserInput{
		Email:    email,
		Username: email,
		Password: "supersecret",
	})
	require.NoError(t, err)
	return user
}

func (env testEnv) countRows(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.db.Model(model).Count(&n).Error)
	return n
}

func tagNames(view *AnswerView) []string {
	names := []string{}
	for _, tag := range view.Answer.Tags() {
		names = append(names, tag.Name)
	}
	return names
}

func tagCount(view *AnswerView, name string) int64 {
	for _, tag := range view.Answer.Tags() {
		if tag.Name == name {
			return view.TagCounts[tag.ID]
		}
	}
	return -1
}

func strPtr(s string) *string {
	return &s
}

func namesPtr(names ...string) *[]string {
	if names == nil {
		names = []string{}
	}
	return &names
}
