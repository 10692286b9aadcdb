package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pf-responses/respuestas-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToAnswerDTO(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	answer := models.Answer{
		ID:        5,
		Content:   "hola",
		CreatedAt: created,
		UserID:    1,
		User:      models.User{ID: 1, Email: "a@x.com"},
		AnswerTags: []models.AnswerTag{
			{AnswerID: 5, TagID: 2, Tag: models.Tag{ID: 2, Name: "x"}},
			{AnswerID: 5, TagID: 3, Tag: models.Tag{ID: 3, Name: "y"}},
		},
	}

	got := ToAnswerDTO(answer, map[uint64]int64{2: 4, 3: 1})

	assert.Equal(t, "a@x.com", got.Owner)
	assert.Equal(t, []TagDTO{
		{ID: 2, Name: "x", AnswerCount: 4},
		{ID: 3, Name: "y", AnswerCount: 1},
	}, got.Tags)

	body, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": 5,
		"contenido": "hola",
		"fecha_creacion": "2024-03-01T12:00:00Z",
		"usuario": "a@x.com",
		"tags": [
			{"id": 2, "nombre": "x", "respuestas_count": 4},
			{"id": 3, "nombre": "y", "respuestas_count": 1}
		]
	}`, string(body))
}

func TestToAnswerDTO_NoTagsRendersEmptyArray(t *testing.T) {
	body, err := json.Marshal(ToAnswerDTO(models.Answer{ID: 1}, nil))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"tags":[]`)
}

func TestToUserDTO(t *testing.T) {
	user := models.User{
		ID:           1,
		Username:     "ana",
		Email:        "ana@x.com",
		Role:         models.RoleRegular,
		PasswordHash: "secret-hash",
		IsActive:     true,
		Profile:      &models.Profile{FirstName: "Ana", LastName: "Pérez"},
	}

	body, err := json.Marshal(ToUserDTO(user))
	require.NoError(t, err)
	assert.NotContains(t, string(body), "secret-hash")
	assert.JSONEq(t, `{
		"id": 1,
		"nombre_usuario": "ana",
		"email": "ana@x.com",
		"tipo_usuario": "usuario",
		"is_active": true,
		"is_staff": false,
		"persona": {"nombre": "Ana", "apellido": "Pérez"}
	}`, string(body))
}

func TestToTagDTOs(t *testing.T) {
	tags := []models.TagWithCount{
		{Tag: models.Tag{ID: 1, Name: "go"}, AnswerCount: 3},
		{Tag: models.Tag{ID: 2, Name: "sql"}},
	}

	got := ToTagDTOs(tags)

	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].AnswerCount)
	assert.Equal(t, int64(0), got[1].AnswerCount)
}

func TestToAnswerDTOs_EmptyRendersArray(t *testing.T) {
	body, err := json.Marshal(ToAnswerDTOs(nil, nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}
