package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"beachtrack/internal/domain"
	"beachtrack/internal/handler"
	"beachtrack/internal/service"
	"beachtrack/mocks"
)

func TestActivityHandler_Create(t *testing.T) {
	svc := new(mocks.MockActivityService)
	h := handler.NewActivityHandler(svc)

	input := service.CreateActivityInput{
		UserID:      "user-1",
		Description: "Read Clean Code ch. 3",
		Date:        "2024-05-14",
		Category:    "Learning",
	}
	svc.On("Create", mock.Anything, input).
		Return(&domain.Activity{ID: uuid.New(), Description: input.Description, Date: input.Date, Category: input.Category}, nil)

	c, w := newJSONContext(http.MethodPost, "/api/v1/activities",
		`{"description":"Read Clean Code ch. 3","date":"2024-05-14","category":"Learning"}`)
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestActivityHandler_Create_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing category", `{"description":"x","date":"2024-05-14"}`},
		{"bad date", `{"description":"x","date":"14/05/2024","category":"Learning"}`},
		{"empty description", `{"description":"","date":"2024-05-14","category":"Learning"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockActivityService)
			h := handler.NewActivityHandler(svc)

			c, w := newJSONContext(http.MethodPost, "/api/v1/activities", tt.body)
			h.Create(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestActivityHandler_List(t *testing.T) {
	svc := new(mocks.MockActivityService)
	h := handler.NewActivityHandler(svc)

	svc.On("List", mock.Anything, "user-1").Return([]domain.Activity{
		{ID: uuid.New(), Description: "b"},
		{ID: uuid.New(), Description: "a"},
	}, nil)

	c, w := newJSONContext(http.MethodGet, "/api/v1/activities", "")
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w).Data.([]interface{}), 2)
}

func TestActivityHandler_Export(t *testing.T) {
	svc := new(mocks.MockActivityService)
	h := handler.NewActivityHandler(svc)

	svc.On("Export", mock.Anything, "user-1", domain.ExportFormatXLSX).Return(&service.ExportFile{
		FileName:    "activities-20240514.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        []byte("PK"),
	}, nil)

	c, w := newJSONContext(http.MethodGet, "/api/v1/activities/export?format=xlsx", "")
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="activities-20240514.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK", w.Body.String())
}

func TestActivityHandler_Export_UnsupportedFormat(t *testing.T) {
	svc := new(mocks.MockActivityService)
	h := handler.NewActivityHandler(svc)

	c, w := newJSONContext(http.MethodGet, "/api/v1/activities/export?format=pdf", "")
	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "UNSUPPORTED_EXPORT_FORMAT", decode(t, w).Error.Code)
}
