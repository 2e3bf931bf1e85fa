package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"beachtrack/internal/domain"
	"beachtrack/internal/export"
	"beachtrack/internal/service"
	"beachtrack/mocks"
)

func TestActivityService_Create(t *testing.T) {
	repo := new(mocks.MockActivityRepo)
	svc := service.NewActivityService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Activity) bool {
		return a.UserID == "user-1" && a.Category == "learning" && a.Date == "2024-03-04"
	})).Return(nil)

	before := time.Now().UTC()
	got, err := svc.Create(context.Background(), service.CreateActivityInput{
		UserID:      "user-1",
		Description: "Finished CKAD module",
		Date:        "2024-03-04",
		Category:    "learning",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.False(t, got.Timestamp.Before(before.Add(-time.Second)))
	assert.Equal(t, "Finished CKAD module", got.Description)
	repo.AssertExpectations(t)
}

func TestActivityService_Create_RepoError(t *testing.T) {
	repo := new(mocks.MockActivityRepo)
	svc := service.NewActivityService(repo)
	dbErr := errors.New("insert failed")

	repo.On("Create", mock.Anything, mock.Anything).Return(dbErr)

	got, err := svc.Create(context.Background(), service.CreateActivityInput{UserID: "user-1"})

	assert.Nil(t, got)
	assert.ErrorIs(t, err, dbErr)
}

func TestActivityService_List(t *testing.T) {
	repo := new(mocks.MockActivityRepo)
	svc := service.NewActivityService(repo)
	activities := []domain.Activity{{Description: "b"}, {Description: "a"}}

	repo.On("ListByUser", mock.Anything, "user-1").Return(activities, nil)

	got, err := svc.List(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, activities, got)
}

func TestActivityService_Export_CSV(t *testing.T) {
	repo := new(mocks.MockActivityRepo)
	svc := service.NewActivityService(repo)

	repo.On("ListByUser", mock.Anything, "user-1").Return([]domain.Activity{
		{Description: "Paired on a kata", Date: "2024-03-04", Category: "practice"},
	}, nil)

	file, err := svc.Export(context.Background(), "user-1", domain.ExportFormatCSV)

	require.NoError(t, err)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)
	assert.Regexp(t, `^activities-\d{8}\.csv$`, file.FileName)
	assert.True(t, bytes.HasPrefix(file.Data, export.BOM))
	assert.Contains(t, string(file.Data), "Paired on a kata")
}

func TestActivityService_Export_XLSX(t *testing.T) {
	repo := new(mocks.MockActivityRepo)
	svc := service.NewActivityService(repo)

	repo.On("ListByUser", mock.Anything, "user-1").Return([]domain.Activity{}, nil)

	file, err := svc.Export(context.Background(), "user-1", domain.ExportFormatXLSX)

	require.NoError(t, err)
	assert.Regexp(t, `\.xlsx$`, file.FileName)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("PK")))
}

func TestActivityService_Export_ListError(t *testing.T) {
	repo := new(mocks.MockActivityRepo)
	svc := service.NewActivityService(repo)

	repo.On("ListByUser", mock.Anything, "user-1").Return(nil, errors.New("timeout"))

	_, err := svc.Export(context.Background(), "user-1", domain.ExportFormatCSV)

	assert.Error(t, err)
}
