package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"beachtrack/internal/config"
	"beachtrack/internal/domain"
	"beachtrack/internal/port"
	"beachtrack/internal/service"
	"beachtrack/mocks"
)

const jigsawText = "Skills\nJava, Python\nAspirations\nBecome a lead"

type importDeps struct {
	repo      *mocks.MockProfileRepo
	extractor *mocks.MockTextExtractor
	storage   *mocks.MockObjectStorage
	svc       service.ImportService
}

func newImportService(t *testing.T, archive bool) importDeps {
	t.Helper()
	d := importDeps{
		repo:      new(mocks.MockProfileRepo),
		extractor: new(mocks.MockTextExtractor),
		storage:   new(mocks.MockObjectStorage),
	}
	d.storage.On("Enabled").Return(archive).Maybe()
	cfg := config.S3Config{PresignExpiry: 900}
	d.svc = service.NewImportService(d.repo, d.extractor, d.storage, &cfg)
	return d
}

func TestImportService_Import_Jigsaw(t *testing.T) {
	d := newImportService(t, false)
	data := []byte("%PDF-1.4 jigsaw")

	d.extractor.On("Extract", mock.Anything, data).Return(jigsawText, nil)

	var consolidated domain.Summary
	d.repo.On("SaveImport", mock.Anything, mock.MatchedBy(func(sp *domain.SourceProfile) bool {
		return sp.UserID == "user-1" &&
			sp.ProfileType == domain.ProfileTypeJigsaw &&
			sp.ImportSource == "jigsaw.pdf" &&
			sp.ArchiveKey == "" &&
			!sp.LastImported.IsZero()
	}), mock.AnythingOfType("port.ConsolidateFunc")).
		Run(func(args mock.Arguments) {
			sp := args.Get(1).(*domain.SourceProfile)
			consolidated = args.Get(2).(port.ConsolidateFunc)([]domain.SourceProfile{*sp})
		}).
		Return(&domain.UserProfile{UserID: "user-1", MeNow: "Skills: Java, Python.", MeNext: "Career Goals: Become a lead"}, nil)

	result, err := d.svc.Import(context.Background(), service.ImportInput{
		UserID:      "user-1",
		ProfileType: "jigsaw",
		FileName:    "jigsaw.pdf",
		Data:        data,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ProfileTypeJigsaw, result.ProfileType)
	assert.Equal(t, []string{"Java, Python"}, result.ParsedData.Skills)
	assert.Equal(t, []string{"Become a lead"}, result.ParsedData.Aspirations)
	assert.Equal(t, "Skills: Java, Python", result.GeneratedProfile.MeNow)
	assert.Equal(t, "Aspirations: Become a lead", result.GeneratedProfile.MeNext)
	require.NotNil(t, result.Consolidated)
	assert.Equal(t, "Skills: Java, Python.", result.Consolidated.MeNow)
	assert.Equal(t, "Career Goals: Become a lead", result.Consolidated.MeNext)

	assert.Equal(t, "Skills: Java, Python.", consolidated.MeNow)
	assert.Equal(t, "Career Goals: Become a lead", consolidated.MeNext)

	d.extractor.AssertExpectations(t)
	d.repo.AssertExpectations(t)
	d.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestImportService_Import_InvalidTypeSkipsExtraction(t *testing.T) {
	d := newImportService(t, false)

	result, err := d.svc.Import(context.Background(), service.ImportInput{
		UserID:      "user-1",
		ProfileType: "linkedin",
		Data:        []byte("%PDF"),
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidProfileType)
	d.extractor.AssertNumberOfCalls(t, "Extract", 0)
	d.repo.AssertNumberOfCalls(t, "SaveImport", 0)
}

func TestImportService_Import_ExtractionFailure(t *testing.T) {
	d := newImportService(t, true)
	extErr := fmt.Errorf("%w: bad xref", domain.ErrExtractionFailed)

	d.extractor.On("Extract", mock.Anything, mock.Anything).Return("", extErr)

	_, err := d.svc.Import(context.Background(), service.ImportInput{
		UserID:      "user-1",
		ProfileType: "pathways",
		Data:        []byte("junk"),
	})

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	d.repo.AssertNumberOfCalls(t, "SaveImport", 0)
	d.storage.AssertNumberOfCalls(t, "Upload", 0)
}

func TestImportService_Import_EmptyDocumentIsSuccess(t *testing.T) {
	d := newImportService(t, false)

	d.extractor.On("Extract", mock.Anything, mock.Anything).Return("", nil)
	d.repo.On("SaveImport", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.UserProfile{UserID: "user-1"}, nil)

	result, err := d.svc.Import(context.Background(), service.ImportInput{
		UserID:      "user-1",
		ProfileType: "workday",
		Data:        []byte("%PDF"),
	})

	require.NoError(t, err)
	assert.True(t, result.ParsedData.IsEmpty())
	assert.Equal(t, domain.Summary{}, result.GeneratedProfile)
}

func TestImportService_Import_ArchivesPDF(t *testing.T) {
	d := newImportService(t, true)
	data := []byte("%PDF-1.4 pathways")

	d.extractor.On("Extract", mock.Anything, data).Return("", nil)
	d.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return strings.HasPrefix(in.Key, "users/user-1/imports/pathways/") &&
			strings.HasSuffix(in.Key, ".pdf") &&
			in.ContentType == "application/pdf" &&
			in.Size == int64(len(data))
	})).Return(&port.UploadOutput{}, nil)
	d.repo.On("SaveImport", mock.Anything, mock.MatchedBy(func(sp *domain.SourceProfile) bool {
		return strings.HasPrefix(sp.ArchiveKey, "users/user-1/imports/pathways/")
	}), mock.Anything).Return(&domain.UserProfile{UserID: "user-1"}, nil)

	_, err := d.svc.Import(context.Background(), service.ImportInput{
		UserID:      "user-1",
		ProfileType: "pathways",
		Data:        data,
	})

	require.NoError(t, err)
	d.storage.AssertExpectations(t)
	d.repo.AssertExpectations(t)
}

func TestImportService_Import_ArchiveFailureAborts(t *testing.T) {
	d := newImportService(t, true)

	d.extractor.On("Extract", mock.Anything, mock.Anything).Return("", nil)
	d.storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("s3 down"))

	_, err := d.svc.Import(context.Background(), service.ImportInput{
		UserID:      "user-1",
		ProfileType: "jigsaw",
		Data:        []byte("%PDF"),
	})

	assert.ErrorIs(t, err, domain.ErrArchiveFailed)
	d.repo.AssertNumberOfCalls(t, "SaveImport", 0)
}

func TestImportService_Import_SaveFailureDeletesArchive(t *testing.T) {
	d := newImportService(t, true)
	dbErr := errors.New("tx aborted")

	var key string
	d.extractor.On("Extract", mock.Anything, mock.Anything).Return("", nil)
	d.storage.On("Upload", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { key = args.Get(1).(port.UploadInput).Key }).
		Return(&port.UploadOutput{}, nil)
	d.repo.On("SaveImport", mock.Anything, mock.Anything, mock.Anything).Return(nil, dbErr)
	d.storage.On("Delete", mock.Anything, mock.MatchedBy(func(k string) bool { return k == key })).Return(nil)

	_, err := d.svc.Import(context.Background(), service.ImportInput{
		UserID:      "user-1",
		ProfileType: "jigsaw",
		Data:        []byte("%PDF"),
	})

	assert.ErrorIs(t, err, dbErr)
	d.storage.AssertExpectations(t)
}

func TestImportService_Detect_NamedSourcePersists(t *testing.T) {
	d := newImportService(t, false)

	d.extractor.On("Extract", mock.Anything, mock.Anything).Return("Jigsaw profile\n"+jigsawText, nil)
	d.repo.On("SaveImport", mock.Anything, mock.MatchedBy(func(sp *domain.SourceProfile) bool {
		return sp.ProfileType == domain.ProfileTypeJigsaw
	}), mock.Anything).Return(&domain.UserProfile{UserID: "user-1"}, nil)

	result, err := d.svc.Detect(context.Background(), service.ImportInput{UserID: "user-1", Data: []byte("%PDF")})

	require.NoError(t, err)
	assert.Equal(t, domain.ProfileTypeJigsaw, result.ProfileType)
	assert.Equal(t, []string{"Java, Python"}, result.ParsedData.Skills)
	assert.NotNil(t, result.Consolidated)
	d.repo.AssertExpectations(t)
}

func TestImportService_Detect_GenericDoesNotPersist(t *testing.T) {
	d := newImportService(t, true)

	d.extractor.On("Extract", mock.Anything, mock.Anything).Return("Curriculum vitae\nSkills\nRust and Go", nil)

	result, err := d.svc.Detect(context.Background(), service.ImportInput{UserID: "user-1", Data: []byte("%PDF")})

	require.NoError(t, err)
	assert.Equal(t, domain.ProfileTypeGeneric, result.ProfileType)
	assert.Nil(t, result.Consolidated)
	d.repo.AssertNumberOfCalls(t, "SaveImport", 0)
	d.storage.AssertNumberOfCalls(t, "Upload", 0)
}

func TestImportService_History(t *testing.T) {
	d := newImportService(t, false)
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	parsed := domain.NewParsedDocument("Skills\nGo")
	parsed.Add(domain.BucketSkills, "Go")
	d.repo.On("ListSourceProfiles", mock.Anything, "user-1").Return([]domain.SourceProfile{
		{ProfileType: domain.ProfileTypePathways, LastImported: ts, ImportSource: "pathways.pdf", ImportedData: parsed},
	}, nil)

	history, err := d.svc.History(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Nil(t, history[domain.ProfileTypeJigsaw])
	assert.Nil(t, history[domain.ProfileTypeWorkday])
	require.NotNil(t, history[domain.ProfileTypePathways])
	assert.Equal(t, ts, history[domain.ProfileTypePathways].LastImported)
	assert.Equal(t, "pathways.pdf", history[domain.ProfileTypePathways].ImportSource)
	assert.True(t, history[domain.ProfileTypePathways].HasImportedData)
}

func TestImportService_History_EmptyParse(t *testing.T) {
	d := newImportService(t, false)
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	d.repo.On("ListSourceProfiles", mock.Anything, "user-1").Return([]domain.SourceProfile{
		{ProfileType: domain.ProfileTypeWorkday, LastImported: ts, ImportSource: "blank.pdf", ImportedData: domain.NewParsedDocument("")},
	}, nil)

	history, err := d.svc.History(context.Background(), "user-1")

	require.NoError(t, err)
	require.NotNil(t, history[domain.ProfileTypeWorkday])
	assert.Equal(t, "blank.pdf", history[domain.ProfileTypeWorkday].ImportSource)
	assert.False(t, history[domain.ProfileTypeWorkday].HasImportedData)
}

func TestImportService_GetSourceProfile(t *testing.T) {
	d := newImportService(t, false)
	sp := &domain.SourceProfile{ProfileType: domain.ProfileTypeWorkday}

	d.repo.On("GetSourceProfile", mock.Anything, "user-1", domain.ProfileTypeWorkday).Return(sp, nil)
	d.repo.On("GetSourceProfile", mock.Anything, "user-1", domain.ProfileTypeJigsaw).Return(nil, domain.ErrSourceProfileNotFound)

	got, err := d.svc.GetSourceProfile(context.Background(), "user-1", "workday")
	require.NoError(t, err)
	assert.Same(t, sp, got)

	_, err = d.svc.GetSourceProfile(context.Background(), "user-1", "jigsaw")
	assert.ErrorIs(t, err, domain.ErrSourceProfileNotFound)

	_, err = d.svc.GetSourceProfile(context.Background(), "user-1", "generic")
	assert.ErrorIs(t, err, domain.ErrInvalidProfileType)
}

func storedSources() []domain.SourceProfile {
	pathways := domain.NewParsedDocument("")
	pathways.Aspirations = []string{"Become a principal", "Lead a guild"}
	jigsaw := domain.NewParsedDocument("")
	jigsaw.Aspirations = []string{"Move to data engineering"}
	return []domain.SourceProfile{
		{ProfileType: domain.ProfileTypeJigsaw, ImportedData: jigsaw},
		{ProfileType: domain.ProfileTypePathways, ImportedData: pathways},
	}
}

func TestImportService_GenerateMeNext_DoesNotPersist(t *testing.T) {
	d := newImportService(t, false)
	d.repo.On("ListSourceProfiles", mock.Anything, "user-1").Return(storedSources(), nil)

	result, err := d.svc.GenerateMeNext(context.Background(), "user-1", false)

	require.NoError(t, err)
	assert.Equal(t, "Career Aspirations: Become a principal; Lead a guild", result.MeNext)
	assert.False(t, result.Saved)
	d.repo.AssertNumberOfCalls(t, "UpdateMeNext", 0)
}

func TestImportService_GenerateMeNext_Persist(t *testing.T) {
	d := newImportService(t, false)
	want := "Career Aspirations: Become a principal; Lead a guild"
	d.repo.On("ListSourceProfiles", mock.Anything, "user-1").Return(storedSources(), nil)
	d.repo.On("UpdateMeNext", mock.Anything, "user-1", want).Return(&domain.UserProfile{MeNext: want}, nil)

	result, err := d.svc.GenerateMeNext(context.Background(), "user-1", true)

	require.NoError(t, err)
	assert.True(t, result.Saved)
	d.repo.AssertExpectations(t)
}

func TestImportService_GenerateMeNext_NoImports(t *testing.T) {
	d := newImportService(t, false)
	d.repo.On("ListSourceProfiles", mock.Anything, "user-1").Return([]domain.SourceProfile{}, nil)

	_, err := d.svc.GenerateMeNext(context.Background(), "user-1", false)

	assert.ErrorIs(t, err, domain.ErrSourceProfileNotFound)
}

func TestImportService_ArchiveURL(t *testing.T) {
	d := newImportService(t, true)
	d.repo.On("GetSourceProfile", mock.Anything, "user-1", domain.ProfileTypeJigsaw).
		Return(&domain.SourceProfile{ArchiveKey: "users/user-1/imports/jigsaw/x.pdf"}, nil)
	d.storage.On("PresignedURL", mock.Anything, "users/user-1/imports/jigsaw/x.pdf", 900*time.Second).
		Return("https://bucket.example/x.pdf?sig", nil)

	url, err := d.svc.ArchiveURL(context.Background(), "user-1", "jigsaw")

	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/x.pdf?sig", url)
}

func TestImportService_ArchiveURL_NoArchive(t *testing.T) {
	d := newImportService(t, true)
	d.repo.On("GetSourceProfile", mock.Anything, "user-1", domain.ProfileTypeJigsaw).
		Return(&domain.SourceProfile{}, nil)

	_, err := d.svc.ArchiveURL(context.Background(), "user-1", "jigsaw")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	d.storage.AssertNumberOfCalls(t, "PresignedURL", 0)
}
