package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"beachtrack/internal/config"
	"beachtrack/internal/domain"
	"beachtrack/internal/parser"
	"beachtrack/internal/port"
	"beachtrack/internal/profile"
)

// ImportInput is the DTO for PDF import requests.
type ImportInput struct {
	UserID      string
	ProfileType string
	FileName    string
	Data        []byte
}

// ImportResult is returned by a successful import.
type ImportResult struct {
	ParsedData       domain.ParsedDocument `json:"parsedData"`
	GeneratedProfile domain.Summary        `json:"generatedProfile"`
	ProfileType      domain.ProfileType    `json:"profileType"`
	Consolidated     *domain.Summary       `json:"consolidatedProfile,omitempty"`
}

// MeNextResult is the outcome of regenerating meNext from stored imports.
type MeNextResult struct {
	MeNext string `json:"meNext"`
	Saved  bool   `json:"saved"`
}

// ImportService defines the PDF import contract.
type ImportService interface {
	Import(ctx context.Context, input ImportInput) (*ImportResult, error)
	Detect(ctx context.Context, input ImportInput) (*ImportResult, error)
	History(ctx context.Context, userID string) (domain.ImportHistory, error)
	GetSourceProfile(ctx context.Context, userID, profileType string) (*domain.SourceProfile, error)
	GenerateMeNext(ctx context.Context, userID string, persist bool) (*MeNextResult, error)
	ArchiveURL(ctx context.Context, userID, profileType string) (string, error)
}

type importService struct {
	profileRepo   port.ProfileRepository
	extractor     port.TextExtractor
	storage       port.ObjectStorage
	presignExpiry time.Duration
	now           func() time.Time
}

// NewImportService creates a new ImportService implementation.
func NewImportService(
	profileRepo port.ProfileRepository,
	extractor port.TextExtractor,
	storage port.ObjectStorage,
	cfg *config.S3Config,
) ImportService {
	return &importService{
		profileRepo:   profileRepo,
		extractor:     extractor,
		storage:       storage,
		presignExpiry: time.Duration(cfg.PresignExpiry) * time.Second,
		now:           time.Now,
	}
}

func (s *importService) Import(ctx context.Context, input ImportInput) (*ImportResult, error) {
	t, err := domain.ParseProfileType(input.ProfileType)
	if err != nil {
		return nil, fmt.Errorf("importService.Import: %w", err)
	}

	text, err := s.extractor.Extract(ctx, input.Data)
	if err != nil {
		log.Printf("importService.Import: extraction failed for user %s (%s): %v", input.UserID, t, err)
		return nil, fmt.Errorf("importService.Import: %w", err)
	}

	classifier, err := parser.ForProfileType(t)
	if err != nil {
		return nil, fmt.Errorf("importService.Import: %w", err)
	}

	return s.save(ctx, input, t, classifier.Classify(text))
}

func (s *importService) Detect(ctx context.Context, input ImportInput) (*ImportResult, error) {
	text, err := s.extractor.Extract(ctx, input.Data)
	if err != nil {
		log.Printf("importService.Detect: extraction failed for user %s: %v", input.UserID, err)
		return nil, fmt.Errorf("importService.Detect: %w", err)
	}

	doc, t := parser.AutoClassify(text)
	log.Printf("importService.Detect: user %s file %q detected as %s", input.UserID, input.FileName, t)

	if t == domain.ProfileTypeGeneric {
		return &ImportResult{
			ParsedData:       doc,
			GeneratedProfile: profile.Summarize(doc),
			ProfileType:      t,
		}, nil
	}
	return s.save(ctx, input, t, doc)
}

// save archives the uploaded PDF when storage is enabled, then writes the
// source profile and the recomputed user profile in one repository
// transaction. The archive object is removed if the write fails.
func (s *importService) save(ctx context.Context, input ImportInput, t domain.ProfileType, doc domain.ParsedDocument) (*ImportResult, error) {
	summary := profile.Summarize(doc)
	if doc.IsEmpty() {
		log.Printf("importService.save: no section content recognised in %q for user %s (%s)", input.FileName, input.UserID, t)
	}

	sp := &domain.SourceProfile{
		UserID:       input.UserID,
		ProfileType:  t,
		MeNow:        summary.MeNow,
		MeNext:       summary.MeNext,
		ImportedData: doc,
		LastImported: s.now().UTC(),
		ImportSource: input.FileName,
	}

	if s.storage.Enabled() {
		key := t.ArchiveKey(input.UserID, uuid.New())
		if _, err := s.storage.Upload(ctx, port.UploadInput{
			Key:         key,
			Body:        bytes.NewReader(input.Data),
			ContentType: "application/pdf",
			Size:        int64(len(input.Data)),
		}); err != nil {
			log.Printf("importService.save: archive upload failed for user %s (%s): %v", input.UserID, t, err)
			return nil, fmt.Errorf("importService.save: %w: %v", domain.ErrArchiveFailed, err)
		}
		sp.ArchiveKey = key
	}

	up, err := s.profileRepo.SaveImport(ctx, sp, consolidateSources)
	if err != nil {
		log.Printf("importService.save: saving %s import for user %s failed: %v", t, input.UserID, err)
		if sp.ArchiveKey != "" {
			if delErr := s.storage.Delete(context.WithoutCancel(ctx), sp.ArchiveKey); delErr != nil {
				log.Printf("importService.save: failed to delete orphaned archive %s: %v", sp.ArchiveKey, delErr)
			}
		}
		return nil, fmt.Errorf("importService.save: %w", err)
	}

	log.Printf("importService.save: imported %s profile for user %s from %q", t, input.UserID, input.FileName)

	return &ImportResult{
		ParsedData:       doc,
		GeneratedProfile: summary,
		ProfileType:      t,
		Consolidated:     &domain.Summary{MeNow: up.MeNow, MeNext: up.MeNext},
	}, nil
}

func consolidateSources(sources []domain.SourceProfile) domain.Summary {
	return profile.Consolidate(profile.NewSourceSet(sources))
}

func (s *importService) History(ctx context.Context, userID string) (domain.ImportHistory, error) {
	sources, err := s.profileRepo.ListSourceProfiles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("importService.History: %w", err)
	}

	history := make(domain.ImportHistory, len(domain.ProfileTypes))
	for _, t := range domain.ProfileTypes {
		history[t] = nil
	}
	for i := range sources {
		sp := &sources[i]
		if !sp.ProfileType.Valid() {
			continue
		}
		history[sp.ProfileType] = &domain.ImportHistoryEntry{
			LastImported:    sp.LastImported,
			ImportSource:    sp.ImportSource,
			HasImportedData: !sp.ImportedData.IsEmpty(),
		}
	}
	return history, nil
}

func (s *importService) GetSourceProfile(ctx context.Context, userID, profileType string) (*domain.SourceProfile, error) {
	t, err := domain.ParseProfileType(profileType)
	if err != nil {
		return nil, err
	}
	return s.profileRepo.GetSourceProfile(ctx, userID, t)
}

// GenerateMeNext recomputes meNext from stored imports. The profile is only
// updated when persist is set.
func (s *importService) GenerateMeNext(ctx context.Context, userID string, persist bool) (*MeNextResult, error) {
	sources, err := s.profileRepo.ListSourceProfiles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("importService.GenerateMeNext: %w", err)
	}
	if len(sources) == 0 {
		return nil, domain.ErrSourceProfileNotFound
	}

	meNext := profile.ConsolidateMeNext(profile.NewSourceSet(sources))
	if !persist {
		return &MeNextResult{MeNext: meNext}, nil
	}

	if _, err := s.profileRepo.UpdateMeNext(ctx, userID, meNext); err != nil {
		return nil, fmt.Errorf("importService.GenerateMeNext: %w", err)
	}
	return &MeNextResult{MeNext: meNext, Saved: true}, nil
}

// ArchiveURL returns a time-limited download link for the archived PDF of
// the latest import of profileType.
func (s *importService) ArchiveURL(ctx context.Context, userID, profileType string) (string, error) {
	sp, err := s.GetSourceProfile(ctx, userID, profileType)
	if err != nil {
		return "", err
	}
	if sp.ArchiveKey == "" || !s.storage.Enabled() {
		return "", domain.ErrNotFound
	}

	url, err := s.storage.PresignedURL(ctx, sp.ArchiveKey, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("importService.ArchiveURL: %w", err)
	}
	return url, nil
}
