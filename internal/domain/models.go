package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ParsedDocument is the categorised content of one imported PDF.
// Buckets keep document order.
type ParsedDocument struct {
	Skills         []string `json:"skills"`
	Experience     []string `json:"experience"`
	Aspirations    []string `json:"aspirations"`
	Strengths      []string `json:"strengths"`
	AreasForGrowth []string `json:"areasForGrowth"`
	RawText        string   `json:"rawText"`
}

// NewParsedDocument returns a document with all buckets initialised to empty slices.
func NewParsedDocument(rawText string) ParsedDocument {
	return ParsedDocument{
		Skills:         []string{},
		Experience:     []string{},
		Aspirations:    []string{},
		Strengths:      []string{},
		AreasForGrowth: []string{},
		RawText:        rawText,
	}
}

// Add appends line to bucket b. BucketNone is ignored.
func (d *ParsedDocument) Add(b Bucket, line string) {
	switch b {
	case BucketSkills:
		d.Skills = append(d.Skills, line)
	case BucketExperience:
		d.Experience = append(d.Experience, line)
	case BucketAspirations:
		d.Aspirations = append(d.Aspirations, line)
	case BucketStrengths:
		d.Strengths = append(d.Strengths, line)
	case BucketGrowth:
		d.AreasForGrowth = append(d.AreasForGrowth, line)
	}
}

// IsEmpty reports whether no line was classified into any bucket.
func (d ParsedDocument) IsEmpty() bool {
	return len(d.Skills) == 0 && len(d.Experience) == 0 && len(d.Aspirations) == 0 &&
		len(d.Strengths) == 0 && len(d.AreasForGrowth) == 0
}

// Summary is a pair of narrative strings derived from profile data.
type Summary struct {
	MeNow  string `json:"meNow"`
	MeNext string `json:"meNext"`
}

// SourceProfile is the derived artifact of importing one ProfileType's PDF for a user.
type SourceProfile struct {
	UserID       string         `db:"user_id" json:"-"`
	ProfileType  ProfileType    `db:"profile_type" json:"profileType"`
	MeNow        string         `db:"me_now" json:"meNow"`
	MeNext       string         `db:"me_next" json:"meNext"`
	ImportedData ParsedDocument `db:"-" json:"importedData"`
	LastImported time.Time      `db:"last_imported" json:"lastImported"`
	ImportSource string         `db:"import_source" json:"importSource"`
	ArchiveKey   string         `db:"archive_key" json:"archiveKey,omitempty"`
}

// ImportHistoryEntry describes the latest import for one ProfileType.
type ImportHistoryEntry struct {
	LastImported    time.Time `json:"lastImported"`
	ImportSource    string    `json:"importSource"`
	HasImportedData bool      `json:"hasImportedData"`
}

// ImportHistory maps each ProfileType to its latest import, nil when never imported.
type ImportHistory map[ProfileType]*ImportHistoryEntry

// UserProfile is the consolidated, user-facing profile.
type UserProfile struct {
	UserID    string    `db:"user_id" json:"userId"`
	MeNow     string    `db:"me_now" json:"meNow"`
	MeNext    string    `db:"me_next" json:"meNext"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Activity is one logged user activity.
type Activity struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"-"`
	Description string    `db:"description" json:"description"`
	Date        string    `db:"activity_date" json:"date"`
	Category    string    `db:"category" json:"category"`
	Timestamp   time.Time `db:"created_at" json:"timestamp"`
}

// LearningResource is a titled link suggested alongside a goal.
type LearningResource struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// LearningResources groups suggested resources by kind.
type LearningResources struct {
	UdemyCourses  []LearningResource `json:"udemyCourses,omitempty"`
	YoutubeVideos []LearningResource `json:"youtubeVideos,omitempty"`
	Books         []LearningResource `json:"books,omitempty"`
	Papers        []LearningResource `json:"papers,omitempty"`
}

// Recommendation is a single development goal with suggested activities.
type Recommendation struct {
	Goal              string             `json:"goal"`
	Activities        []string           `json:"activities"`
	LearningResources *LearningResources `json:"learningResources,omitempty"`
}

// RecommendationSet is a stored batch of recommendations with the profile it was based on.
type RecommendationSet struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	UserID          string          `db:"user_id" json:"-"`
	ProfileSnapshot json.RawMessage `db:"-" json:"profileSnapshot"`
	Recommendations json.RawMessage `db:"-" json:"recommendations"`
	Fallback        bool            `db:"is_fallback" json:"fallback"`
	Timestamp       time.Time       `db:"created_at" json:"timestamp"`
}
