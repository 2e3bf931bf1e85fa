package domain

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// ProfileType identifies which external tool produced an imported PDF.
type ProfileType string

const (
	ProfileTypeJigsaw   ProfileType = "jigsaw"
	ProfileTypePathways ProfileType = "pathways"
	ProfileTypeWorkday  ProfileType = "workday"

	// ProfileTypeGeneric is reported by auto-detection when no known tool is recognised.
	// It is never a valid import target.
	ProfileTypeGeneric ProfileType = "generic"
)

// ProfileTypes lists the importable profile types in consolidation order.
var ProfileTypes = []ProfileType{
	ProfileTypeJigsaw,
	ProfileTypePathways,
	ProfileTypeWorkday,
}

// ParseProfileType validates s against the importable profile types.
func ParseProfileType(s string) (ProfileType, error) {
	t := ProfileType(s)
	if !t.Valid() {
		return "", ErrInvalidProfileType
	}
	return t, nil
}

// Valid reports whether t is one of the importable profile types.
func (t ProfileType) Valid() bool {
	for _, pt := range ProfileTypes {
		if t == pt {
			return true
		}
	}
	return false
}

// Bucket is a semantic category a line of extracted text can be filed under.
type Bucket int

const (
	BucketNone Bucket = iota
	BucketSkills
	BucketExperience
	BucketAspirations
	BucketStrengths
	BucketGrowth
)

// Buckets lists the content buckets in classification order.
var Buckets = []Bucket{
	BucketSkills,
	BucketExperience,
	BucketAspirations,
	BucketStrengths,
	BucketGrowth,
}

func (b Bucket) String() string {
	switch b {
	case BucketSkills:
		return "skills"
	case BucketExperience:
		return "experience"
	case BucketAspirations:
		return "aspirations"
	case BucketStrengths:
		return "strengths"
	case BucketGrowth:
		return "growth"
	default:
		return "none"
	}
}

// ExportFormat is the file format for activity exports.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ParseExportFormat maps a query value to an ExportFormat, defaulting to CSV.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return ExportFormatCSV, nil
	case "xlsx":
		return ExportFormatXLSX, nil
	default:
		return "", ErrUnsupportedExportFormat
	}
}

// ArchiveKey returns the object key under which an imported PDF of type t is
// archived for userID: users/<uid>/imports/<type>/<id>.pdf.
func (t ProfileType) ArchiveKey(userID string, id uuid.UUID) string {
	return path.Join("users", userID, "imports", string(t), id.String()+".pdf")
}
