package models

import (
	"strconv"
	"time"
)

// StorageRecord is the persisted form of an accepted submission. Email
// and age are stored as digests only; the plaintext values never reach
// the store. Records are immutable once appended.
type StorageRecord struct {
	SubmissionID string    `json:"submission_id" bson:"submission_id"`
	Name         string    `json:"name" bson:"name"`
	Consent      bool      `json:"consent" bson:"consent"`
	Rating       int       `json:"rating" bson:"rating"`
	Comments     string    `json:"comments" bson:"comments"`
	Source       string    `json:"source" bson:"source"`
	Email        string    `json:"email" bson:"email"`
	Age          string    `json:"age" bson:"age"`
	ReceivedAt   time.Time `json:"received_at" bson:"received_at"`
	UserAgent    string    `json:"user_agent,omitempty" bson:"user_agent,omitempty"`
	IP           string    `json:"ip,omitempty" bson:"ip,omitempty"`
}

// ToStorageRecord converts a validated submission into its storage
// record. receivedAt is the server-assigned receipt time; ip may be
// empty when no client address was resolvable. The transformation is
// pure: it derives the submission id when the caller supplied none and
// redacts email and age through HashText.
func (s *SurveySubmission) ToStorageRecord(receivedAt time.Time, ip string) *StorageRecord {
	receivedAt = receivedAt.UTC()

	submissionID := s.SubmissionID
	if submissionID == "" {
		submissionID = DeriveSubmissionID(s.Email, receivedAt)
	}

	source := s.Source
	if source == "" {
		source = SourceOther
	}

	rec := &StorageRecord{
		SubmissionID: submissionID,
		Name:         s.Name,
		Consent:      *s.Consent,
		Rating:       *s.Rating,
		Comments:     s.Comments,
		Source:       source,
		Email:        HashText(s.Email),
		Age:          HashText(strconv.Itoa(*s.Age)),
		ReceivedAt:   receivedAt,
	}

	if s.UserAgent != "" {
		rec.UserAgent = s.UserAgent
	}
	if ip != "" {
		rec.IP = ip
	}

	return rec
}

// DuplicateOf reports whether two records match on the dedupe key: the
// tuple (submission_id, email digest, age digest, name, consent,
// rating, comments, source). Receipt time, user agent and IP are not
// part of the key.
func (r *StorageRecord) DuplicateOf(other *StorageRecord) bool {
	return r.SubmissionID == other.SubmissionID &&
		r.Email == other.Email &&
		r.Age == other.Age &&
		r.Name == other.Name &&
		r.Consent == other.Consent &&
		r.Rating == other.Rating &&
		r.Comments == other.Comments &&
		r.Source == other.Source
}
