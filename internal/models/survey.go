package models

import (
	"strings"
)

// Source values recognized on a submission. Anything else normalizes
// to SourceOther instead of failing validation.
const (
	SourceWeb    = "web"
	SourceMobile = "mobile"
	SourceOther  = "other"
)

// SurveySubmission is the request payload for POST /v1/survey.
// Age, Consent and Rating are pointers so a missing field and an
// out-of-range zero produce distinct field errors.
type SurveySubmission struct {
	Name         string `json:"name" validate:"required,max=100"`
	Email        string `json:"email" validate:"required,email"`
	Age          *int   `json:"age" validate:"required,gte=13,lte=120"`
	Consent      *bool  `json:"consent" validate:"required,eq=true"`
	Rating       *int   `json:"rating" validate:"required,gte=1,lte=5"`
	Comments     string `json:"comments" validate:"max=1000"`
	Source       string `json:"source" validate:"oneof=web mobile other"`
	UserAgent    string `json:"user_agent,omitempty"`
	SubmissionID string `json:"submission_id,omitempty"`
}

// Normalize applies the pre-validation transforms: trims every string
// field, lowercases the email, and canonicalizes the source. It must be
// called before the struct is validated.
func (s *SurveySubmission) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	s.Comments = strings.TrimSpace(s.Comments)
	s.Source = normalizeSource(s.Source)
	s.UserAgent = strings.TrimSpace(s.UserAgent)
	s.SubmissionID = strings.TrimSpace(s.SubmissionID)
}

func normalizeSource(src string) string {
	switch strings.ToLower(strings.TrimSpace(src)) {
	case SourceWeb:
		return SourceWeb
	case SourceMobile:
		return SourceMobile
	default:
		return SourceOther
	}
}

// SubmissionResponse is the 201 body for an accepted (or deduplicated)
// submission.
type SubmissionResponse struct {
	Status       string `json:"status"`
	SubmissionID string `json:"submission_id"`
}

// PingResponse is the liveness payload.
type PingResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	UTCTime string `json:"utc_time"`
}
