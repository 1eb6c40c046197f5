package models

import (
	"strings"
	"testing"

	"github.com/formpulse/survey-intake-backend/utils"
)

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func validSubmission() *SurveySubmission {
	return &SurveySubmission{
		Name:    "Ava",
		Email:   "ava@example.com",
		Age:     intPtr(22),
		Consent: boolPtr(true),
		Rating:  intPtr(4),
		Source:  "web",
	}
}

// fieldLocs collapses validation details to the set of offending field names.
func fieldLocs(err error) map[string]bool {
	locs := map[string]bool{}
	for _, d := range utils.ValidationDetails(err) {
		locs[d.Loc[len(d.Loc)-1]] = true
	}
	return locs
}

func TestNormalize(t *testing.T) {
	s := &SurveySubmission{
		Name:         "  Ava  ",
		Email:        "  Ava@Example.COM ",
		Age:          intPtr(22),
		Consent:      boolPtr(true),
		Rating:       intPtr(4),
		Comments:     "  looks good  ",
		Source:       " WEB ",
		UserAgent:    " curl/8.0 ",
		SubmissionID: " custom-id ",
	}
	s.Normalize()

	if s.Name != "Ava" {
		t.Fatalf("name = %q, want trimmed", s.Name)
	}
	if s.Email != "ava@example.com" {
		t.Fatalf("email = %q, want trimmed and lowercased", s.Email)
	}
	if s.Comments != "looks good" {
		t.Fatalf("comments = %q, want trimmed", s.Comments)
	}
	if s.Source != "web" {
		t.Fatalf("source = %q, want %q", s.Source, "web")
	}
	if s.UserAgent != "curl/8.0" {
		t.Fatalf("user agent = %q, want trimmed", s.UserAgent)
	}
	if s.SubmissionID != "custom-id" {
		t.Fatalf("submission id = %q, want trimmed", s.SubmissionID)
	}
}

func TestNormalizeSource(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"web", "web"},
		{"WEB", "web"},
		{" Mobile ", "mobile"},
		{"other", "other"},
		{"carrier-pigeon", "other"},
		{"", "other"},
	}
	for _, c := range cases {
		if got := normalizeSource(c.in); got != c.want {
			t.Fatalf("normalizeSource(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestValidateAcceptsValidSubmission(t *testing.T) {
	s := validSubmission()
	s.Normalize()
	if err := utils.Validate.Struct(s); err != nil {
		t.Fatalf("expected valid submission, got %v", err)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	s := &SurveySubmission{
		Name:    "",
		Email:   "not-an-email",
		Age:     intPtr(9),
		Consent: boolPtr(false),
		Rating:  intPtr(9),
	}
	s.Normalize()

	err := utils.Validate.Struct(s)
	if err == nil {
		t.Fatal("expected validation error")
	}
	locs := fieldLocs(err)
	for _, field := range []string{"name", "email", "age", "consent", "rating"} {
		if !locs[field] {
			t.Fatalf("expected a violation for %q, got %v", field, locs)
		}
	}
}

func TestValidateRejectsBadFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SurveySubmission)
		field  string
	}{
		{"missing name", func(s *SurveySubmission) { s.Name = "" }, "name"},
		{"whitespace name", func(s *SurveySubmission) { s.Name = "   " }, "name"},
		{"name too long", func(s *SurveySubmission) { s.Name = strings.Repeat("a", 101) }, "name"},
		{"missing email", func(s *SurveySubmission) { s.Email = "" }, "email"},
		{"malformed email", func(s *SurveySubmission) { s.Email = "ava@@example" }, "email"},
		{"missing age", func(s *SurveySubmission) { s.Age = nil }, "age"},
		{"age below range", func(s *SurveySubmission) { s.Age = intPtr(12) }, "age"},
		{"age above range", func(s *SurveySubmission) { s.Age = intPtr(121) }, "age"},
		{"missing consent", func(s *SurveySubmission) { s.Consent = nil }, "consent"},
		{"consent false", func(s *SurveySubmission) { s.Consent = boolPtr(false) }, "consent"},
		{"missing rating", func(s *SurveySubmission) { s.Rating = nil }, "rating"},
		{"rating below range", func(s *SurveySubmission) { s.Rating = intPtr(0) }, "rating"},
		{"rating above range", func(s *SurveySubmission) { s.Rating = intPtr(6) }, "rating"},
		{"comments too long", func(s *SurveySubmission) { s.Comments = strings.Repeat("c", 1001) }, "comments"},
	}
	for _, c := range cases {
		s := validSubmission()
		c.mutate(s)
		s.Normalize()

		err := utils.Validate.Struct(s)
		if err == nil {
			t.Fatalf("%s: expected validation error", c.name)
		}
		if !fieldLocs(err)[c.field] {
			t.Fatalf("%s: no violation scoped to %q in %v", c.name, c.field, fieldLocs(err))
		}
	}
}

func TestValidateAcceptsBoundaryValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*SurveySubmission)
	}{
		{"age lower bound", func(s *SurveySubmission) { s.Age = intPtr(13) }},
		{"age upper bound", func(s *SurveySubmission) { s.Age = intPtr(120) }},
		{"rating lower bound", func(s *SurveySubmission) { s.Rating = intPtr(1) }},
		{"rating upper bound", func(s *SurveySubmission) { s.Rating = intPtr(5) }},
		{"name at limit", func(s *SurveySubmission) { s.Name = strings.Repeat("a", 100) }},
		{"comments at limit", func(s *SurveySubmission) { s.Comments = strings.Repeat("c", 1000) }},
		{"comments absent", func(s *SurveySubmission) { s.Comments = "" }},
	}
	for _, c := range cases {
		s := validSubmission()
		c.mutate(s)
		s.Normalize()
		if err := utils.Validate.Struct(s); err != nil {
			t.Fatalf("%s: expected valid submission, got %v", c.name, err)
		}
	}
}
