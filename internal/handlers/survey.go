package handlers

import (
	"time"

	"github.com/formpulse/survey-intake-backend/internal/models"
	"github.com/formpulse/survey-intake-backend/internal/storage"
	"github.com/formpulse/survey-intake-backend/utils"
	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// submissionFields pairs every accepted field with the JSON shape it
// must decode into. Used to scope a failed typed decode to the fields
// that caused it.
var submissionFields = []struct {
	name string
	kind string
	dst  func() any
}{
	{"name", "string", func() any { return new(string) }},
	{"email", "string", func() any { return new(string) }},
	{"age", "integer", func() any { return new(int) }},
	{"consent", "boolean", func() any { return new(bool) }},
	{"rating", "integer", func() any { return new(int) }},
	{"comments", "string", func() any { return new(string) }},
	{"source", "string", func() any { return new(string) }},
	{"user_agent", "string", func() any { return new(string) }},
	{"submission_id", "string", func() any { return new(string) }},
}

// typeViolations reports every field whose value cannot decode into
// the expected type, in the same detail shape validation failures use.
// A null value is not a type violation; the validator owns required
// checks.
func typeViolations(raw map[string]json.RawMessage) []utils.FieldError {
	var details []utils.FieldError
	for _, f := range submissionFields {
		frag, ok := raw[f.name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(frag, f.dst()); err != nil {
			details = append(details, utils.FieldError{
				Loc:  []string{f.name},
				Msg:  "value is not a valid " + f.kind,
				Type: "type_error",
			})
		}
	}
	return details
}

// SubmitSurvey handles POST /v1/survey: parse, validate and normalize
// the submission, build the redacted storage record, then append it
// unless the store already holds a duplicate. Duplicates are answered
// exactly like fresh acceptances.
func SubmitSurvey(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// The body must parse as a JSON object. Anything else,
		// including a literal null, is rejected before validation.
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(c.Body(), &raw); err != nil || raw == nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid_json", "Request body must be JSON")
		}

		// The object shape is known good here, so a failing typed
		// decode means wrongly typed fields. Those are reported
		// field-scoped, like constraint violations.
		var submission models.SurveySubmission
		if err := json.Unmarshal(c.Body(), &submission); err != nil {
			if details := typeViolations(raw); len(details) > 0 {
				return utils.FieldErrorResponse(c, details)
			}
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "invalid_json", "Request body must be JSON")
		}

		submission.Normalize()
		if err := utils.Validate.Struct(&submission); err != nil {
			return utils.ValidationErrorResponse(c, err)
		}

		// Backfill the user agent from the request header when the
		// submission didn't supply one.
		if submission.UserAgent == "" {
			submission.UserAgent = c.Get(fiber.HeaderUserAgent)
		}

		record := submission.ToStorageRecord(time.Now().UTC(), c.IP())

		stored, err := store.AppendIfNew(c.Context(), record)
		if err != nil {
			log.Errorf("append submission %s: %v", record.SubmissionID, err)
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "storage_error", "failed to persist submission")
		}
		if !stored {
			log.Debugf("duplicate submission %s", record.SubmissionID)
		}

		return c.Status(fiber.StatusCreated).JSON(models.SubmissionResponse{
			Status:       "ok",
			SubmissionID: record.SubmissionID,
		})
	}
}
