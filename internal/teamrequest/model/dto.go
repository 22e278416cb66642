package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// WriteRequest is the body of create and update requests.
type WriteRequest struct {
	Title            string   `json:"title" validate:"required"`
	Description      string   `json:"description"`
	Skills           []string `json:"skills"`
	ProjectType      string   `json:"projectType"`
	ContactInfo      string   `json:"contactInfo"`
	OwnerFingerprint string   `json:"ownerFingerprint" validate:"required"`
}

// DeleteRequest is the body of a delete request.
type DeleteRequest struct {
	OwnerFingerprint string `json:"ownerFingerprint"`
}

// MessageResponse is returned by operations without a record to return.
type MessageResponse struct {
	Message string `json:"message"`
}

// Normalize trims textual fields and drops blank skills.
// The fingerprint is compared byte for byte and is kept as sent.
func (r *WriteRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.ProjectType = strings.TrimSpace(r.ProjectType)
	r.ContactInfo = strings.TrimSpace(r.ContactInfo)
	r.Skills = NormalizeSkills(r.Skills)
}

// Validate checks required fields and reports the first missing one.
func (r *WriteRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fmt.Errorf("%w: %s is required", ErrInvalidRequest, jsonFieldName(fieldErrs[0].StructField()))
	}
	return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
}

// NormalizeSkills trims every skill and drops empty ones. It never returns nil.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			out = append(out, skill)
		}
	}
	return out
}

func jsonFieldName(structField string) string {
	switch structField {
	case "OwnerFingerprint":
		return "ownerFingerprint"
	case "Title":
		return "title"
	default:
		return structField
	}
}
