package legacy

import (
	"fmt"
	"strings"
	"time"

	"github.com/festy23/teamup/internal/teamrequest/model"
)

// Record is one entry of the legacy JSON export. Older exports use the
// members shape (user_name, members, ...) instead of the canonical fields.
type Record struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Skills           []string `json:"skills"`
	ProjectType      string   `json:"projectType"`
	ContactInfo      string   `json:"contactInfo"`
	OwnerFingerprint string   `json:"ownerFingerprint"`
	CreatedAt        string   `json:"createdAt"`
	UpdatedAt        string   `json:"updatedAt"`

	UserName          string   `json:"user_name"`
	UserAbstract      string   `json:"user_abstract"`
	UserPersonalPhone string   `json:"user_personal_phone"`
	UserGender        string   `json:"user_gender"`
	Members           []Member `json:"members"`
}

// Member is a teammate entry of the members shape.
type Member struct {
	TechField   []string `json:"tech_field"`
	Planguage   []string `json:"planguage"`
	Gender      string   `json:"gender"`
	Major       string   `json:"major"`
	AlreadyKnow *bool    `json:"already_know"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime accepts RFC 3339 with or without fractional seconds, a zone-less
// date-time read as UTC, or a bare date.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return model.Timestamp(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", value)
}

// Convert maps r onto the canonical schema. now fills a missing updatedAt.
func (r Record) Convert(now time.Time) (model.TeamRequest, error) {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		return model.TeamRequest{}, fmt.Errorf("record without id")
	}
	if r.OwnerFingerprint == "" {
		return model.TeamRequest{}, fmt.Errorf("record %s: ownerFingerprint is required", id)
	}

	title := firstNonEmpty(r.Title, r.UserName)
	if title == "" {
		return model.TeamRequest{}, fmt.Errorf("record %s: title is required", id)
	}

	if strings.TrimSpace(r.CreatedAt) == "" {
		return model.TeamRequest{}, fmt.Errorf("record %s: createdAt is required", id)
	}
	createdAt, err := ParseTime(r.CreatedAt)
	if err != nil {
		return model.TeamRequest{}, fmt.Errorf("record %s: createdAt: %w", id, err)
	}

	updatedAt := model.Timestamp(now)
	if strings.TrimSpace(r.UpdatedAt) != "" {
		if updatedAt, err = ParseTime(r.UpdatedAt); err != nil {
			return model.TeamRequest{}, fmt.Errorf("record %s: updatedAt: %w", id, err)
		}
	}
	if updatedAt.Before(createdAt) {
		updatedAt = createdAt
	}

	skills := r.Skills
	if skills == nil {
		skills = r.memberSkills()
	}

	return model.TeamRequest{
		ID:               id,
		Title:            title,
		Description:      firstNonEmpty(r.Description, r.UserAbstract),
		Skills:           model.NormalizeSkills(skills),
		ProjectType:      strings.TrimSpace(r.ProjectType),
		ContactInfo:      firstNonEmpty(r.ContactInfo, r.UserPersonalPhone),
		OwnerFingerprint: r.OwnerFingerprint,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}, nil
}

// memberSkills unions tech_field and planguage across members in order of
// first appearance.
func (r Record) memberSkills() []string {
	seen := make(map[string]struct{})
	var skills []string
	add := func(values []string) {
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			skills = append(skills, v)
		}
	}
	for _, m := range r.Members {
		add(m.TechField)
		add(m.Planguage)
	}
	return skills
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
