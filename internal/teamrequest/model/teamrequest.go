// Package model provides domain models and DTOs for the team request module.
package model

import "time"

// CollectionName is the MongoDB collection holding team requests.
const CollectionName = "teamrequests"

// TeamRequest is a request to form a team, owned by whoever holds its fingerprint.
// The same struct is stored as a row (gorm) and as a document (bson).
type TeamRequest struct {
	ID               string    `gorm:"primaryKey;column:id;type:varchar(64)" bson:"_id" json:"id"`
	Title            string    `gorm:"column:title;type:text;not null" bson:"title" json:"title"`
	Description      string    `gorm:"column:description;type:text;not null;default:''" bson:"description" json:"description"`
	Skills           []string  `gorm:"column:skills;type:jsonb;serializer:json;not null" bson:"skills" json:"skills"`
	ProjectType      string    `gorm:"column:project_type;type:text;not null;default:''" bson:"projectType" json:"projectType"`
	ContactInfo      string    `gorm:"column:contact_info;type:text;not null;default:''" bson:"contactInfo" json:"contactInfo"`
	OwnerFingerprint string    `gorm:"column:owner_fingerprint;type:text;not null" bson:"ownerFingerprint" json:"ownerFingerprint"`
	CreatedAt        time.Time `gorm:"column:created_at;not null;autoCreateTime:false" bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false" bson:"updatedAt" json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (TeamRequest) TableName() string {
	return "team_requests"
}

// IsOwnedBy reports whether fingerprint matches the stored owner fingerprint.
// This is plain equality; the fingerprint is not a secret.
func (r *TeamRequest) IsOwnedBy(fingerprint string) bool {
	return r.OwnerFingerprint == fingerprint
}

// Apply replaces every mutable field with the values from req.
// ID, OwnerFingerprint and CreatedAt are left untouched.
func (r *TeamRequest) Apply(req *WriteRequest) {
	r.Title = req.Title
	r.Description = req.Description
	r.Skills = req.Skills
	r.ProjectType = req.ProjectType
	r.ContactInfo = req.ContactInfo
}

// Timestamp returns t in UTC truncated to millisecond precision, the finest
// precision every supported store preserves.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
