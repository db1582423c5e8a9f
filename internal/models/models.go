package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of account kinds.
type Role string

const (
	RoleEmployer  Role = "Employer"
	RoleJobSeeker Role = "Job Seeker"
)

// ParseRole converts user input into a Role.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleEmployer, RoleJobSeeker:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// CanManageJobs reports whether the role may post and manage listings.
func (r Role) CanManageJobs() bool {
	switch r {
	case RoleEmployer:
		return true
	case RoleJobSeeker:
		return false
	}
	return false
}

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	CreatedAt time.Time `json:"createdAt"`

	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Phone    string `json:"phone"`
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(16);not null" json:"role"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Job is a listing owned by the Employer referenced by PostedBy.
type Job struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	JobPostedOn time.Time `gorm:"autoCreateTime" json:"jobPostedOn"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Category    string `gorm:"not null" json:"category"`
	Country     string `gorm:"not null" json:"country"`
	City        string `gorm:"not null" json:"city"`
	Location    string `gorm:"not null" json:"location"`

	FixedSalary *int `json:"fixedSalary,omitempty"`
	SalaryFrom  *int `json:"salaryFrom,omitempty"`
	SalaryTo    *int `json:"salaryTo,omitempty"`

	Expired  bool      `gorm:"not null;default:false;index" json:"expired"`
	PostedBy uuid.UUID `gorm:"type:uuid;not null;index" json:"postedBy"`

	// Fingerprint is unique across listings so identical postings are
	// rejected by the database.
	Fingerprint string `gorm:"size:64;not null;uniqueIndex" json:"-"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// BeforeSave runs for both inserts and full saves.
func (j *Job) BeforeSave(tx *gorm.DB) error {
	j.Fingerprint = j.ComputeFingerprint()
	return nil
}

// ComputeFingerprint hashes the fields that make two listings identical.
func (j *Job) ComputeFingerprint() string {
	fields := []string{
		j.Title,
		j.Description,
		j.Category,
		j.Country,
		j.City,
		j.Location,
		optionalInt(j.FixedSalary),
		optionalInt(j.SalaryFrom),
		optionalInt(j.SalaryTo),
	}
	sum := sha256.Sum256([]byte(strings.Join(fields, "\x1f")))
	return hex.EncodeToString(sum[:])
}

func optionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
