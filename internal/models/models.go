package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the string primary key shared by every entity. IDs are random
// UUIDs assigned on insert when the caller has not set one.
type Base struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index"                       json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

type User struct {
	Base
	FirstName      string  `gorm:"not null"             json:"first_name"`
	LastName       string  `gorm:"not null"             json:"last_name"`
	Email          string  `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string  `gorm:"not null"             json:"-"`
	SessionDigest  *string `gorm:"uniqueIndex"          json:"-"`
	ResetDigest    *string `gorm:"uniqueIndex"          json:"-"`
}

func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type Roadmap struct {
	Base
	UserID         string `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Title          string `gorm:"not null"                        json:"title"`
	Introduction   string `gorm:"type:text"                       json:"introduction"`
	AdditionalInfo string `gorm:"type:text"                       json:"additional_info"`
	Status         Status `gorm:"type:varchar(16);not null;default:planning" json:"status"`
}

type Topic struct {
	Base
	RoadmapID   string `gorm:"type:varchar(36);not null;uniqueIndex:idx_topic_roadmap_position" json:"roadmap_id"`
	Position    int    `gorm:"not null;uniqueIndex:idx_topic_roadmap_position"                  json:"position"`
	Name        string `gorm:"not null"  json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Milestones  string `gorm:"type:text" json:"milestones"`
}

type Objective struct {
	Base
	TopicID string `gorm:"type:varchar(36);index;not null" json:"topic_id"`
	Name    string `gorm:"type:text;not null"              json:"name"`
}

type Resource struct {
	Base
	TopicID string `gorm:"type:varchar(36);index;not null" json:"topic_id"`
	Link    string `gorm:"type:text;not null"              json:"link"`
}

// TopicTree is a topic together with the children persisted under it.
type TopicTree struct {
	Topic      Topic
	Objectives []Objective
	Resources  []Resource
}
