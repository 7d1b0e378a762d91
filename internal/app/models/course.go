package models

import "time"

// Asset references a file stored on the media host
type Asset struct {
	PublicID  string `json:"publicId" db:"public_id"`
	SecureURL string `json:"secureUrl" db:"secure_url"`
}

// IsZero reports whether no asset has been uploaded
func (a Asset) IsZero() bool {
	return a.PublicID == "" && a.SecureURL == ""
}

// Lecture is a video unit embedded in exactly one course
type Lecture struct {
	ID          int64  `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	Asset       Asset  `json:"lecture" db:"-"`
}

// Course is a top-level catalog entry aggregating lectures.
// NumberOfLectures always equals len(Lectures) once persisted; lecture
// mutations recompute it in the same transaction.
type Course struct {
	ID               int64     `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	Category         string    `json:"category" db:"category"`
	Thumbnail        Asset     `json:"thumbnail" db:"-"`
	Lectures         []Lecture `json:"lectures,omitempty" db:"-"`
	NumberOfLectures int       `json:"numberOfLectures" db:"number_of_lectures"`
	CreatedBy        string    `json:"createdBy" db:"created_by"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}
