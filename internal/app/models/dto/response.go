package dto

import "github.com/edusphere/backend/internal/app/models"

// APIResponse is the envelope used by every endpoint. The frontend
// expects the {success, message, ...} wire shape on every response.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CourseResponse wraps a single course
type CourseResponse struct {
	APIResponse
	Course *models.Course `json:"course,omitempty"`
}

// CourseListResponse wraps the catalog view (lectures projected out)
type CourseListResponse struct {
	APIResponse
	Courses []models.Course `json:"courses"`
}

// LectureListResponse wraps the lectures of one course
type LectureListResponse struct {
	APIResponse
	Lectures []models.Lecture `json:"lectures"`
}

// NewSuccessResponse creates a success envelope with a message
func NewSuccessResponse(message string) APIResponse {
	return APIResponse{Success: true, Message: message}
}

// NewErrorResponse creates an error envelope with a message
func NewErrorResponse(message string) APIResponse {
	return APIResponse{Success: false, Message: message}
}
