package dto

// AssetPayload mirrors the media host's {publicId, secureUrl} pair
type AssetPayload struct {
	PublicID  string `json:"publicId"`
	SecureURL string `json:"secureUrl"`
}

// LecturePayload is a lecture supplied inline on bulk course creation
type LecturePayload struct {
	Title       string        `json:"title" binding:"required"`
	Description string        `json:"description" binding:"required"`
	Asset       *AssetPayload `json:"lecture"`
}

// StoreCourseRequest is the bulk-form creation payload.
// Thumbnail and NumberOfLectures are pointers so that empty values
// ({} and 0) still count as present.
type StoreCourseRequest struct {
	Title            string           `json:"title" binding:"required"`
	Description      string           `json:"description" binding:"required"`
	Category         string           `json:"category" binding:"required"`
	Thumbnail        *AssetPayload    `json:"thumbnail" binding:"required"`
	Lectures         []LecturePayload `json:"lectures"`
	NumberOfLectures *int             `json:"numberOfLectures" binding:"required"`
	CreatedBy        string           `json:"createdBy" binding:"required"`
}

// CreateCourseRequest is the multipart creation payload; the thumbnail
// file travels separately in the form
type CreateCourseRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required"`
	Category    string `form:"category" binding:"required"`
	CreatedBy   string `form:"createdBy" binding:"required"`
}

// UpdateCourseRequest carries a partial field set; nil fields are left
// untouched by the shallow merge
type UpdateCourseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	CreatedBy   *string `json:"createdBy"`
}

// LectureRequest is the multipart payload for adding or updating a lecture
type LectureRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required"`
}
