package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/pkg/apperrors"
	"github.com/edusphere/backend/internal/pkg/mediastore"
)

// Media host folders for course assets
const (
	thumbnailFolder = "edusphere"
	lectureFolder   = "edusphere/lectures"
)

// CourseStore is the persistence surface the course service needs
type CourseStore interface {
	Create(ctx context.Context, course *models.Course) (int64, error)
	TitleExists(ctx context.Context, title string) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetAll(ctx context.Context) ([]models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	UpdateThumbnail(ctx context.Context, courseID int64, asset models.Asset) error
	Delete(ctx context.Context, id int64) error
	AddLecture(ctx context.Context, courseID int64, lecture *models.Lecture) error
	GetLecture(ctx context.Context, courseID, lectureID int64) (*models.Lecture, error)
	UpdateLecture(ctx context.Context, courseID int64, lecture *models.Lecture) error
	DeleteLecture(ctx context.Context, courseID, lectureID int64) error
}

// CourseService defines the interface for course and lecture operations
type CourseService interface {
	StoreCourse(ctx context.Context, req *dto.StoreCourseRequest) (*models.Course, error)
	CreateCourse(ctx context.Context, req *dto.CreateCourseRequest, thumbnail *multipart.FileHeader) (*models.Course, error)
	GetAllCourses(ctx context.Context) ([]models.Course, error)
	GetLectures(ctx context.Context, courseID int64) ([]models.Lecture, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
	AddLecture(ctx context.Context, courseID int64, req *dto.LectureRequest, file *multipart.FileHeader) (*models.Course, error)
	UpdateLecture(ctx context.Context, courseID, lectureID int64, req *dto.LectureRequest, file *multipart.FileHeader) (*models.Course, error)
	DeleteLecture(ctx context.Context, courseID, lectureID int64) (*models.Course, error)
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courses CourseStore
	media   mediastore.Store
	logger  zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(courses CourseStore, media mediastore.Store, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courses: courses,
		media:   media,
		logger:  logger,
	}
}

// StoreCourse persists a fully-formed course payload, inline lectures
// included. Nothing is written when the title is already taken.
func (s *courseServiceImpl) StoreCourse(ctx context.Context, req *dto.StoreCourseRequest) (*models.Course, error) {
	exists, err := s.courses.TitleExists(ctx, req.Title)
	if err != nil {
		return nil, fmt.Errorf("error checking course title: %w", err)
	}
	if exists {
		return nil, apperrors.ErrCourseExists
	}

	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Thumbnail:   models.Asset{PublicID: req.Thumbnail.PublicID, SecureURL: req.Thumbnail.SecureURL},
		CreatedBy:   req.CreatedBy,
	}

	for _, l := range req.Lectures {
		lecture := models.Lecture{Title: l.Title, Description: l.Description}
		if l.Asset != nil {
			lecture.Asset = models.Asset{PublicID: l.Asset.PublicID, SecureURL: l.Asset.SecureURL}
		}
		course.Lectures = append(course.Lectures, lecture)
	}

	if _, err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// CreateCourse persists a course and then uploads the optional
// thumbnail. An upload failure leaves the course without a thumbnail
// rather than rolling it back.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest, thumbnail *multipart.FileHeader) (*models.Course, error) {
	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CreatedBy:   req.CreatedBy,
	}

	if _, err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	if thumbnail != nil {
		asset, err := s.media.Upload(ctx, thumbnail, thumbnailFolder, mediastore.ResourceImage)
		if err != nil {
			// Accepted degraded state: the course exists, the thumbnail does not
			s.logger.Warn().Err(err).Int64("courseId", course.ID).Msg("Thumbnail upload failed, course persisted without thumbnail")
			return course, nil
		}

		course.Thumbnail = models.Asset{PublicID: asset.PublicID, SecureURL: asset.SecureURL}
		if err := s.courses.UpdateThumbnail(ctx, course.ID, course.Thumbnail); err != nil {
			s.logger.Warn().Err(err).Int64("courseId", course.ID).Msg("Failed to persist thumbnail reference")
			// The response must reflect the stored row, not the upload
			course.Thumbnail = models.Asset{}
			if err := s.media.Destroy(ctx, asset.PublicID); err != nil {
				s.logger.Warn().Err(err).Str("publicId", asset.PublicID).Msg("Failed to destroy unreferenced thumbnail asset")
			}
		}
	}

	return course, nil
}

// GetAllCourses returns the catalog view without lectures
func (s *courseServiceImpl) GetAllCourses(ctx context.Context) ([]models.Course, error) {
	courses, err := s.courses.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting courses: %w", err)
	}
	return courses, nil
}

// GetLectures returns the lecture sequence of one course
func (s *courseServiceImpl) GetLectures(ctx context.Context, courseID int64) ([]models.Lecture, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return course.Lectures, nil
}

// UpdateCourse applies a shallow merge of the supplied fields
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.CreatedBy != nil {
		course.CreatedBy = *req.CreatedBy
	}

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}

	return course, nil
}

// DeleteCourse removes the course record. Lecture media assets are not
// cleaned up; the asset host may accumulate orphans.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	return s.courses.Delete(ctx, id)
}

// AddLecture appends a lecture, uploading the optional video first
func (s *courseServiceImpl) AddLecture(ctx context.Context, courseID int64, req *dto.LectureRequest, file *multipart.FileHeader) (*models.Course, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	lecture := &models.Lecture{
		Title:       req.Title,
		Description: req.Description,
	}

	if file != nil {
		asset, err := s.media.Upload(ctx, file, lectureFolder, mediastore.ResourceVideo)
		if err != nil {
			return nil, apperrors.NewUpstreamError(err)
		}
		lecture.Asset = models.Asset{PublicID: asset.PublicID, SecureURL: asset.SecureURL}
	}

	if err := s.courses.AddLecture(ctx, courseID, lecture); err != nil {
		return nil, err
	}

	return s.courses.GetByID(ctx, courseID)
}

// UpdateLecture replaces a lecture's fields; a replacement file
// overwrites the asset reference and the old asset is destroyed
// best-effort.
func (s *courseServiceImpl) UpdateLecture(ctx context.Context, courseID, lectureID int64, req *dto.LectureRequest, file *multipart.FileHeader) (*models.Course, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	lecture, err := s.courses.GetLecture(ctx, courseID, lectureID)
	if err != nil {
		return nil, err
	}

	lecture.Title = req.Title
	lecture.Description = req.Description

	if file != nil {
		asset, err := s.media.Upload(ctx, file, lectureFolder, mediastore.ResourceVideo)
		if err != nil {
			return nil, apperrors.NewUpstreamError(err)
		}

		if !lecture.Asset.IsZero() {
			if err := s.media.Destroy(ctx, lecture.Asset.PublicID); err != nil {
				s.logger.Warn().Err(err).Str("publicId", lecture.Asset.PublicID).Msg("Failed to destroy replaced lecture asset")
			}
		}

		lecture.Asset = models.Asset{PublicID: asset.PublicID, SecureURL: asset.SecureURL}
	}

	if err := s.courses.UpdateLecture(ctx, courseID, lecture); err != nil {
		return nil, err
	}

	return s.courses.GetByID(ctx, courseID)
}

// DeleteLecture removes a lecture and requests deletion of its backing
// asset. Asset-store failures are logged, not fatal.
func (s *courseServiceImpl) DeleteLecture(ctx context.Context, courseID, lectureID int64) (*models.Course, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	lecture, err := s.courses.GetLecture(ctx, courseID, lectureID)
	if err != nil {
		return nil, err
	}

	if !lecture.Asset.IsZero() {
		if err := s.media.Destroy(ctx, lecture.Asset.PublicID); err != nil {
			s.logger.Warn().Err(err).Str("publicId", lecture.Asset.PublicID).Msg("Failed to destroy lecture asset")
		}
	}

	if err := s.courses.DeleteLecture(ctx, courseID, lectureID); err != nil {
		return nil, err
	}

	return s.courses.GetByID(ctx, courseID)
}
