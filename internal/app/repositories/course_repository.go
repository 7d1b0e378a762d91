package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/db"
	"github.com/edusphere/backend/internal/pkg/apperrors"
	"github.com/edusphere/backend/internal/pkg/dberrors"
	"github.com/edusphere/backend/internal/pkg/logger"
)

const courseTitleConstraint = "courses_title_key"

// CourseRepository handles database operations for courses and their
// embedded lecture sequence.
type CourseRepository struct {
	DB *pgxpool.Pool
}

// NewCourseRepository creates a new instance of CourseRepository.
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) selectCourseQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"c.id", "c.title", "c.description", "c.category",
		"c.thumbnail_public_id", "c.thumbnail_secure_url",
		"c.number_of_lectures", "c.created_by", "c.created_at", "c.updated_at",
	).From("courses c").PlaceholderFormat(squirrel.Dollar)
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID, &course.Title, &course.Description, &course.Category,
		&course.Thumbnail.PublicID, &course.Thumbnail.SecureURL,
		&course.NumberOfLectures, &course.CreatedBy, &course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error scanning course row")
		return nil, err
	}
	return &course, nil
}

// Create inserts a course together with any inline lectures in one
// transaction. Returns the new course id.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) (int64, error) {
	var id int64
	err := db.WithTransaction(ctx, r.DB, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := squirrel.Insert("courses").
			Columns("title", "description", "category", "thumbnail_public_id", "thumbnail_secure_url", "number_of_lectures", "created_by").
			Values(course.Title, course.Description, course.Category, course.Thumbnail.PublicID, course.Thumbnail.SecureURL, len(course.Lectures), course.CreatedBy).
			Suffix("RETURNING id").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			logger.Error().Err(err).Msg("Error building create course SQL")
			return err
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
			if dberrors.IsUniqueViolation(err, courseTitleConstraint) {
				return apperrors.ErrCourseExists
			}
			logger.Error().Err(err).Msg("Error executing create course query")
			return err
		}

		for i := range course.Lectures {
			lecture := &course.Lectures[i]
			if err := insertLecture(ctx, tx, id, lecture, i+1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	course.ID = id
	course.NumberOfLectures = len(course.Lectures)
	return id, nil
}

// TitleExists reports whether a course with the given title is already persisted
func (r *CourseRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	sql, args, err := squirrel.Select("1").From("courses").
		Where(squirrel.Eq{"title": title}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		logger.Error().Err(err).Msg("Error checking course title existence")
		return false, err
	}
	return true, nil
}

// GetByID retrieves a course with its full lecture sequence
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sqlStr, args, err := r.selectCourseQuery().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, err
	}

	course, err := scanCourse(r.DB.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, err
	}

	lectures, err := r.getLectures(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Lectures = lectures

	return course, nil
}

// GetAll retrieves every course for the catalog view. Lectures are
// deliberately not loaded.
func (r *CourseRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	sqlStr, args, err := r.selectCourseQuery().OrderBy("c.created_at DESC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all courses SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all courses query")
		return nil, err
	}
	defer rows.Close()

	courses := make([]models.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating course rows")
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	return courses, nil
}

// Update persists course-level fields (title, description, category,
// createdBy). Lecture mutations go through the lecture methods.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := squirrel.Update("courses").
		Set("title", course.Title).
		Set("description", course.Description).
		Set("category", course.Category).
		Set("created_by", course.CreatedBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": course.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update course SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsUniqueViolation(err, courseTitleConstraint) {
			return apperrors.ErrCourseExists
		}
		logger.Error().Err(err).Msg("Error executing update course query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// UpdateThumbnail sets the thumbnail asset reference of a course
func (r *CourseRepository) UpdateThumbnail(ctx context.Context, courseID int64, asset models.Asset) error {
	sql, args, err := squirrel.Update("courses").
		Set("thumbnail_public_id", asset.PublicID).
		Set("thumbnail_secure_url", asset.SecureURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": courseID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update thumbnail SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update thumbnail query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// Delete removes a course. Lecture rows go with it via the FK cascade;
// media assets are left behind on purpose.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete course query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// AddLecture appends a lecture to the course's sequence and refreshes
// the lecture count within the same transaction.
func (r *CourseRepository) AddLecture(ctx context.Context, courseID int64, lecture *models.Lecture) error {
	return db.WithTransaction(ctx, r.DB, func(ctx context.Context, tx pgx.Tx) error {
		var next int
		if err := tx.QueryRow(ctx,
			`SELECT COALESCE(MAX(position), 0) + 1 FROM lectures WHERE course_id = $1`, courseID,
		).Scan(&next); err != nil {
			logger.Error().Err(err).Msg("Error computing next lecture position")
			return err
		}

		if err := insertLecture(ctx, tx, courseID, lecture, next); err != nil {
			return err
		}

		return refreshLectureCount(ctx, tx, courseID)
	})
}

// GetLecture retrieves a lecture scoped to its course
func (r *CourseRepository) GetLecture(ctx context.Context, courseID, lectureID int64) (*models.Lecture, error) {
	sqlStr, args, err := squirrel.Select(
		"id", "title", "description", "asset_public_id", "asset_secure_url",
	).From("lectures").
		Where(squirrel.Eq{"course_id": courseID, "id": lectureID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get lecture SQL")
		return nil, err
	}

	var lecture models.Lecture
	err = r.DB.QueryRow(ctx, sqlStr, args...).Scan(
		&lecture.ID, &lecture.Title, &lecture.Description,
		&lecture.Asset.PublicID, &lecture.Asset.SecureURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLectureNotFound
		}
		logger.Error().Err(err).Msg("Error executing get lecture query")
		return nil, err
	}

	return &lecture, nil
}

// UpdateLecture replaces a lecture's title, description and asset reference
func (r *CourseRepository) UpdateLecture(ctx context.Context, courseID int64, lecture *models.Lecture) error {
	sql, args, err := squirrel.Update("lectures").
		Set("title", lecture.Title).
		Set("description", lecture.Description).
		Set("asset_public_id", lecture.Asset.PublicID).
		Set("asset_secure_url", lecture.Asset.SecureURL).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"course_id": courseID, "id": lecture.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update lecture SQL")
		return err
	}

	cmdTag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update lecture query")
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrLectureNotFound
	}

	return nil
}

// DeleteLecture removes a lecture from the course's sequence and
// refreshes the lecture count within the same transaction.
func (r *CourseRepository) DeleteLecture(ctx context.Context, courseID, lectureID int64) error {
	return db.WithTransaction(ctx, r.DB, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx,
			`DELETE FROM lectures WHERE course_id = $1 AND id = $2`, courseID, lectureID,
		)
		if err != nil {
			logger.Error().Err(err).Msg("Error executing delete lecture query")
			return err
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrLectureNotFound
		}

		return refreshLectureCount(ctx, tx, courseID)
	})
}

func (r *CourseRepository) getLectures(ctx context.Context, courseID int64) ([]models.Lecture, error) {
	sqlStr, args, err := squirrel.Select(
		"id", "title", "description", "asset_public_id", "asset_secure_url",
	).From("lectures").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("position ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get lectures SQL")
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get lectures query")
		return nil, err
	}
	defer rows.Close()

	lectures := make([]models.Lecture, 0)
	for rows.Next() {
		var lecture models.Lecture
		if err := rows.Scan(
			&lecture.ID, &lecture.Title, &lecture.Description,
			&lecture.Asset.PublicID, &lecture.Asset.SecureURL,
		); err != nil {
			logger.Error().Err(err).Msg("Error scanning lecture row")
			return nil, err
		}
		lectures = append(lectures, lecture)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error after iterating lecture rows")
		return nil, err
	}

	return lectures, nil
}

func insertLecture(ctx context.Context, tx pgx.Tx, courseID int64, lecture *models.Lecture, position int) error {
	sql, args, err := squirrel.Insert("lectures").
		Columns("course_id", "title", "description", "asset_public_id", "asset_secure_url", "position").
		Values(courseID, lecture.Title, lecture.Description, lecture.Asset.PublicID, lecture.Asset.SecureURL, position).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert lecture SQL")
		return err
	}

	if err := tx.QueryRow(ctx, sql, args...).Scan(&lecture.ID); err != nil {
		logger.Error().Err(err).Msg("Error executing insert lecture query")
		return err
	}

	return nil
}

// refreshLectureCount keeps number_of_lectures equal to the actual
// lecture count. Runs inside the mutating transaction.
func refreshLectureCount(ctx context.Context, tx pgx.Tx, courseID int64) error {
	_, err := tx.Exec(ctx,
		`UPDATE courses
		 SET number_of_lectures = (SELECT COUNT(*) FROM lectures WHERE course_id = $1),
		     updated_at = NOW()
		 WHERE id = $1`, courseID,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Error refreshing lecture count")
	}
	return err
}
