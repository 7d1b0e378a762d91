package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/app/services"
	"github.com/edusphere/backend/internal/middleware"
)

// parseIDParam parses an ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, bool) {
	idStr := ctx.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// optionalFormFile returns the named multipart file, or nil when the
// request carries none
func optionalFormFile(ctx *gin.Context, name string) *multipart.FileHeader {
	file, err := ctx.FormFile(name)
	if err != nil {
		return nil
	}
	return file
}

// CourseController handles course and lecture operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// StoreCourse godoc
// @Summary Store a fully-formed course
// @Description Persist a course payload including inline lectures
// @Tags courses
// @Accept json
// @Produce json
// @Param request body dto.StoreCourseRequest true "Course payload"
// @Success 201 {object} dto.CourseResponse
// @Failure 400 {object} dto.APIResponse
// @Router /courses/s [post]
func (c *CourseController) StoreCourse(ctx *gin.Context) {
	var req dto.StoreCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorMessage(err)))
		return
	}

	course, err := c.courseService.StoreCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CourseResponse{
		APIResponse: dto.NewSuccessResponse("Course created successfully"),
		Course:      course,
	})
}

// GetAllCourses godoc
// @Summary List all courses
// @Description Catalog view of every course, lectures excluded
// @Tags courses
// @Produce json
// @Success 200 {object} dto.CourseListResponse
// @Router /courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.GetAllCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CourseListResponse{
		APIResponse: dto.NewSuccessResponse("All courses"),
		Courses:     courses,
	})
}

// CreateCourse godoc
// @Summary Create a course with an optional thumbnail upload
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param category formData string true "Category"
// @Param createdBy formData string true "Creator"
// @Param thumbnail formData file false "Thumbnail image"
// @Success 200 {object} dto.CourseResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 403 {object} dto.APIResponse
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorMessage(err)))
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req, optionalFormFile(ctx, "thumbnail"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CourseResponse{
		APIResponse: dto.NewSuccessResponse("Course successfully created"),
		Course:      course,
	})
}

// GetLectures godoc
// @Summary List the lectures of a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.LectureListResponse
// @Failure 403 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /courses/{id} [get]
func (c *CourseController) GetLectures(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid Course id"))
		return
	}

	lectures, err := c.courseService.GetLectures(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LectureListResponse{
		APIResponse: dto.NewSuccessResponse("Course Lectures fetched successfully"),
		Lectures:    lectures,
	})
}

// UpdateCourse godoc
// @Summary Update course fields
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Partial field set"
// @Success 200 {object} dto.CourseResponse
// @Failure 404 {object} dto.APIResponse
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid Course id"))
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorMessage(err)))
		return
	}

	course, err := c.courseService.UpdateCourse(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CourseResponse{
		APIResponse: dto.NewSuccessResponse("Course updated successfully"),
		Course:      course,
	})
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid Course id"))
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Course deleted successfully"))
}

// AddLecture godoc
// @Summary Add a lecture to a course
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param lecture formData file false "Lecture video"
// @Success 200 {object} dto.CourseResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /courses/{id} [post]
func (c *CourseController) AddLecture(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid Course id"))
		return
	}

	var req dto.LectureRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorMessage(err)))
		return
	}

	course, err := c.courseService.AddLecture(ctx.Request.Context(), id, &req, optionalFormFile(ctx, "lecture"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CourseResponse{
		APIResponse: dto.NewSuccessResponse("Lecture successfully added to the course"),
		Course:      course,
	})
}

// UpdateLecture godoc
// @Summary Update a lecture within a course
// @Tags courses
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param lectureId path int true "Lecture ID"
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param lecture formData file false "Replacement video"
// @Success 200 {object} dto.CourseResponse
// @Failure 400 {object} dto.APIResponse
// @Failure 404 {object} dto.APIResponse
// @Router /courses/{id}/lecture/{lectureId} [put]
func (c *CourseController) UpdateLecture(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid Course id"))
		return
	}

	lectureID, ok := parseIDParam(ctx, "lectureId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid Lecture id"))
		return
	}

	var req dto.LectureRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(middleware.BindingErrorMessage(err)))
		return
	}

	course, err := c.courseService.UpdateLecture(ctx.Request.Context(), courseID, lectureID, &req, optionalFormFile(ctx, "lecture"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CourseResponse{
		APIResponse: dto.NewSuccessResponse("Lecture successfully updated"),
		Course:      course,
	})
}

// DeleteLecture godoc
// @Summary Delete a lecture from a course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param lectureId path int true "Lecture ID"
// @Success 200 {object} dto.CourseResponse
// @Failure 404 {object} dto.APIResponse
// @Router /courses/{id}/lecture/{lectureId} [delete]
func (c *CourseController) DeleteLecture(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid Course id"))
		return
	}

	lectureID, ok := parseIDParam(ctx, "lectureId")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse("Invalid Lecture id"))
		return
	}

	course, err := c.courseService.DeleteLecture(ctx.Request.Context(), courseID, lectureID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CourseResponse{
		APIResponse: dto.NewSuccessResponse("Lecture successfully deleted from the course"),
		Course:      course,
	})
}
