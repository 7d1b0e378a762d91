package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/backend/internal/app/models"
	"github.com/edusphere/backend/internal/app/models/dto"
	"github.com/edusphere/backend/internal/pkg/apperrors"
)

// fakeCourseService returns canned results so handler behavior can be
// tested without a database.
type fakeCourseService struct {
	course   *models.Course
	courses  []models.Course
	lectures []models.Lecture
	err      error

	lastStore *dto.StoreCourseRequest
}

func (f *fakeCourseService) StoreCourse(ctx context.Context, req *dto.StoreCourseRequest) (*models.Course, error) {
	f.lastStore = req
	return f.course, f.err
}

func (f *fakeCourseService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest, thumbnail *multipart.FileHeader) (*models.Course, error) {
	return f.course, f.err
}

func (f *fakeCourseService) GetAllCourses(ctx context.Context) ([]models.Course, error) {
	return f.courses, f.err
}

func (f *fakeCourseService) GetLectures(ctx context.Context, courseID int64) ([]models.Lecture, error) {
	return f.lectures, f.err
}

func (f *fakeCourseService) UpdateCourse(ctx context.Context, id int64, req *dto.UpdateCourseRequest) (*models.Course, error) {
	return f.course, f.err
}

func (f *fakeCourseService) DeleteCourse(ctx context.Context, id int64) error {
	return f.err
}

func (f *fakeCourseService) AddLecture(ctx context.Context, courseID int64, req *dto.LectureRequest, file *multipart.FileHeader) (*models.Course, error) {
	return f.course, f.err
}

func (f *fakeCourseService) UpdateLecture(ctx context.Context, courseID, lectureID int64, req *dto.LectureRequest, file *multipart.FileHeader) (*models.Course, error) {
	return f.course, f.err
}

func (f *fakeCourseService) DeleteLecture(ctx context.Context, courseID, lectureID int64) (*models.Course, error) {
	return f.course, f.err
}

func newCourseRouter(svc *fakeCourseService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewCourseController(svc)

	router := gin.New()
	courses := router.Group("/api/v1/courses")
	{
		courses.POST("/s", controller.StoreCourse)
		courses.GET("", controller.GetAllCourses)
		courses.POST("", controller.CreateCourse)
		courses.GET("/:id", controller.GetLectures)
		courses.PUT("/:id", controller.UpdateCourse)
		courses.DELETE("/:id", controller.DeleteCourse)
		courses.POST("/:id", controller.AddLecture)
		courses.PUT("/:id/lecture/:lectureId", controller.UpdateLecture)
		courses.DELETE("/:id/lecture/:lectureId", controller.DeleteLecture)
	}
	return router
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	return body
}

func TestStoreCourseCreated(t *testing.T) {
	svc := &fakeCourseService{course: &models.Course{ID: 1, Title: "Go Basics"}}
	router := newCourseRouter(svc)

	payload := `{
		"title": "Go Basics",
		"description": "Learn things properly",
		"category": "engineering",
		"createdBy": "Jane Doe",
		"thumbnail": {},
		"numberOfLectures": 0
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/courses/s", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeEnvelope(t, rec)
	if body["success"] != true || body["message"] != "Course created successfully" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	if body["course"] == nil {
		t.Fatal("expected course in response")
	}
	if svc.lastStore == nil || svc.lastStore.NumberOfLectures == nil || *svc.lastStore.NumberOfLectures != 0 {
		t.Fatalf("zero lecture count must survive binding: %+v", svc.lastStore)
	}
}

func TestStoreCourseMissingFields(t *testing.T) {
	router := newCourseRouter(&fakeCourseService{})

	// thumbnail and numberOfLectures omitted entirely
	payload := `{"title": "Go Basics", "description": "d", "category": "c", "createdBy": "b"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/courses/s", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["success"] != false || body["message"] != "All fields are required" {
		t.Fatalf("unexpected envelope: %v", body)
	}
}

func TestStoreCourseDuplicateTitle(t *testing.T) {
	router := newCourseRouter(&fakeCourseService{err: apperrors.ErrCourseExists})

	payload := `{
		"title": "Go Basics",
		"description": "d",
		"category": "c",
		"createdBy": "b",
		"thumbnail": {},
		"numberOfLectures": 0
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/courses/s", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["success"] != false {
		t.Fatalf("unexpected envelope: %v", body)
	}
}

func TestGetAllCoursesEnvelope(t *testing.T) {
	svc := &fakeCourseService{courses: []models.Course{{ID: 1, Title: "Go Basics"}, {ID: 2, Title: "SQL"}}}
	router := newCourseRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "All courses" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	courses, ok := body["courses"].([]any)
	if !ok || len(courses) != 2 {
		t.Fatalf("expected 2 courses, got %v", body["courses"])
	}
}

func TestGetLecturesNotFound(t *testing.T) {
	router := newCourseRouter(&fakeCourseService{err: apperrors.ErrCourseNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/courses/99", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["success"] != false {
		t.Fatalf("unexpected envelope: %v", body)
	}
}

func TestGetLecturesInvalidID(t *testing.T) {
	router := newCourseRouter(&fakeCourseService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/courses/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAddLectureMultipart(t *testing.T) {
	svc := &fakeCourseService{course: &models.Course{ID: 1, Title: "Go Basics", NumberOfLectures: 1}}
	router := newCourseRouter(svc)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("title", "Intro")
	_ = writer.WriteField("description", "Start here")
	part, _ := writer.CreateFormFile("lecture", "intro.mp4")
	_, _ = part.Write([]byte("video-bytes"))
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/courses/1", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "Lecture successfully added to the course" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestAddLectureMissingFields(t *testing.T) {
	router := newCourseRouter(&fakeCourseService{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	_ = writer.WriteField("title", "Intro")
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/courses/1", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteLectureNotFound(t *testing.T) {
	router := newCourseRouter(&fakeCourseService{err: apperrors.ErrLectureNotFound})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/courses/1/lecture/42", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
