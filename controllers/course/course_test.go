package courseController_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"edusync/config"
	"edusync/database"
	"edusync/models"
	"edusync/routers/authRoutes"
	"edusync/routers/courseRoutes"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type courseData struct {
	CourseID       string `json:"courseId"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	MediaURL       string `json:"mediaUrl"`
	InstructorID   string `json:"instructorId"`
	InstructorName string `json:"instructorName"`
}

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:      "test-secret-key",
		JWTIssuer:   "edusync",
		JWTAudience: "edusync-client",
		BcryptCost:  bcrypt.MinCost,
	}

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:course_%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Course{}, &models.Assessment{}, &models.Question{}, &models.Result{},
	))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	return app
}

func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

// registerUser creates an account through the real endpoint and returns
// the issued token and user id.
func registerUser(t *testing.T, app *fiber.App, name, email string, role models.Role) (string, string) {
	t.Helper()

	resp, env := request(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "Passw0rd!", "role": string(role),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Message)

	var data struct {
		Token string `json:"token"`
		User  struct {
			UserID string `json:"userId"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.Token, data.User.UserID
}

func createCourse(t *testing.T, app *fiber.App, token, title string) courseData {
	t.Helper()

	resp, env := request(t, app, http.MethodPost, "/api/courses/", token, map[string]string{
		"title":       title,
		"description": "Intro level material",
		"mediaUrl":    "https://cdn.example.com/" + strings.ToLower(title) + ".mp4",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Message)

	var data courseData
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data
}

func TestCreateAndGetCourse(t *testing.T) {
	app := setupApp(t)
	token, instructorID := registerUser(t, app, "Ira", "ira@x.com", models.RoleInstructor)

	created := createCourse(t, app, token, "Algebra")
	assert.Equal(t, instructorID, created.InstructorID)

	resp, env := request(t, app, http.MethodGet, "/api/courses/"+created.CourseID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched courseData
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, "Algebra", fetched.Title)
	assert.Equal(t, "Ira", fetched.InstructorName)
}

func TestGetAllCourses(t *testing.T) {
	app := setupApp(t)
	instructorToken, _ := registerUser(t, app, "Ira", "ira@x.com", models.RoleInstructor)
	studentToken, _ := registerUser(t, app, "Sam", "sam@x.com", models.RoleStudent)

	createCourse(t, app, instructorToken, "Algebra")
	createCourse(t, app, instructorToken, "Geometry")

	// Students can browse the catalogue.
	resp, env := request(t, app, http.MethodGet, "/api/courses/", studentToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var courses []courseData
	require.NoError(t, json.Unmarshal(env.Data, &courses))
	assert.Len(t, courses, 2)
	for _, course := range courses {
		assert.Equal(t, "Ira", course.InstructorName)
	}
}

func TestGetInstructorCourses(t *testing.T) {
	app := setupApp(t)
	iraToken, _ := registerUser(t, app, "Ira", "ira@x.com", models.RoleInstructor)
	bobToken, _ := registerUser(t, app, "Bob", "bob@x.com", models.RoleInstructor)

	createCourse(t, app, iraToken, "Algebra")
	createCourse(t, app, bobToken, "Biology")

	resp, env := request(t, app, http.MethodGet, "/api/courses/instructor", iraToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var courses []courseData
	require.NoError(t, json.Unmarshal(env.Data, &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, "Algebra", courses[0].Title)
}

func TestCourseRoleEnforcement(t *testing.T) {
	app := setupApp(t)
	studentToken, _ := registerUser(t, app, "Sam", "sam@x.com", models.RoleStudent)

	resp, _ := request(t, app, http.MethodPost, "/api/courses/", studentToken, map[string]string{
		"title": "Nope", "description": "Students cannot teach", "mediaUrl": "https://cdn.example.com/nope.mp4",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// No token at all.
	resp, _ = request(t, app, http.MethodGet, "/api/courses/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateCourse(t *testing.T) {
	app := setupApp(t)
	token, _ := registerUser(t, app, "Ira", "ira@x.com", models.RoleInstructor)
	created := createCourse(t, app, token, "Algebra")

	resp, env := request(t, app, http.MethodPut, "/api/courses/"+created.CourseID, token, map[string]string{
		"title":       "Algebra II",
		"description": "Second semester",
		"mediaUrl":    "https://cdn.example.com/algebra2.mp4",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated courseData
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Algebra II", updated.Title)
	assert.Equal(t, created.CourseID, updated.CourseID)
}

func TestModifyForeignCourseForbidden(t *testing.T) {
	app := setupApp(t)
	iraToken, _ := registerUser(t, app, "Ira", "ira@x.com", models.RoleInstructor)
	bobToken, _ := registerUser(t, app, "Bob", "bob@x.com", models.RoleInstructor)
	created := createCourse(t, app, iraToken, "Algebra")

	resp, env := request(t, app, http.MethodPut, "/api/courses/"+created.CourseID, bobToken, map[string]string{
		"title": "Hijacked", "description": "x", "mediaUrl": "https://cdn.example.com/x.mp4",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "You can only modify your own courses!", env.Message)

	resp, _ = request(t, app, http.MethodDelete, "/api/courses/"+created.CourseID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDeleteCourse(t *testing.T) {
	app := setupApp(t)
	token, _ := registerUser(t, app, "Ira", "ira@x.com", models.RoleInstructor)
	created := createCourse(t, app, token, "Algebra")

	resp, _ := request(t, app, http.MethodDelete, "/api/courses/"+created.CourseID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = request(t, app, http.MethodGet, "/api/courses/"+created.CourseID, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCourseNotFoundAndBadID(t *testing.T) {
	app := setupApp(t)
	token, _ := registerUser(t, app, "Ira", "ira@x.com", models.RoleInstructor)

	resp, _ := request(t, app, http.MethodGet, "/api/courses/8f7d2c3e-1a2b-4c5d-8e9f-0a1b2c3d4e5f", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, env := request(t, app, http.MethodGet, "/api/courses/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid course id!", env.Message)
}

func TestCourseValidation(t *testing.T) {
	app := setupApp(t)
	token, _ := registerUser(t, app, "Ira", "ira@x.com", models.RoleInstructor)

	resp, _ := request(t, app, http.MethodPost, "/api/courses/", token, map[string]string{
		"title": "", "description": "missing title", "mediaUrl": "https://cdn.example.com/x.mp4",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp, _ = request(t, app, http.MethodPost, "/api/courses/", token, map[string]string{
		"title": "Algebra", "description": "bad url", "mediaUrl": "not a url",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestEnrollPlaceholder(t *testing.T) {
	app := setupApp(t)
	instructorToken, _ := registerUser(t, app, "Ira", "ira@x.com", models.RoleInstructor)
	studentToken, _ := registerUser(t, app, "Sam", "sam@x.com", models.RoleStudent)
	created := createCourse(t, app, instructorToken, "Algebra")

	resp, env := request(t, app, http.MethodPost, "/api/courses/"+created.CourseID+"/enroll", studentToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Enrollment is not available yet.", env.Message)

	// Only students may enroll.
	resp, _ = request(t, app, http.MethodPost, "/api/courses/"+created.CourseID+"/enroll", instructorToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
