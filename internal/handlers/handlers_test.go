package handlers_test

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"skillmatch/db"
	"skillmatch/internal/handlers"
	"skillmatch/internal/handlers/testutils"
)

// MockStorage implements StorageInterface
type MockStorage struct {
	project          *db.Project
	projects         []db.Project
	createProjectErr error
	createdProjects  []*db.Project
	projectFound     bool

	appliedProjects      []db.AppliedProject
	applicants           []db.Application
	createdApplications  []*db.Application
	createApplicationErr error
	confirmedIDs         []int

	tasks        []db.Task
	createdTasks []*db.Task
	taskFound    bool
	deletedIDs   []int

	inboxMessages   []db.InboxMessage
	createdMessages []*db.InboxMessage
	messageFound    bool
}

func (m *MockStorage) CreateProject(ctx context.Context, p *db.Project) error {
	if m.createProjectErr != nil {
		return m.createProjectErr
	}
	p.ID = 42
	p.CreatedAt = time.Now()
	m.createdProjects = append(m.createdProjects, p)
	return nil
}

func (m *MockStorage) GetProject(ctx context.Context, projectID int) (*db.Project, error) {
	if m.project == nil {
		return nil, sql.ErrNoRows
	}
	return m.project, nil
}

func (m *MockStorage) GetProjects(ctx context.Context, companyName string) ([]db.Project, error) {
	if companyName != "" {
		filtered := []db.Project{}
		for _, p := range m.projects {
			if p.CompanyName == companyName {
				filtered = append(filtered, p)
			}
		}
		return filtered, nil
	}
	return m.projects, nil
}

func (m *MockStorage) UpdateProjectProgress(ctx context.Context, projectID int, progress int) (bool, error) {
	return m.projectFound, nil
}

func (m *MockStorage) CreateApplication(ctx context.Context, a *db.Application) error {
	if m.createApplicationErr != nil {
		return m.createApplicationErr
	}
	a.ID = len(m.createdApplications) + 1
	a.Status = "awaiting"
	m.createdApplications = append(m.createdApplications, a)
	return nil
}

func (m *MockStorage) GetApplicationsForFreelancer(ctx context.Context, freelancerName string) ([]db.AppliedProject, error) {
	return m.appliedProjects, nil
}

func (m *MockStorage) GetApplicantsForProject(ctx context.Context, projectID int) ([]db.Application, error) {
	return m.applicants, nil
}

func (m *MockStorage) ConfirmApplication(ctx context.Context, applicationID int) error {
	m.confirmedIDs = append(m.confirmedIDs, applicationID)
	return nil
}

func (m *MockStorage) CreateTask(ctx context.Context, t *db.Task) error {
	t.ID = len(m.createdTasks) + 1
	m.createdTasks = append(m.createdTasks, t)
	return nil
}

func (m *MockStorage) GetTasksForProject(ctx context.Context, projectID int) ([]db.Task, error) {
	return m.tasks, nil
}

func (m *MockStorage) UpdateTaskStatus(ctx context.Context, taskID int, status string) (bool, error) {
	return m.taskFound, nil
}

func (m *MockStorage) DeleteTask(ctx context.Context, taskID int) (bool, error) {
	if m.taskFound {
		m.deletedIDs = append(m.deletedIDs, taskID)
	}
	return m.taskFound, nil
}

func (m *MockStorage) CreateInboxMessage(ctx context.Context, msg *db.InboxMessage) error {
	msg.ID = len(m.createdMessages) + 1
	m.createdMessages = append(m.createdMessages, msg)
	return nil
}

func (m *MockStorage) GetInboxMessages(ctx context.Context, companyName string) ([]db.InboxMessage, error) {
	return m.inboxMessages, nil
}

func (m *MockStorage) MarkInboxMessageRead(ctx context.Context, messageID int) (bool, error) {
	return m.messageFound, nil
}

type fakeUploader struct {
	err  error
	keys []string
}

func (f *fakeUploader) Upload(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	io.Copy(io.Discard, body)
	f.keys = append(f.keys, key)
	return "https://bucket.s3.amazonaws.com/" + key, nil
}

func newTestHandler(t *testing.T, store handlers.StorageInterface, blobs *fakeUploader) *handlers.Handler {
	t.Helper()
	if blobs == nil {
		blobs = &fakeUploader{}
	}
	return handlers.NewHandler(store, blobs, zap.NewNop(), t.TempDir(), handlers.AuthConfig{})
}

func TestGetProjectsHandler(t *testing.T) {
	mockStore := &MockStorage{projects: []db.Project{
		{ID: 1, Name: "Logo design", CompanyName: "Acme"},
		{ID: 2, Name: "Landing page", CompanyName: "Globex"},
	}}
	handler := newTestHandler(t, mockStore, nil)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	w := httptest.NewRecorder()

	handler.GetProjectsHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), "Logo design")
	require.Contains(t, string(body), "Landing page")
}

func TestGetProjectsHandlerCompanyFilter(t *testing.T) {
	mockStore := &MockStorage{projects: []db.Project{
		{ID: 1, Name: "Logo design", CompanyName: "Acme"},
		{ID: 2, Name: "Landing page", CompanyName: "Globex"},
	}}
	handler := newTestHandler(t, mockStore, nil)

	req := httptest.NewRequest(http.MethodGet, "/projects?companyName=Acme", nil)
	w := httptest.NewRecorder()

	handler.GetProjectsHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), "Logo design")
	require.NotContains(t, string(body), "Landing page")
}

func TestGetProjectHandlerNotFound(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(t, mockStore, nil)

	req := httptest.NewRequest(http.MethodGet, "/projects/99", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"projectId": "99"})
	w := httptest.NewRecorder()

	handler.GetProjectHandler(w, req)

	require.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestCreateProjectHandler(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(t, mockStore, nil)

	reqBody := `{
        "name": "Logo design",
        "description": "Need a logo",
        "deadline": "2025-01-01",
        "skills": "Illustrator",
        "budget": 50,
        "companyName": "Acme"
    }`
	req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.CreateProjectHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	require.Equal(t, http.StatusCreated, res.StatusCode)
	require.Contains(t, string(body), "projectId")

	require.Len(t, mockStore.createdProjects, 1)
	created := mockStore.createdProjects[0]
	require.Equal(t, "Logo design", created.Name)
	require.Equal(t, "Need a logo", created.Description)
	require.Equal(t, "2025-01-01", created.Deadline)
	require.Equal(t, "Illustrator", created.Skills)
	require.Equal(t, float64(50), created.Budget)
	require.Equal(t, "Acme", created.CompanyName)
	require.Equal(t, 0, created.Progress)
}

func TestCreateProjectHandlerMissingField(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(t, mockStore, nil)

	reqBody := `{"name": "Logo design", "budget": 50}`
	req := httptest.NewRequest(http.MethodPost, "/projects", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.CreateProjectHandler(w, req)

	require.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	require.Empty(t, mockStore.createdProjects)
}

func TestUpdateProjectProgressHandler(t *testing.T) {
	mockStore := &MockStorage{projectFound: true}
	handler := newTestHandler(t, mockStore, nil)

	req := httptest.NewRequest(http.MethodPut, "/projects/1/progress", strings.NewReader(`{"progress": 40}`))
	req.Header.Set("Content-Type", "application/json")
	req = testutils.WithChiURLParams(req, map[string]string{"projectId": "1"})
	w := httptest.NewRecorder()

	handler.UpdateProjectProgressHandler(w, req)

	require.Equal(t, http.StatusOK, w.Result().StatusCode)
}

func TestUpdateProjectProgressHandlerMissingProgress(t *testing.T) {
	mockStore := &MockStorage{projectFound: true}
	handler := newTestHandler(t, mockStore, nil)

	req := httptest.NewRequest(http.MethodPut, "/projects/1/progress", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req = testutils.WithChiURLParams(req, map[string]string{"projectId": "1"})
	w := httptest.NewRecorder()

	handler.UpdateProjectProgressHandler(w, req)

	require.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestUpdateProjectProgressHandlerNotFound(t *testing.T) {
	mockStore := &MockStorage{projectFound: false}
	handler := newTestHandler(t, mockStore, nil)

	req := httptest.NewRequest(http.MethodPut, "/projects/99/progress", strings.NewReader(`{"progress": 40}`))
	req.Header.Set("Content-Type", "application/json")
	req = testutils.WithChiURLParams(req, map[string]string{"projectId": "99"})
	w := httptest.NewRecorder()

	handler.UpdateProjectProgressHandler(w, req)

	require.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}

func TestGetFreelancerApplicationsHandler(t *testing.T) {
	mockStore := &MockStorage{appliedProjects: []db.AppliedProject{
		{Project: db.Project{ID: 1, Name: "Logo design"}, Status: "awaiting"},
	}}
	handler := newTestHandler(t, mockStore, nil)

	req := httptest.NewRequest(http.MethodGet, "/applications?freelancerName=jane", nil)
	w := httptest.NewRecorder()

	handler.GetFreelancerApplicationsHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), "Logo design")
	require.Contains(t, string(body), "awaiting")
}

func TestGetFreelancerApplicationsHandlerMissingName(t *testing.T) {
	handler := newTestHandler(t, &MockStorage{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	w := httptest.NewRecorder()

	handler.GetFreelancerApplicationsHandler(w, req)

	require.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestConfirmApplicantHandlerIdempotent(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(t, mockStore, nil)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPut, "/applications/confirm/5", nil)
		req = testutils.WithChiURLParams(req, map[string]string{"applicationId": "5"})
		w := httptest.NewRecorder()

		handler.ConfirmApplicantHandler(w, req)

		require.Equal(t, http.StatusOK, w.Result().StatusCode)
	}

	require.Equal(t, []int{5, 5}, mockStore.confirmedIDs)
}

func TestCreateTaskHandlerDefaultsStatus(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(t, mockStore, nil)

	req := httptest.NewRequest(http.MethodPost, "/projects/1/tasks", strings.NewReader(`{"name":"Wireframes","description":"First drafts"}`))
	req.Header.Set("Content-Type", "application/json")
	req = testutils.WithChiURLParams(req, map[string]string{"projectId": "1"})
	w := httptest.NewRecorder()

	handler.CreateTaskHandler(w, req)

	require.Equal(t, http.StatusCreated, w.Result().StatusCode)
	require.Len(t, mockStore.createdTasks, 1)
	require.Equal(t, "pending", mockStore.createdTasks[0].Status)
	require.Equal(t, 1, mockStore.createdTasks[0].ProjectID)
}

func TestCreateTaskHandlerMissingName(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(t, mockStore, nil)

	req := httptest.NewRequest(http.MethodPost, "/projects/1/tasks", strings.NewReader(`{"description":"no name"}`))
	req.Header.Set("Content-Type", "application/json")
	req = testutils.WithChiURLParams(req, map[string]string{"projectId": "1"})
	w := httptest.NewRecorder()

	handler.CreateTaskHandler(w, req)

	require.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	require.Empty(t, mockStore.createdTasks)
}

func TestUpdateTaskStatusHandlerMissingStatus(t *testing.T) {
	mockStore := &MockStorage{taskFound: true}
	handler := newTestHandler(t, mockStore, nil)

	req := httptest.NewRequest(http.MethodPut, "/tasks/3/status", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req = testutils.WithChiURLParams(req, map[string]string{"taskId": "3"})
	w := httptest.NewRecorder()

	handler.UpdateTaskStatusHandler(w, req)

	require.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestDeleteTaskHandlerNotFound(t *testing.T) {
	mockStore := &MockStorage{taskFound: false}
	handler := newTestHandler(t, mockStore, nil)

	req := httptest.NewRequest(http.MethodDelete, "/tasks/99", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"taskId": "99"})
	w := httptest.NewRecorder()

	handler.DeleteTaskHandler(w, req)

	require.Equal(t, http.StatusNotFound, w.Result().StatusCode)
	require.Empty(t, mockStore.deletedIDs)
}

func TestSendMessageHandler(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(t, mockStore, nil)

	reqBody := `{"companyName":"Acme","freelancerName":"jane@example.com","projectId":1,"message":"Freelancer Jane added new Task: Wireframes"}`
	req := httptest.NewRequest(http.MethodPost, "/inbox/send-message", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.SendMessageHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), `"success":true`)
	require.Len(t, mockStore.createdMessages, 1)
	require.Equal(t, "Acme", mockStore.createdMessages[0].CompanyName)
}

func TestSendMessageHandlerMissingCompany(t *testing.T) {
	mockStore := &MockStorage{}
	handler := newTestHandler(t, mockStore, nil)

	req := httptest.NewRequest(http.MethodPost, "/inbox/send-message", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.SendMessageHandler(w, req)

	require.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	require.Empty(t, mockStore.createdMessages)
}

func TestGetCompanyMessagesHandler(t *testing.T) {
	mockStore := &MockStorage{inboxMessages: []db.InboxMessage{
		{ID: 2, CompanyName: "Acme", Message: "newest"},
		{ID: 1, CompanyName: "Acme", Message: "oldest"},
	}}
	handler := newTestHandler(t, mockStore, nil)

	req := httptest.NewRequest(http.MethodGet, "/inbox/company-messages?companyName=Acme", nil)
	w := httptest.NewRecorder()

	handler.GetCompanyMessagesHandler(w, req)

	res := w.Result()
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)

	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(body), `"success":true`)
	require.Less(t, strings.Index(string(body), "newest"), strings.Index(string(body), "oldest"))
}

func TestGetCompanyMessagesHandlerMissingCompany(t *testing.T) {
	handler := newTestHandler(t, &MockStorage{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/inbox/company-messages", nil)
	w := httptest.NewRecorder()

	handler.GetCompanyMessagesHandler(w, req)

	require.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestMarkMessageReadHandlerNotFound(t *testing.T) {
	mockStore := &MockStorage{messageFound: false}
	handler := newTestHandler(t, mockStore, nil)

	req := httptest.NewRequest(http.MethodPut, "/inbox/mark-read/7", nil)
	req = testutils.WithChiURLParams(req, map[string]string{"messageId": "7"})
	w := httptest.NewRecorder()

	handler.MarkMessageReadHandler(w, req)

	require.Equal(t, http.StatusNotFound, w.Result().StatusCode)
}
