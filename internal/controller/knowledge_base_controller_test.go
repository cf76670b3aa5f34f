package controller

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"ai-recruiter-be/internal/dto"
	"ai-recruiter-be/internal/pkg/serverutils"
	"ai-recruiter-be/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIndexingService struct {
	taskID  uuid.UUID
	err     error
	gotUser uuid.UUID
	gotID   uuid.UUID
}

func (f *fakeIndexingService) Enqueue(_ context.Context, userID, documentID uuid.UUID) (*dto.IndexDocumentResponse, error) {
	f.gotUser, f.gotID = userID, documentID
	if f.err != nil {
		return nil, f.err
	}
	return &dto.IndexDocumentResponse{TaskID: f.taskID}, nil
}

func (f *fakeIndexingService) GetTask(_ context.Context, userID, taskID uuid.UUID) (*dto.TaskStatusResponse, error) {
	f.gotUser, f.gotID = userID, taskID
	if f.err != nil {
		return nil, f.err
	}
	return &dto.TaskStatusResponse{ID: taskID, Status: "processing"}, nil
}

func newKnowledgeBaseApp(svc *fakeIndexingService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewKnowledgeBaseController(svc).RegisterRoutes(app.Group("/api"), serverutils.NewJwtMiddleware(testSecret))
	return app
}

func TestIndexDocumentQueuesTask(t *testing.T) {
	svc := &fakeIndexingService{taskID: uuid.New()}
	app := newKnowledgeBaseApp(svc)
	user, doc := uuid.New(), uuid.New()

	req := httptest.NewRequest("POST", "/api/knowledge-bases/documents/"+doc.String()+"/index", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, user))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var res serverutils.BaseResponse[dto.IndexDocumentResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, svc.taskID, res.Data.TaskID)
	assert.Equal(t, user, svc.gotUser)
	assert.Equal(t, doc, svc.gotID)
}

func TestIndexDocumentErrors(t *testing.T) {
	user := uuid.New()

	tests := []struct {
		name string
		path string
		err  error
		want int
	}{
		{"invalid id", "/api/knowledge-bases/documents/nope/index", nil, 400},
		{"not ready", "/api/knowledge-bases/documents/" + uuid.NewString() + "/index", apperror.BadRequest("not ready"), 400},
		{"not owned", "/api/knowledge-bases/documents/" + uuid.NewString() + "/index", apperror.NotFound("Document not found"), 404},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newKnowledgeBaseApp(&fakeIndexingService{err: tt.err})
			req := httptest.NewRequest("POST", tt.path, nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, user))

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestGetTask(t *testing.T) {
	svc := &fakeIndexingService{}
	app := newKnowledgeBaseApp(svc)
	user, task := uuid.New(), uuid.New()

	req := httptest.NewRequest("GET", "/api/tasks/"+task.String(), nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, user))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var res serverutils.BaseResponse[dto.TaskStatusResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, task, res.Data.ID)
	assert.Equal(t, "processing", res.Data.Status)
}
