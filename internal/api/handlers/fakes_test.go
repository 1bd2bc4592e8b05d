package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"helpdesk-agent/internal/dto"
	"helpdesk-agent/internal/models"
	"helpdesk-agent/internal/realtime"
	"helpdesk-agent/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	conv *models.Conversation
	err  error
}

func (f *fakeSessions) StartSession(ctx context.Context, userID uuid.UUID) (*models.Conversation, error) {
	return f.conv, f.err
}

func (f *fakeSessions) Authorize(ctx context.Context, conversationID, userID uuid.UUID) (*models.Conversation, error) {
	return f.conv, f.err
}

type fakeChat struct {
	msg  *models.Message
	conv *models.Conversation
	msgs []*models.Message
	err  error
	body string
}

func (f *fakeChat) SendMessage(ctx context.Context, userID, conversationID uuid.UUID, body string) (*models.Message, error) {
	f.body = body
	return f.msg, f.err
}

func (f *fakeChat) ListMessages(ctx context.Context, userID, conversationID uuid.UUID) (*models.Conversation, []*models.Message, error) {
	return f.conv, f.msgs, f.err
}

type fakeFeedback struct {
	resp *dto.FeedbackResponse
	err  error
	req  *dto.FeedbackRequest
}

func (f *fakeFeedback) Submit(ctx context.Context, userID, conversationID uuid.UUID, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	f.req = req
	return f.resp, f.err
}

type fakeSubscriber struct {
	events    []*realtime.MessageEvent
	cancelled chan struct{}
}

func (f *fakeSubscriber) Subscribe(ctx context.Context, conversationID uuid.UUID) (<-chan *realtime.MessageEvent, func(), error) {
	ch := make(chan *realtime.MessageEvent, len(f.events))
	for _, e := range f.events {
		ch <- e
	}
	close(ch)
	f.cancelled = make(chan struct{})
	return ch, func() { close(f.cancelled) }, nil
}

type fakeIncidents struct {
	inc     *models.Incident
	detail  *models.IncidentDetail
	list    []*models.Incident
	details []*models.IncidentDetail
	err     error
	filter  repository.IncidentFilter
	status  models.IncidentStatus
}

func (f *fakeIncidents) Create(ctx context.Context, reporterID uuid.UUID, req *dto.CreateIncidentRequest) (*models.Incident, error) {
	return f.inc, f.err
}

func (f *fakeIncidents) Get(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	return f.inc, f.err
}

func (f *fakeIncidents) List(ctx context.Context, filter repository.IncidentFilter) ([]*models.Incident, error) {
	f.filter = filter
	return f.list, f.err
}

func (f *fakeIncidents) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateIncidentRequest) (*models.Incident, error) {
	return f.inc, f.err
}

func (f *fakeIncidents) ChangeStatus(ctx context.Context, id, actorID uuid.UUID, status models.IncidentStatus) (*models.Incident, error) {
	f.status = status
	return f.inc, f.err
}

func (f *fakeIncidents) Attend(ctx context.Context, id, technicianID uuid.UUID, req *dto.AttendIncidentRequest) (*models.IncidentDetail, error) {
	return f.detail, f.err
}

func (f *fakeIncidents) History(ctx context.Context, id uuid.UUID) ([]*models.IncidentDetail, error) {
	return f.details, f.err
}

type fakeKnowledge struct {
	entries []*models.KnowledgeEntry
	err     error
	query   string
}

func (f *fakeKnowledge) Search(ctx context.Context, query string) ([]*models.KnowledgeEntry, error) {
	f.query = query
	return f.entries, f.err
}

func (f *fakeKnowledge) List(ctx context.Context, limit, offset int) ([]*models.KnowledgeEntry, error) {
	return f.entries, f.err
}

func (f *fakeKnowledge) Get(ctx context.Context, id uuid.UUID) (*models.KnowledgeEntry, error) {
	if len(f.entries) == 0 {
		return nil, f.err
	}
	return f.entries[0], f.err
}

func (f *fakeKnowledge) Delete(ctx context.Context, id uuid.UUID) error {
	return f.err
}

// newAuthedApp returns an app whose requests look authenticated as userID.
func newAuthedApp(userID uuid.UUID) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID.String())
		c.Locals("username", "ana")
		return c.Next()
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, int((5 * time.Second).Milliseconds()))
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	decoded := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}
