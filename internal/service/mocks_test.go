package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"helpdesk-agent/internal/models"
	"helpdesk-agent/internal/realtime"
	"helpdesk-agent/internal/repository"

	"github.com/google/uuid"
)

var errStore = errors.New("store unavailable")

type mockUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMockUserStore(users ...*models.User) *mockUserStore {
	s := &mockUserStore{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *mockUserStore) Create(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = user
	return nil
}

func (s *mockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (s *mockUserStore) FindByRole(ctx context.Context, role models.Role) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Role == role {
			return u, nil
		}
	}
	return nil, nil
}

type mockConversationStore struct {
	mu    sync.Mutex
	convs map[uuid.UUID]*models.Conversation
}

func newMockConversationStore() *mockConversationStore {
	return &mockConversationStore{convs: make(map[uuid.UUID]*models.Conversation)}
}

func (s *mockConversationStore) Create(ctx context.Context, conv *models.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *conv
	s.convs[conv.ID] = &c
	return nil
}

func (s *mockConversationStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.convs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (s *mockConversationStore) UpdateState(ctx context.Context, conv *models.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.convs[conv.ID]; !ok {
		return repository.ErrNotFound
	}
	c := *conv
	s.convs[conv.ID] = &c
	return nil
}

func (s *mockConversationStore) CloseOpenByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, c := range s.convs {
		if c.UserID == userID && !c.State.IsTerminal() {
			c.State = models.StateResolved
			n++
		}
	}
	return n, nil
}

func (s *mockConversationStore) state(id uuid.UUID) models.ResolutionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.convs[id].State
}

type mockMessageStore struct {
	mu         sync.Mutex
	msgs       []*models.Message
	failCreate bool
}

func (s *mockMessageStore) Create(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate {
		return errStore
	}
	s.msgs = append(s.msgs, msg)
	return nil
}

func (s *mockMessageStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, m := range s.msgs {
		if m.ID == id {
			s.msgs = append(s.msgs[:i], s.msgs[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *mockMessageStore) ListByConversation(ctx context.Context, conversationID uuid.UUID) ([]*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Message
	for _, m := range s.msgs {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *mockMessageStore) ListRecent(ctx context.Context, conversationID uuid.UUID, limit int) ([]*models.Message, error) {
	all, _ := s.ListByConversation(ctx, conversationID)
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (s *mockMessageStore) agentMessages(conversationID uuid.UUID) []*models.Message {
	all, _ := s.ListByConversation(context.Background(), conversationID)
	var out []*models.Message
	for _, m := range all {
		if m.FromAI() {
			out = append(out, m)
		}
	}
	return out
}

type mockKnowledgeStore struct {
	mu         sync.Mutex
	entries    []*models.KnowledgeEntry
	searches   int
	failSearch bool
	failCreate bool
}

func (s *mockKnowledgeStore) Create(ctx context.Context, entry *models.KnowledgeEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failCreate {
		return errStore
	}
	s.entries = append(s.entries, entry)
	return nil
}

// SearchByKeywords mirrors the ILIKE filter of the postgres repository.
func (s *mockKnowledgeStore) SearchByKeywords(ctx context.Context, keywords []string, limit int) ([]*models.KnowledgeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches++
	if s.failSearch {
		return nil, errStore
	}
	var out []*models.KnowledgeEntry
	for _, e := range s.entries {
		problem := strings.ToLower(e.Problem)
		for _, k := range keywords {
			if strings.Contains(problem, k) {
				out = append(out, e)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *mockKnowledgeStore) List(ctx context.Context, limit, offset int) ([]*models.KnowledgeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries, nil
}

func (s *mockKnowledgeStore) GetByID(ctx context.Context, id uuid.UUID) (*models.KnowledgeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *mockKnowledgeStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *mockKnowledgeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

type mockIncidentStore struct {
	mu        sync.Mutex
	incidents map[uuid.UUID]*models.Incident
	details   []*models.IncidentDetail
}

func newMockIncidentStore() *mockIncidentStore {
	return &mockIncidentStore{incidents: make(map[uuid.UUID]*models.Incident)}
}

func (s *mockIncidentStore) Create(ctx context.Context, inc *models.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *inc
	s.incidents[inc.ID] = &c
	return nil
}

func (s *mockIncidentStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inc, ok := s.incidents[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *inc
	return &c, nil
}

func (s *mockIncidentStore) GetByConversationID(ctx context.Context, conversationID uuid.UUID) (*models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inc := range s.incidents {
		if inc.ConversationID != nil && *inc.ConversationID == conversationID {
			c := *inc
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *mockIncidentStore) Update(ctx context.Context, inc *models.Incident) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.incidents[inc.ID]; !ok {
		return repository.ErrNotFound
	}
	c := *inc
	s.incidents[inc.ID] = &c
	return nil
}

func (s *mockIncidentStore) List(ctx context.Context, filter repository.IncidentFilter) ([]*models.Incident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Incident
	for _, inc := range s.incidents {
		if filter.Status == nil || inc.Status == *filter.Status {
			out = append(out, inc)
		}
	}
	return out, nil
}

func (s *mockIncidentStore) CreateDetail(ctx context.Context, detail *models.IncidentDetail) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.details = append(s.details, detail)
	return nil
}

func (s *mockIncidentStore) ListDetails(ctx context.Context, incidentID uuid.UUID) ([]*models.IncidentDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.IncidentDetail
	for _, d := range s.details {
		if d.IncidentID == incidentID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *mockIncidentStore) forConversation(conversationID uuid.UUID) []*models.Incident {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Incident
	for _, inc := range s.incidents {
		if inc.ConversationID != nil && *inc.ConversationID == conversationID {
			out = append(out, inc)
		}
	}
	return out
}

type mockResolver struct {
	mu       sync.Mutex
	answer   string
	err      error
	problems []string
	details  []map[string]string
}

func (r *mockResolver) Name() string { return "deepseek" }

func (r *mockResolver) Resolve(ctx context.Context, problem string, details map[string]string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.problems = append(r.problems, problem)
	r.details = append(r.details, details)
	if r.err != nil {
		return "", r.err
	}
	return r.answer, nil
}

func (r *mockResolver) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.problems)
}

type mockQueue struct {
	mu    sync.Mutex
	tasks []ResolutionTask
	err   error
}

func (q *mockQueue) Enqueue(task ResolutionTask) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.tasks = append(q.tasks, task)
	return nil
}

type mockPublisher struct {
	mu     sync.Mutex
	events []*realtime.MessageEvent
}

func (p *mockPublisher) Publish(ctx context.Context, conversationID uuid.UUID, event *realtime.MessageEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *mockPublisher) last() *realtime.MessageEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		return nil
	}
	return p.events[len(p.events)-1]
}
