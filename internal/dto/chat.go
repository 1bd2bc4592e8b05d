package dto

type SessionResponse struct {
	ID        string `json:"id"`
	State     string `json:"state"`
	CreatedAt string `json:"created_at"`
	Message   string `json:"message"`
}

type SendMessageRequest struct {
	Message string `json:"message" validate:"required,notblank,max=1000"`
}

type SenderResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	IsAI bool   `json:"is_ai"`
}

type MessageResponse struct {
	ID             string         `json:"id"`
	ConversationID string         `json:"conversation_id"`
	Body           string         `json:"body"`
	SentAt         string         `json:"sent_at"`
	Sender         SenderResponse `json:"sender"`
}

type MessagesResponse struct {
	ConversationID string            `json:"conversation_id"`
	State          string            `json:"state"`
	Messages       []MessageResponse `json:"messages"`
}

// FeedbackRequest answers the last proposed solution. Resolved is a pointer
// so that an explicit false is told apart from a missing field.
type FeedbackRequest struct {
	Resolved     *bool  `json:"resolved" validate:"required"`
	SolutionType string `json:"solution_type" validate:"required,oneof=knowledge_base ai"`
	Comment      string `json:"comment" validate:"max=500"`
}

type FeedbackResponse struct {
	State    string `json:"state"`
	Finished bool   `json:"finished"`
	Message  string `json:"message"`
}
