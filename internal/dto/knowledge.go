package dto

type KnowledgeEntryResponse struct {
	ID         string   `json:"id"`
	IncidentID *string  `json:"incident_id,omitempty"`
	Problem    string   `json:"problem"`
	Solution   string   `json:"solution"`
	Transcript []string `json:"transcript,omitempty"`
	ResolvedBy string   `json:"resolved_by"`
	CreatedAt  string   `json:"created_at"`
}
