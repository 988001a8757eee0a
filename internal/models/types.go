package models

// Conversation roles as they appear in exported chat transcripts.
const (
	RoleUser = "User"
	RoleAI   = "AI/Chatbot"
)

// ConversationTurn is a single message in an exported conversation.
type ConversationTurn struct {
	Turn           int    `json:"turn"`
	SenderID       int    `json:"sender_id"`
	Role           string `json:"role"`
	Message        string `json:"message"`
	CreatedAt      string `json:"created_at"`
	EvaluationNote string `json:"evaluation_note,omitempty"`
}

type Conversation struct {
	ChatID            int                `json:"chat_id"`
	UserID            int                `json:"user_id"`
	ConversationTurns []ConversationTurn `json:"conversation_turns"`
}

// VectorData is a retrieved knowledge-base passage supplied as ground truth.
type VectorData struct {
	ID         int    `json:"id"`
	Text       string `json:"text"`
	SourceURL  string `json:"source_url,omitempty"`
	Tokens     int    `json:"tokens,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
	SourceType int    `json:"source_type,omitempty"`
}

// VectorInfo carries the retrieval score for one vector.
type VectorInfo struct {
	Score       float64 `json:"score"`
	VectorID    int     `json:"vector_id"`
	TokensCount int     `json:"tokens_count"`
}

type VectorSources struct {
	MessageID     int          `json:"message_id,omitempty"`
	VectorIDs     []int        `json:"vector_ids,omitempty"`
	VectorsInfo   []VectorInfo `json:"vectors_info,omitempty"`
	VectorsUsed   []int        `json:"vectors_used,omitempty"`
	FinalResponse []string     `json:"final_response,omitempty"`
}

type ContextVectorsData struct {
	VectorData []VectorData  `json:"vector_data"`
	Sources    VectorSources `json:"sources"`
}

type ContextVectorsResponse struct {
	Status     string             `json:"status"`
	StatusCode int                `json:"status_code"`
	Message    string             `json:"message"`
	Data       ContextVectorsData `json:"data"`
}

// TurnRecord pairs an AI response with the user query that preceded it.
type TurnRecord struct {
	TurnID         int    `json:"turn_id"`
	UserQuery      string `json:"user_query"`
	AIResponse     string `json:"ai_response"`
	Timestamp      string `json:"timestamp,omitempty"`
	EvaluationNote string `json:"evaluation_note,omitempty"`
}

// ClaimCategory classifies an unsupported claim.
type ClaimCategory string

const (
	CategoryFabricated    ClaimCategory = "fabricated"
	CategoryMisattributed ClaimCategory = "misattributed"
	CategoryDistorted     ClaimCategory = "distorted"
	CategoryUnsupported   ClaimCategory = "unsupported"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

type HallucinatedClaim struct {
	Claim       string        `json:"claim"`
	Category    ClaimCategory `json:"category"`
	Explanation string        `json:"explanation"`
	Severity    Severity      `json:"severity"`
	Start       int           `json:"start,omitempty"`
	End         int           `json:"end,omitempty"`
	Confidence  float64       `json:"confidence,omitempty"`
}

type VerifiedClaim struct {
	Claim         string `json:"claim"`
	SourceSnippet string `json:"source_snippet"`
}

// RelevanceResult is the combined relevance & completeness judgment. Score is
// the rounded mean of the two judge sub-scores, on a 1-5 scale.
type RelevanceResult struct {
	Score                   int      `json:"score"`
	IsRelevant              bool     `json:"is_relevant"`
	IsComplete              bool     `json:"is_complete"`
	RelevanceExplanation    string   `json:"relevance_explanation"`
	CompletenessExplanation string   `json:"completeness_explanation"`
	MissingAspects          []string `json:"missing_aspects,omitempty"`
}

// HallucinationResult holds the factual-accuracy judgment. The aggregate
// Score and FactualAccuracy are reported by the strategy that produced the
// result, not recomputed from the claim list.
type HallucinationResult struct {
	Score              int                 `json:"score"`
	HasHallucination   bool                `json:"has_hallucination"`
	FactualAccuracy    float64             `json:"factual_accuracy"`
	HallucinatedClaims []HallucinatedClaim `json:"hallucinated_claims,omitempty"`
	VerifiedClaims     []VerifiedClaim     `json:"verified_claims,omitempty"`
	Explanation        string              `json:"explanation"`
}

// ROUGEResult holds n-gram overlap scores on a 0-1 scale. Sub-metric fields
// are nil when that sub-metric was not computed.
type ROUGEResult struct {
	Rouge1          *float64 `json:"rouge_1,omitempty"`
	Rouge2          *float64 `json:"rouge_2,omitempty"`
	RougeL          *float64 `json:"rouge_l,omitempty"`
	Rouge1Precision *float64 `json:"rouge_1_precision,omitempty"`
	Rouge1Recall    *float64 `json:"rouge_1_recall,omitempty"`
	Rouge2Precision *float64 `json:"rouge_2_precision,omitempty"`
	Rouge2Recall    *float64 `json:"rouge_2_recall,omitempty"`
	RougeLPrecision *float64 `json:"rouge_l_precision,omitempty"`
	RougeLRecall    *float64 `json:"rouge_l_recall,omitempty"`
	AverageScore    float64  `json:"average_score"`
	Explanation     string   `json:"explanation"`
}

// EvaluationResult is the orchestrator's output for one conversation turn.
// Metric fields are present iff the metric was enabled. OverallScore is
// always on a 0-5 scale and is 0.0 when no metric ran.
type EvaluationResult struct {
	TurnID            int                  `json:"turn_id"`
	UserQuery         string               `json:"user_query"`
	AIResponse        string               `json:"ai_response"`
	Relevance         *RelevanceResult     `json:"relevance,omitempty"`
	Hallucination     *HallucinationResult `json:"hallucination,omitempty"`
	Rouge             *ROUGEResult         `json:"rouge,omitempty"`
	OverallScore      float64              `json:"overall_score"`
	EvaluationSummary string               `json:"evaluation_summary"`
	ContextUsed       []string             `json:"context_used,omitempty"`
	EvaluationNote    string               `json:"evaluation_note,omitempty"`
}
