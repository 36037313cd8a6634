package classifier

// #region query-type
// QueryType is the intent bucket assigned to a query.
type QueryType string

const (
	TypeSalary           QueryType = "salary_inquiry"
	TypeAllowance        QueryType = "allowance_inquiry"
	TypePolicy           QueryType = "policy_inquiry"
	TypeLeave            QueryType = "leave_inquiry"
	TypeHRInquiry        QueryType = "hr_inquiry"
	TypeHRContact        QueryType = "hr_contact"
	TypeGeneral          QueryType = "general_inquiry"
	TypePersonalIdentity QueryType = "personal_identity"
	TypePersonalGreeting QueryType = "personal_greeting"
)

// #endregion

// #region query-analysis
// QueryAnalysis is derived once per request and never modified afterwards.
type QueryAnalysis struct {
	OriginalQuery     string            `json:"original_query"`
	QueryType         QueryType         `json:"query_type"`
	ExtractedInfo     map[string]string `json:"extracted_info"`
	MissingInfo       []string          `json:"missing_info"`
	ConfidenceScore   float64           `json:"confidence_score"` // diagnostic only, [0,1]
	IsComplete        bool              `json:"is_complete"`
	SuggestedFollowup string            `json:"suggested_followup"`
}

// #endregion
