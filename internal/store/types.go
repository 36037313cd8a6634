package store

import "time"

// #region role
// Role is who wrote a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// #endregion

// #region records
// Message is one turn in a conversation.
type Message struct {
	Role      Role              `json:"role"`
	Content   string            `json:"content"`
	Timestamp time.Time         `json:"timestamp"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// SessionInfo is the listing view of a session.
type SessionInfo struct {
	SessionID    string    `json:"session_id"`
	CreatedAt    time.Time `json:"created_at"`
	LastUpdated  time.Time `json:"last_updated"`
	MessageCount int       `json:"message_count"`
	Summary      string    `json:"summary"`
}

// Conversation is the export view of a session.
type Conversation struct {
	SessionID   string    `json:"session_id"`
	Messages    []Message `json:"messages"`
	CreatedAt   time.Time `json:"created_at"`
	LastUpdated time.Time `json:"last_updated"`
	Summary     string    `json:"summary,omitempty"`
}

// Stats summarises stored memory.
type Stats struct {
	TotalConversations int   `json:"total_conversations"`
	TotalMessages      int   `json:"total_messages"`
	SizeBytes          int64 `json:"size_bytes"`
}

// #endregion
