package chat

// Role identifies the author of a message.
type Role string

const (
	RoleUser   Role = "user"
	RoleAgent  Role = "agent"
	RoleSystem Role = "system"
)

// Kind identifies the content variant of a message.
type Kind string

const (
	KindText  Kind = "text"
	KindCode  Kind = "code"
	KindFile  Kind = "file"
	KindError Kind = "error"
)

// Message is one turn in a session. Messages are immutable once appended;
// their order inside a session is insertion order and is significant, because
// the context window sent to the inference endpoint depends on it.
type Message struct {
	Role      Role   `json:"role"`
	Content   string `json:"content"`
	Kind      Kind   `json:"kind"`
	Language  string `json:"language,omitempty"`
	FileType  string `json:"fileType,omitempty"`
	SizeBytes int64  `json:"sizeBytes,omitempty"`
}

// NewTextMessage creates a plain text message.
func NewTextMessage(role Role, content string) Message {
	return Message{Role: role, Content: content, Kind: KindText}
}
