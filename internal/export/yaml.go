package export

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rdmitr/agentchat/internal/chat"
)

// YAMLExporter exports a session in YAML format
type YAMLExporter struct{}

type yamlTranscript struct {
	ID        int64         `yaml:"id"`
	Title     string        `yaml:"title"`
	CreatedAt string        `yaml:"createdAt"`
	Messages  []yamlMessage `yaml:"messages"`
}

type yamlMessage struct {
	Role      string `yaml:"role"`
	Kind      string `yaml:"kind"`
	Content   string `yaml:"content"`
	Language  string `yaml:"language,omitempty"`
	FileType  string `yaml:"fileType,omitempty"`
	SizeBytes int64  `yaml:"sizeBytes,omitempty"`
}

// Export exports a session to YAML format
func (e *YAMLExporter) Export(sess *chat.Session, w io.Writer) error {
	doc := yamlTranscript{
		ID:        sess.ID,
		Title:     sess.Title,
		CreatedAt: sess.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	for _, msg := range sess.Messages {
		doc.Messages = append(doc.Messages, yamlMessage{
			Role:      string(msg.Role),
			Kind:      string(msg.Kind),
			Content:   msg.Content,
			Language:  msg.Language,
			FileType:  msg.FileType,
			SizeBytes: msg.SizeBytes,
		})
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(doc)
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
