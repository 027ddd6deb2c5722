package export

import (
	"encoding/json"
	"io"

	"github.com/rdmitr/agentchat/internal/chat"
)

// JSONExporter exports a session as indented JSON
type JSONExporter struct{}

// Export exports a session to JSON format
func (e *JSONExporter) Export(sess *chat.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sess)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
