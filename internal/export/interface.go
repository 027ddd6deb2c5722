package export

import (
	"fmt"
	"io"

	"github.com/rdmitr/agentchat/internal/chat"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(sess *chat.Session, w io.Writer) error
	Extension() string
}

// New creates a new exporter based on format
func New(format string) (Exporter, error) {
	switch format {
	case "json":
		return &JSONExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, yaml, md)", format)
	}
}
