package registry

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/rdmitr/agentchat/internal/chat"
)

// Registry keeps the downloaded agents, the catalogue of downloadable models
// and the supported tasks, plus the current selection. In-memory only; the
// session store never persists any of this.
type Registry struct {
	mu           sync.Mutex
	agents       []string
	downloadable []string
	tasks        []string

	selectedAgent string
	selectedTask  string
}

// New creates a Registry seeded with the default agents, models and tasks.
func New() *Registry {
	return &Registry{
		agents: []string{
			"distilbert-base-uncased",
			"gpt2",
			"bert-base-cased",
		},
		downloadable: []string{
			"facebook/bart-large",
			"google/t5-v1_1-base",
		},
		tasks: []string{
			"Summarization",
			"Question Answering",
			"Text Classification",
			"Translation",
		},
	}
}

// Agents returns the downloaded agents.
func (r *Registry) Agents() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.agents)
}

// Downloadable returns the models available for download.
func (r *Registry) Downloadable() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.downloadable)
}

// Tasks returns the supported tasks.
func (r *Registry) Tasks() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.tasks)
}

// Download moves a model from the downloadable catalogue into the agents
// list.
func (r *Registry) Download(model string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := slices.Index(r.downloadable, model)
	if idx < 0 {
		return &chat.ValidationError{Field: "model", Reason: fmt.Sprintf("unknown model %q", model)}
	}
	r.downloadable = slices.Delete(r.downloadable, idx, idx+1)
	r.agents = append(r.agents, model)
	slog.Debug("downloaded model", slog.String("model", model))
	return nil
}

// SelectAgent marks an agent as the one dispatches use.
func (r *Registry) SelectAgent(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.agents, name) {
		return &chat.ValidationError{Field: "agent", Reason: fmt.Sprintf("unknown agent %q", name)}
	}
	r.selectedAgent = name
	return nil
}

// SelectTask marks a task as the one dispatches use.
func (r *Registry) SelectTask(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.tasks, name) {
		return &chat.ValidationError{Field: "task", Reason: fmt.Sprintf("unknown task %q", name)}
	}
	r.selectedTask = name
	return nil
}

// Selected returns the current agent and task selection; either may be empty.
func (r *Registry) Selected() (agent, task string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selectedAgent, r.selectedTask
}
