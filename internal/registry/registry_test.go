package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdmitr/agentchat/internal/chat"
)

func TestNew_Seeds(t *testing.T) {
	r := New()

	assert.Equal(t, []string{"distilbert-base-uncased", "gpt2", "bert-base-cased"}, r.Agents())
	assert.Equal(t, []string{"facebook/bart-large", "google/t5-v1_1-base"}, r.Downloadable())
	assert.Len(t, r.Tasks(), 4)

	agent, task := r.Selected()
	assert.Empty(t, agent)
	assert.Empty(t, task)
}

func TestDownload_MovesModelIntoAgents(t *testing.T) {
	r := New()

	require.NoError(t, r.Download("facebook/bart-large"))
	assert.Contains(t, r.Agents(), "facebook/bart-large")
	assert.NotContains(t, r.Downloadable(), "facebook/bart-large")

	var valErr *chat.ValidationError
	require.True(t, errors.As(r.Download("facebook/bart-large"), &valErr), "already downloaded")
	require.True(t, errors.As(r.Download("no/such-model"), &valErr))
	assert.Equal(t, "model", valErr.Field)
}

func TestSelection(t *testing.T) {
	r := New()

	require.NoError(t, r.SelectAgent("gpt2"))
	require.NoError(t, r.SelectTask("Translation"))
	agent, task := r.Selected()
	assert.Equal(t, "gpt2", agent)
	assert.Equal(t, "Translation", task)

	var valErr *chat.ValidationError
	require.True(t, errors.As(r.SelectAgent("unknown"), &valErr))
	assert.Equal(t, "agent", valErr.Field)
	require.True(t, errors.As(r.SelectTask("Juggling"), &valErr))
	assert.Equal(t, "task", valErr.Field)

	// Downloaded models become selectable.
	require.NoError(t, r.Download("google/t5-v1_1-base"))
	assert.NoError(t, r.SelectAgent("google/t5-v1_1-base"))
}
