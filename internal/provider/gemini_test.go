package provider

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstTextReturnsContent(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("bonjour")}}},
		},
	}

	out, err := firstText(resp)

	require.NoError(t, err)
	assert.Equal(t, "bonjour", out)
}

func TestFirstTextSafetyBlockedCandidate(t *testing.T) {
	// A safety-blocked candidate carries no Content at all.
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: nil}},
	}

	_, err := firstText(resp)

	assert.Error(t, err)
}

func TestFirstTextNoCandidates(t *testing.T) {
	_, err := firstText(&genai.GenerateContentResponse{})

	assert.Error(t, err)
}
