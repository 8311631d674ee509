package suggest

import (
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIClient(t *testing.T) {
	t.Run("NilClient", func(t *testing.T) {
		client, err := NewOpenAIClient(nil, "gpt-4o", "")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrClientNil)
		assert.Nil(t, client)
	})

	t.Run("DefaultsApplied", func(t *testing.T) {
		sdk := openai.NewClient("test-key")
		client, err := NewOpenAIClient(sdk, "", "")
		require.NoError(t, err)
		assert.Equal(t, openai.GPT4o, client.modelName, "empty model name defaults to gpt-4o")
		assert.Equal(t, DefaultMetaprompt, client.metaprompt, "empty metaprompt defaults to the built-in one")
	})

	t.Run("WhitespaceMetapromptTreatedAsEmpty", func(t *testing.T) {
		sdk := openai.NewClient("test-key")
		client, err := NewOpenAIClient(sdk, "gpt-4", "  \n ")
		require.NoError(t, err)
		assert.Equal(t, DefaultMetaprompt, client.metaprompt)
	})

	t.Run("ExplicitValuesKept", func(t *testing.T) {
		sdk := openai.NewClient("test-key")
		client, err := NewOpenAIClient(sdk, "gpt-4", "You are terse.")
		require.NoError(t, err)
		assert.Equal(t, "gpt-4", client.modelName)
		assert.Equal(t, "You are terse.", client.metaprompt)
	})
}

func TestConstructPrompt(t *testing.T) {
	t.Run("WithValue", func(t *testing.T) {
		got := ConstructPrompt("role", "a data scientist")
		assert.Contains(t, got, "Component: role")
		assert.Contains(t, got, "Current Value: a data scientist")
		assert.Contains(t, got, "Provide a brief suggestion")
	})

	t.Run("EmptyValue", func(t *testing.T) {
		got := ConstructPrompt("task", "")
		assert.Contains(t, got, "Current Value: Not provided yet")
	})

	t.Run("WhitespaceValue", func(t *testing.T) {
		got := ConstructPrompt("task", "   ")
		assert.Contains(t, got, "Current Value: Not provided yet")
	})
}
