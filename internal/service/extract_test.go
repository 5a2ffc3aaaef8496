package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON_PlainObject(t *testing.T) {
	parsed, err := ExtractJSON(`{"title": "Tomato Soup"}`)
	require.NoError(t, err)
	assert.Equal(t, "Tomato Soup", parsed["title"])
}

func TestExtractJSON_FencedBlock(t *testing.T) {
	content := "Here is your recipe:\n```json\n{\"title\": \"Pancakes\"}\n```\nEnjoy!"
	parsed, err := ExtractJSON(content)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", parsed["title"])
}

func TestExtractJSON_FencedBlockWithoutLanguage(t *testing.T) {
	content := "```\n{\"title\": \"Omelette\"}\n```"
	parsed, err := ExtractJSON(content)
	require.NoError(t, err)
	assert.Equal(t, "Omelette", parsed["title"])
}

func TestExtractJSON_FencedBlockWinsOverSurroundingBraces(t *testing.T) {
	// The prose before the fence contains its own braces. The fenced
	// candidate must win over the outermost brace span.
	content := "ignore {\"title\": \"wrong\"} this\n```json\n{\"title\": \"right\"}\n```"
	parsed, err := ExtractJSON(content)
	require.NoError(t, err)
	assert.Equal(t, "right", parsed["title"])
}

func TestExtractJSON_BraceSpanInsideProse(t *testing.T) {
	content := `Sure! Here it is: {"title": "Risotto", "calories": 420} — hope you like it.`
	parsed, err := ExtractJSON(content)
	require.NoError(t, err)
	assert.Equal(t, "Risotto", parsed["title"])
}

func TestExtractJSON_SanitizesControlCharacters(t *testing.T) {
	// A literal newline inside a string value is invalid JSON until
	// sanitized.
	content := "{\"title\": \"Two\nLines\"}"
	parsed, err := ExtractJSON(content)
	require.NoError(t, err)
	assert.Equal(t, "Two Lines", parsed["title"])
}

func TestExtractJSON_NoJSONAnywhere(t *testing.T) {
	_, err := ExtractJSON("I am sorry, I cannot help with that.")
	require.Error(t, err)

	var orErr *OpenRouterError
	require.True(t, errors.As(err, &orErr))
	assert.Equal(t, ErrCodeInvalidJSON, orErr.Code)
}

func TestExtractJSON_TopLevelArrayRejected(t *testing.T) {
	_, err := ExtractJSON(`["not", "an", "object"]`)
	require.Error(t, err)
}
