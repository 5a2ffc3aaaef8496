package service

import (
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"strings"
)

var fencedBlockPattern = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)\\s*```")

// ExtractJSON pulls a JSON object out of free-form model output. Models
// wrap JSON in markdown fences or prose even when asked for raw JSON, so
// candidates are tried in order of specificity: fenced block, outermost
// brace span, full text. Each candidate gets a strict parse and then a
// control-character-sanitized retry. The first candidate that parses to an
// object wins.
func ExtractJSON(content string) (map[string]interface{}, error) {
	trimmed := strings.TrimSpace(content)

	var candidates []string
	if m := fencedBlockPattern.FindStringSubmatch(trimmed); m != nil {
		if fenced := strings.TrimSpace(m[1]); fenced != "" {
			candidates = append(candidates, fenced)
		}
	}
	if start := strings.Index(trimmed, "{"); start != -1 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			candidates = append(candidates, trimmed[start:end+1])
		}
	}
	candidates = append(candidates, trimmed)

	for _, candidate := range candidates {
		if parsed, ok := parseObject(candidate); ok {
			return parsed, nil
		}
		if parsed, ok := parseObject(sanitizeControlChars(candidate)); ok {
			return parsed, nil
		}
	}

	log.Printf("extract: no parsable JSON in model output, preview: %q", preview(trimmed, 500))
	return nil, &OpenRouterError{
		Code:    ErrCodeInvalidJSON,
		Status:  http.StatusBadGateway,
		Message: "model response is not valid JSON",
	}
}

func parseObject(candidate string) (map[string]interface{}, bool) {
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil || parsed == nil {
		return nil, false
	}
	return parsed, true
}

// sanitizeControlChars replaces raw control characters with spaces. Models
// occasionally emit literal newlines or tabs inside string values, which
// strict JSON rejects.
func sanitizeControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 {
			return ' '
		}
		return r
	}, s)
}

func preview(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
