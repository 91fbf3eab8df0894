// Package reply normalizes heterogeneous chat backend responses into a
// single display string.
package reply

import (
	"encoding/json"
	"strings"
)

// Decode parses a raw response body into a generic JSON value. An empty body
// decodes to nil; a body that is not valid JSON is returned as a plain string
// so the raw text can still be used as the reply.
func Decode(body []byte) any {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil
	}

	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err != nil {
		return trimmed
	}
	return v
}

// rule is a single extraction attempt over a decoded value. It returns the
// extracted reply and whether the rule matched.
type rule func(v any) (string, bool)

// rules are evaluated in fixed precedence order; the first match wins.
var rules = []rule{
	rawString,
	objectField("reply"),
	objectField("message"),
	objectField("answer"),
	lastOfMessages,
	firstChoice,
}

// Extract maps a decoded backend response onto a reply string. An empty
// result means no rule matched and is treated upstream as a failure.
func Extract(v any) string {
	if v == nil {
		return ""
	}
	for _, r := range rules {
		if s, ok := r(v); ok {
			return s
		}
	}
	return ""
}

func rawString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// objectField matches a non-empty string field directly on the object.
func objectField(key string) rule {
	return func(v any) (string, bool) {
		obj, ok := v.(map[string]any)
		if !ok {
			return "", false
		}
		if s, ok := obj[key].(string); ok && s != "" {
			return s, true
		}
		return "", false
	}
}

// lastOfMessages takes the trailing element of a non-empty "messages" list
// and reads its text or content field.
func lastOfMessages(v any) (string, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	list, ok := obj["messages"].([]any)
	if !ok || len(list) == 0 {
		return "", false
	}
	last, ok := list[len(list)-1].(map[string]any)
	if !ok {
		return "", false
	}
	// A present list element consumes the match even when both fields are
	// missing; the empty result is handled upstream.
	if s, ok := last["text"].(string); ok && s != "" {
		return s, true
	}
	if s, ok := last["content"].(string); ok && s != "" {
		return s, true
	}
	return "", true
}

// firstChoice reads an OpenAI-style "choices" list: the first element's text
// field, or its message as a string, or the message's content field.
func firstChoice(v any) (string, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	list, ok := obj["choices"].([]any)
	if !ok || len(list) == 0 {
		return "", false
	}
	choice, ok := list[0].(map[string]any)
	if !ok {
		return "", false
	}
	if s, ok := choice["text"].(string); ok {
		return s, true
	}
	switch msg := choice["message"].(type) {
	case string:
		return msg, true
	case map[string]any:
		if s, ok := msg["content"].(string); ok {
			return s, true
		}
	}
	return "", false
}
