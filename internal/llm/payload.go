package llm

import "strings"

// ExtractJSONPayload strips markdown code-fence markup from a model
// completion so the remainder can be parsed as JSON. Models routinely
// wrap structured output in ``` or ```json fences despite being asked
// not to.
func ExtractJSONPayload(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Drop an optional language tag on the opening fence
		if idx := strings.IndexByte(text, '\n'); idx >= 0 {
			firstLine := strings.TrimSpace(text[:idx])
			if firstLine == "json" || firstLine == "" {
				text = text[idx+1:]
			}
		} else {
			text = strings.TrimPrefix(text, "json")
		}
		// Drop the closing fence, if any
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasSuffix(text, "```") {
		text = strings.TrimSuffix(text, "```")
	}

	return strings.TrimSpace(text)
}
