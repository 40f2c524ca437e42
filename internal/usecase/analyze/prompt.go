package analyze

import "fmt"

// TruncationMarker is appended whenever document text is cut for length.
// It is never counted toward the character limit.
const TruncationMarker = "\n\n[Document truncated...]"

// DefaultMaxChars bounds the document text included in a prompt,
// roughly 12,500 tokens.
const DefaultMaxChars = 50000

const promptTemplate = `Analyze the following document and extract:

1. DOCUMENT TYPE: What kind of document is this?

2. SUMMARY: A brief 2-3 sentence summary

3. KEY POINTS: Main topics (bullet points)

4. ACTION ITEMS: Any tasks or actions (with owners if specified)

5. IMPORTANT DATES: Any dates or deadlines

6. RISKS/CONCERNS: Any issues or problems

7. NUMBERS/METRICS: Important statistics or data

Format your response clearly with these headers.

DOCUMENT CONTENT:
%s`

// Truncate caps text at max characters, appending TruncationMarker when a
// cut was made. Text already within bounds passes through unchanged, so
// the operation is idempotent. A non-positive max uses DefaultMaxChars.
func Truncate(text string, max int) (string, bool) {
	if max <= 0 {
		max = DefaultMaxChars
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text, false
	}
	return string(runes[:max]) + TruncationMarker, true
}

// BuildPrompt wraps (possibly truncated) document text in the fixed
// seven-section instruction template.
func BuildPrompt(documentText string) string {
	return fmt.Sprintf(promptTemplate, documentText)
}
