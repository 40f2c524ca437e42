package http

import "regexp"

var secretParamPattern = regexp.MustCompile(`(key|apiKey|api_key|token|access_token)=([^&"\s]+)`)

// RedactURLSecrets redacts API keys and other secrets from URLs in error
// messages. The Gemini endpoint carries the API key as a ?key= query
// parameter, so a transport error that echoes the request URL would leak
// it into logs without this.
func RedactURLSecrets(text string) string {
	if text == "" {
		return text
	}
	return secretParamPattern.ReplaceAllString(text, "$1=[REDACTED]")
}
