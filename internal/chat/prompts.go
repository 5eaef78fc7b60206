package chat

import (
	"fmt"
	"strings"
)

var QA_PROMPT = `You are a helpful assistant. Below is some context retrieved from documents. Please respond to the user's message using the provided context. Format your response as bullet points, and after each statement, reference the original sentence from the context that supports it.

Context:
---------------------
%s
---------------------
Given the context information and not prior knowledge, answer the query.
Query: %s
Answer: `

// BuildPrompt embeds the retrieved context and the user message into the
// question-answering template. An empty context is valid; the model then
// answers without corpus support.
func BuildPrompt(contextStr string, userMessage string) string {
	return fmt.Sprintf(QA_PROMPT, strings.TrimSpace(contextStr), userMessage)
}
