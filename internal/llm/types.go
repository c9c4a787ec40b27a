package llm

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// ContentResponse is the payload and usage metadata of one generation call.
type ContentResponse struct {
	Content string
	Usage   TokenUsage
}
