package api

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents the Chat Completions API request.
// Temperature is always sent, including zero.
type ChatRequest struct {
	Model       string    `json:"model"`
	Temperature float64   `json:"temperature"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream"`
	N           int       `json:"n"`
}

// CompletionRequest is one system instruction plus one user prompt.
type CompletionRequest struct {
	Instruction string
	Prompt      string
	Temperature float64
}

func (r CompletionRequest) chatRequest(model string) ChatRequest {
	return ChatRequest{
		Model:       model,
		Temperature: r.Temperature,
		Messages: []Message{
			{Role: "system", Content: r.Instruction},
			{Role: "user", Content: r.Prompt},
		},
		Stream: true,
		N:      1,
	}
}
