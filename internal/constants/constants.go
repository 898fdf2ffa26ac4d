// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

// Application defaults
const (
	AppName            = "codemancer"
	DefaultModel       = "gpt-4"
	DefaultTemperature = 0.0
	DefaultVerbosity   = 2
	MaxTemperature     = 2.0
	MaxVerbosity       = 3
)

// Endpoints. The proxy is used when no OpenAI API key is configured.
const (
	OpenAIChatURL = "https://api.openai.com/v1/chat/completions"
	ProxyChatURL  = "https://api.codemancer.codes/v1/chat/completions"
)

// ShellLanguage is the fence tag that turns a code block into a command.
const ShellLanguage = "bash"

// ModifyInstruction is the system prompt for the main completion.
const ModifyInstruction = `You are a sophisticated, accurate, and modern AI programming assistant. Whenever you are prompted with a file to modify, you always return the complete code in a fenced code block ready to run without any placeholders and including the unchanged code.`

// IdentifyPlaceholdersInstruction is the system prompt for the placeholder check.
const IdentifyPlaceholdersInstruction = `Below is the code output by an AI programming assistant. This code may contain one or multiple placeholders that the AI creates to be filled in by the user. Please identify and list all the placeholders in this code. Examples: "Rest of the code remains the same..." OR "YOUR CODE HERE" OR "Existing function code ..."`
