// Package api sends chat-completion requests and streams the answers.
//
// # Architecture
//
//   - client.go: Client, which builds and sends the streaming request
//   - types.go: request and message types
//   - errors.go: APIError for non-success responses
//
// The response body is handed to the stream package: stream.Decode turns it
// into events and stream.Accumulate assembles the text while forwarding each
// fragment to a sink.
//
// # Usage
//
//	cfg := config.NewConfig()
//	cfg.Prompt = "..."
//	if err := cfg.Validate(); err != nil {
//	    // handle error
//	}
//	client := api.NewClient(cfg, logger)
//	completion, err := client.StreamCompletion(ctx, api.CompletionRequest{
//	    Instruction: constants.ModifyInstruction,
//	    Prompt:      prompt,
//	    Temperature: cfg.Temperature,
//	}, stream.WriterSink{W: os.Stdout})
//
// A completion cut short by a transport failure is returned without an
// error; completion.Partial() reports it.
package api
