// Package generation obtains blueprint strategy text from an external
// text-generation service.
//
// The contract is small: an idea title goes in, markdown text comes out, or
// the call fails with an *Error carrying a user-facing message and a Kind.
// Nothing in this package parses the returned text.
//
// Key Components:
//   - Generator: the collaborator interface consumed by views
//   - GeminiClient: Gemini REST client (resty over a retryablehttp transport,
//     circuit breaker, optional rate pacing)
//   - CachedGenerator: read-through cache over any Store (Redis or memory)
//   - BuildPrompt: the five-section blueprint prompt
//
// Failure kinds:
//   - credentials: no API key configured, or the key was rejected
//   - transport: network error, timeout or upstream error status
//   - empty: the service answered without any text
//   - unavailable: circuit breaker open or pacing refused the call
//
// Example:
//
//	client := generation.NewGeminiClient(generation.Config{APIKey: key}, logger)
//	text, err := client.Generate(ctx, "Drone Security Service")
//	if err != nil {
//		fmt.Println(generation.UserMessage(err))
//	}
package generation
