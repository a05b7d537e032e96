// Package runner drives the bounded tool-calling loop for one user request.
//
// Invariants:
//   - tool calls in a response run synchronously, in the order returned
//   - every tool result is appended before the next model call
//   - the step ceiling is a hard stop that still yields an Outcome
//
// Flow:
//
//	user(text) -> model(tool calls) -> tool(results) -> ... -> model(text)
package runner
