// Package memory keeps the previous exchange so it can seed the next request.
//
// Only the user's line and the agent's final answer are kept. Tool calls and
// results are transient and never persisted.
package memory
