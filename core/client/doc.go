// Package client sits between a raw model backend and the hits finder. It
// fills in request defaults (model, system prompt) and threads every call
// through a configurable middleware chain (retry, timeout, logging).
//
// The primary entry point is [New], which accepts an [ai.Provider] and a set
// of functional options such as [WithMiddleware] and [WithDefaultModel].
package client
