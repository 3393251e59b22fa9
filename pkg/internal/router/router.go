// Package router binds the HTTP paths to their handlers. It owns no logic;
// handlers live in pkg/internal/handle.
package router
