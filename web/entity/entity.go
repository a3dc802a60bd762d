// Package entity defines data structures shared by the web layer.
package entity

// Msg is the standard JSON response envelope for AJAX requests.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}
