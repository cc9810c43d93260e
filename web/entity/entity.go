// Package entity defines the JSON bodies written by the todo API.
package entity

import "github.com/todoapp/todo-api/database/model"

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Msg is the common response envelope. Error carries the underlying cause
// of a 400 response.
type Msg struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ErrorMsg is written when a request is rejected before reaching a handler.
type ErrorMsg struct {
	Error string `json:"error"`
}

type TokenMsg struct {
	Token string `json:"token"`
}

type TodoList struct {
	Todos []model.Todo `json:"todos"`
}

type CategoryList struct {
	Categories []model.Category `json:"categories"`
}
