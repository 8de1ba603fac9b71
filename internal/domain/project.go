package domain

import "errors"

var ErrProjectNotFound = errors.New("project not found")

type Project struct {
	ID          int64
	UserID      int64
	Name        string
	Description string
}
