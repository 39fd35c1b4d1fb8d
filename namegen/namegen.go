package namegen

import (
	vendor "github.com/anandvarma/namegen"
)

var gen = vendor.New()

// RunID names a single retention run in logs.
type RunID string

func NewRunID() RunID {
	return RunID(gen.Get())
}

func (id RunID) String() string {
	return string(id)
}
