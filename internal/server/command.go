package server

import "github.com/Legacy-Engineers/medusa/internal/store"

// context carries one parsed request to a handler: the arguments after the
// verb plus the shared store handle.
type context struct {
	args  []string
	store *store.Store
}

type command interface {
	execute(ctx *context) string
}

type commandFunc func(ctx *context) string

func (c commandFunc) execute(ctx *context) string {
	return c(ctx)
}
