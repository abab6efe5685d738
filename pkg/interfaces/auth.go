package interfaces

import "context"

// AuthProvider supplies the pre-verified mutation decision consulted before
// create/update/delete operations reach the news core. Token issuing and
// credential verification live in the host application.
type AuthProvider interface {
	CanMutate(ctx context.Context) (bool, error)
}
