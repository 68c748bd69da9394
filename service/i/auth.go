package i

import (
	"github.com/beka-birhanu/maze-runner/identity"
)

type Authenticator interface {
	Register(username, password string) error
	SignIn(username, password string) (*identity.User, string, error)
}
