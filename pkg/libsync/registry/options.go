package registry

import (
	"github.com/google/go-containerregistry/pkg/authn"
)

type options struct {
	plainHTTP           bool
	skipTLSVerification bool
	authProvider        authn.Authenticator
}

type Option func(o *options)

func UsePlainHTTP() Option {
	return func(o *options) {
		o.plainHTTP = true
	}
}

func SkipTLSVerification() Option {
	return func(o *options) {
		o.skipTLSVerification = true
	}
}

func UseAuthProvider(authProvider authn.Authenticator) Option {
	return func(o *options) {
		o.authProvider = authProvider
	}
}
