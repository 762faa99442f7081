package api

import (
	"github.com/samber/do/v2"

	internalauth "github.com/segusengineering/worksync/internal/auth"
	"github.com/segusengineering/worksync/internal/config"
	"github.com/segusengineering/worksync/internal/session"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (session.SessionAPI, error) {
		c := do.MustInvoke[*config.Config](i)
		tokens := do.MustInvoke[internalauth.TokenProvider](i)
		return NewHTTPClient(c.APIBaseURL, tokens), nil
	})
}
