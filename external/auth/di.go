package auth

import (
	"github.com/samber/do/v2"

	internalauth "github.com/segusengineering/worksync/internal/auth"
	"github.com/segusengineering/worksync/internal/config"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (internalauth.TokenProvider, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewStaticTokenProvider(c.APIToken), nil
	})
}
