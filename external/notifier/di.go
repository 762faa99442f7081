package notifier

import (
	"github.com/samber/do/v2"

	"github.com/segusengineering/worksync/internal/auth"
	"github.com/segusengineering/worksync/internal/config"
	"github.com/segusengineering/worksync/internal/session"
)

func RegisterDI(i do.Injector) {
	do.Provide(i, func(i do.Injector) (session.Notifier, error) {
		cfg := do.MustInvoke[*config.Config](i)
		tokens := do.MustInvoke[auth.TokenProvider](i)
		return NewHTTPNotifier(cfg.APIBaseURL, cfg.EmployeeID, tokens), nil
	})
}
