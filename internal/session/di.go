package session

import (
	"github.com/samber/do/v2"

	"github.com/segusengineering/worksync/internal/journal"
	"github.com/segusengineering/worksync/internal/notify"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Manager, error) {
		api := do.MustInvoke[SessionAPI](i)
		notifier := do.MustInvoke[Notifier](i)
		jrnl := do.MustInvoke[journal.Journal](i)
		feed := do.MustInvokeNamed[*notify.Feed](i, "toast-feed")
		return NewManager(api, notifier, jrnl, feed), nil
	})
}
