package realtime

import (
	"github.com/samber/do/v2"

	"github.com/segusengineering/worksync/internal/auth"
	"github.com/segusengineering/worksync/internal/config"
	"github.com/segusengineering/worksync/internal/realtime"
)

func RegisterDI(i do.Injector) {
	do.Provide(i, func(i do.Injector) (realtime.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		tokens := do.MustInvoke[auth.TokenProvider](i)
		if cfg.Transport == config.TransportWebSocket {
			return NewWebSocketClient(cfg.APIBaseURL, tokens), nil
		}
		return NewSSEClient(cfg.APIBaseURL, tokens), nil
	})
}
