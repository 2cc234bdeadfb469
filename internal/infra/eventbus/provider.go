package eventbus

import (
	"go-workforce/internal/data"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is eventbus providers.
var ProviderSet = wire.NewSet(
	NewKratosLoggerAdapter,
	NewEventBus,
	NewRouter,
	NewOutboxStore,
	ProvideForwarder,
)

// ProvideForwarder creates a Forwarder over the shared database handle.
func ProvideForwarder(d *data.Data, eventBus *EventBus, logger log.Logger) *Forwarder {
	return NewForwarder(d.DB(), d.Rebind, eventBus.Publisher(), NewKratosLoggerAdapter(logger))
}
