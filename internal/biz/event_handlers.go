package biz

import (
	"context"
	"encoding/json"
	"fmt"

	"go-workforce/internal/data"
	"go-workforce/internal/domain"
	"go-workforce/internal/domain/event"
	"go-workforce/internal/infra/container"
	"go-workforce/internal/infra/eventbus"

	"github.com/go-kratos/kratos/v2/log"
)

// NotifierKey is the resolver name of the Notifier dependency.
const NotifierKey = "notifier"

// Notifier delivers out-of-band notices about workforce changes. Post-commit
// handlers resolve it per invocation through the handler resolver.
type Notifier interface {
	Notify(ctx context.Context, recipient, message string) error
}

// Compile-time interface check
var _ Notifier = (*LogNotifier)(nil)

// LogNotifier writes notices to the log. Stands in for mail or chat
// delivery in the demo wiring.
type LogNotifier struct {
	log *log.Helper
}

// NewLogNotifier creates a new log-backed notifier.
func NewLogNotifier(logger log.Logger) *LogNotifier {
	return &LogNotifier{log: log.NewHelper(logger)}
}

// Notify logs the notice.
func (n *LogNotifier) Notify(ctx context.Context, recipient, message string) error {
	n.log.WithContext(ctx).Infof("[Notice] to %s: %s", recipient, message)
	return nil
}

// NewResolver builds the handler dependency resolver.
func NewResolver(logger log.Logger) *container.Container {
	c := container.New()
	c.RegisterSingleton(NotifierKey, func(c *container.Container) (any, error) {
		return NewLogNotifier(logger), nil
	})
	return c
}

// employeeEventNames lists every event type the demo domain raises.
var employeeEventNames = []string{
	"employee.hired",
	"employee.promoted",
	"employee.terminated",
}

// RegisterEventHandlers wires the in-transaction handler registrations.
// Pre-commit handlers run inside the business transaction and abort it on
// failure; post-commit handlers run after commit and are isolated.
func RegisterEventHandlers(registry *event.Registry, outbox *eventbus.OutboxStore, logger log.Logger) {
	helper := log.NewHelper(logger)

	for _, name := range employeeEventNames {
		// Audit trail first, so a later handler failure still leaves a trace.
		registry.Register(event.Registration{
			EventName: name,
			Name:      "audit_log",
			Phase:     event.PreCommit,
			Handle: func(ctx context.Context, e event.Event, r event.Resolver) error {
				helper.WithContext(ctx).Infof("[Event] %s: aggregate %s (id %s)",
					e.EventName(), e.AggregateID(), e.EventID())
				return nil
			},
		})

		// Outbox rows ride the business transaction: the event reaches the
		// bus only if this unit of work commits.
		registry.Register(event.Registration{
			EventName: name,
			Name:      "outbox",
			Phase:     event.PreCommit,
			Handle: func(ctx context.Context, e event.Event, r event.Resolver) error {
				sess, ok := domain.SessionFromContext(ctx).(*data.Session)
				if !ok {
					return fmt.Errorf("no session in context for outbox store")
				}
				return outbox.StoreInTx(ctx, sess.Tx(), e)
			},
		})
	}

	registry.Register(event.Registration{
		EventName: "employee.hired",
		Name:      "welcome_notice",
		Phase:     event.PostCommit,
		Handle: func(ctx context.Context, e event.Event, r event.Resolver) error {
			hired, ok := e.(event.EmployeeHired)
			if !ok {
				return fmt.Errorf("unexpected event type %T", e)
			}
			n, err := resolveNotifier(r)
			if err != nil {
				return err
			}
			return n.Notify(ctx, hired.Name,
				fmt.Sprintf("welcome aboard as %s", hired.Position))
		},
	})

	registry.Register(event.Registration{
		EventName: "employee.terminated",
		Name:      "farewell_notice",
		Phase:     event.PostCommit,
		Handle: func(ctx context.Context, e event.Event, r event.Resolver) error {
			terminated, ok := e.(event.EmployeeTerminated)
			if !ok {
				return fmt.Errorf("unexpected event type %T", e)
			}
			n, err := resolveNotifier(r)
			if err != nil {
				return err
			}
			return n.Notify(ctx, terminated.EmployeeID,
				fmt.Sprintf("offboarding complete: %s", terminated.Reason))
		},
	})
}

func resolveNotifier(r event.Resolver) (Notifier, error) {
	v, err := r.Resolve(NotifierKey)
	if err != nil {
		return nil, err
	}
	n, ok := v.(Notifier)
	if !ok {
		return nil, fmt.Errorf("%q resolved to %T, not a Notifier", NotifierKey, v)
	}
	return n, nil
}

// Compile-time interface check
var _ eventbus.EventHandler = (*BusLogHandler)(nil)

// BusLogHandler logs committed events as they arrive over the bus.
type BusLogHandler struct {
	log       *log.Helper
	eventName string
}

// NewBusLogHandler creates a new bus logging handler.
func NewBusLogHandler(logger log.Logger, eventName string) *BusLogHandler {
	return &BusLogHandler{
		log:       log.NewHelper(logger),
		eventName: eventName,
	}
}

func (h *BusLogHandler) HandlerName() string {
	return "bus_log_" + h.eventName
}

func (h *BusLogHandler) EventName() string {
	return h.eventName
}

// Handle logs the event details.
func (h *BusLogHandler) Handle(ctx context.Context, envelope *eventbus.EventEnvelope) error {
	switch envelope.EventName {
	case "employee.hired":
		var evt event.EmployeeHired
		if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
			return err
		}
		h.log.Infof("[Bus] employee hired: %s as %s", evt.Name, evt.Position)
	case "employee.promoted":
		var evt event.EmployeePromoted
		if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
			return err
		}
		h.log.Infof("[Bus] employee promoted: %s -> %s", evt.OldPosition, evt.NewPosition)
	case "employee.terminated":
		var evt event.EmployeeTerminated
		if err := json.Unmarshal(envelope.Payload, &evt); err != nil {
			return err
		}
		h.log.Infof("[Bus] employee terminated: %s (%s)", evt.EmployeeID, evt.Reason)
	default:
		h.log.Infof("[Bus] %s: %s", envelope.EventName, envelope.AggregateID)
	}
	return nil
}

// RegisterBusHandlers registers the asynchronous consumers.
func RegisterBusHandlers(router *eventbus.Router, logger log.Logger) {
	for _, eventName := range employeeEventNames {
		router.AddHandler(NewBusLogHandler(logger, eventName))
	}
}
