package events

import "go.uber.org/fx"

// NewEventsModule provides the event registry populated with every event
// type this service can publish.
func NewEventsModule() fx.Option {
	return fx.Module("events",
		fx.Provide(NewRegistry),
		fx.Invoke(RegisterAll),
	)
}
