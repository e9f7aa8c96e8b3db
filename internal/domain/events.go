package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventItemsMoved       EventType = "ItemsMoved"
	EventSelectionChanged EventType = "SelectionChanged"
	EventFilterChanged    EventType = "FilterChanged"
	EventError            EventType = "Error"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ItemsMovedEvent is emitted after keys were moved between panels
type ItemsMovedEvent struct {
	To         Direction
	Keys       []string
	TargetKeys []string // target keys after the move
	Seq        uint64   // increases with every move of one transfer
}

func (e ItemsMovedEvent) Type() EventType { return EventItemsMoved }

// SelectionChangedEvent is emitted when a panel's checked keys change
type SelectionChangedEvent struct {
	Direction Direction
	Added     []string
	Removed   []string
	Total     int
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// FilterChangedEvent is emitted when a panel's filter text changes
type FilterChangedEvent struct {
	Direction Direction
	Filter    string
}

func (e FilterChangedEvent) Type() EventType { return EventFilterChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path       string
	ItemCount  int
	TargetKeys []string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
