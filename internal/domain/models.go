package domain

// Item represents a single transferable entry
type Item struct {
	Key         string            `toml:"key" yaml:"key" json:"key"`
	Title       string            `toml:"title,omitempty" yaml:"title,omitempty" json:"title,omitempty"`
	Description string            `toml:"description,omitempty" yaml:"description,omitempty" json:"description,omitempty"`
	Disabled    bool              `toml:"disabled,omitempty" yaml:"disabled,omitempty" json:"disabled,omitempty"`
	Meta        map[string]string `toml:"meta,omitempty" yaml:"meta,omitempty" json:"meta,omitempty"`
}

// DisplayText returns the text shown for the item when no custom renderer is set
func (i Item) DisplayText() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Key
}

// Direction identifies one of the two transfer panels
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Opposite returns the other panel's direction
func (d Direction) Opposite() Direction {
	if d == DirectionLeft {
		return DirectionRight
	}
	return DirectionLeft
}

// CheckStatus is the aggregate selection state of a panel
type CheckStatus int

const (
	CheckNone CheckStatus = iota
	CheckPart
	CheckAll
)

func (s CheckStatus) String() string {
	switch s {
	case CheckPart:
		return "part"
	case CheckAll:
		return "all"
	default:
		return "none"
	}
}
