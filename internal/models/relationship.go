package models

// RelType is the dependency type linking a predecessor to a successor.
type RelType string

const (
	FinishToStart  RelType = "FS"
	StartToStart   RelType = "SS"
	FinishToFinish RelType = "FF"
	StartToFinish  RelType = "SF"
)

// ValidRelTypes enumerates every known relationship type.
var ValidRelTypes = map[RelType]bool{
	FinishToStart:  true,
	StartToStart:   true,
	FinishToFinish: true,
	StartToFinish:  true,
}

// Relationship links two activities with a typed, lagged dependency.
// Lag is in working days; negative values are leads. An empty Type
// defaults to finish-to-start.
type Relationship struct {
	Predecessor string  `yaml:"predecessor"`
	Successor   string  `yaml:"successor"`
	Type        RelType `yaml:"type,omitempty"`
	Lag         int     `yaml:"lag,omitempty"`
}
