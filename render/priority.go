package render

// Priority determines render order. Lower values render first
type Priority int

const (
	PriorityLinks Priority = iota * 10
	PriorityNodes
	PriorityLabels
	PriorityOverlay
)
