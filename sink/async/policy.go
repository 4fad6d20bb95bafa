package async

import "github.com/philipp01105/sinklog/core"

// OverflowPolicy defines how to handle a full queue
type OverflowPolicy int

const (
	// DropNewest drops the incoming message when the queue is full
	DropNewest OverflowPolicy = iota
	// DropOldest drops the oldest queued message to make room
	DropOldest
	// Block waits for space up to BlockTimeout, then writes synchronously
	Block
)

// String returns the string representation of the policy
func (p OverflowPolicy) String() string {
	switch p {
	case DropNewest:
		return "DropNewest"
	case DropOldest:
		return "DropOldest"
	case Block:
		return "Block"
	default:
		return "Unknown"
	}
}

// DefaultLevelPolicy drops chatty levels and blocks for errors
func DefaultLevelPolicy() map[core.Level]OverflowPolicy {
	return map[core.Level]OverflowPolicy{
		core.TraceLevel:    DropNewest,
		core.DebugLevel:    DropNewest,
		core.InfoLevel:     DropNewest,
		core.WarnLevel:     DropNewest,
		core.ErrorLevel:    Block,
		core.CriticalLevel: Block,
	}
}
