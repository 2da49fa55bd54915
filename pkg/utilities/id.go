package utilities

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/segmentio/ksuid"
)

// NewKSUID generates a new globally unique KSUID string.
func NewKSUID() string {
	return ksuid.New().String()
}

// IDGenerator hands out snowflake ids from a single node. Snowflake ids sort by
// creation time, which the complaint and chat log tables rely on as a tie-breaker.
type IDGenerator struct {
	node *snowflake.Node
}

// NewIDGenerator builds a generator for the given node id. If the node cannot
// be initialized it falls back to KSUID strings so ids stay unique.
func NewIDGenerator(nodeID int64) *IDGenerator {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return &IDGenerator{}
	}
	return &IDGenerator{node: node}
}

// Next returns a new id.
func (g *IDGenerator) Next() string {
	if g == nil || g.node == nil {
		return NewKSUID()
	}
	return g.node.Generate().String()
}

var (
	defaultGenOnce sync.Once
	defaultGen     *IDGenerator
)

// NewSnowflakeID generates a snowflake ID string from a process-wide node 1
// generator. Callers that know their node should use NewIDGenerator instead.
func NewSnowflakeID() string {
	defaultGenOnce.Do(func() { defaultGen = NewIDGenerator(1) })
	return defaultGen.Next()
}
