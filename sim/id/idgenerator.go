// Package id generates identifiers for events, tasks and commands.
package id

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator can generate IDs.
type IDGenerator interface {
	Generate() string
}

var (
	generatorMu sync.Mutex
	generator   IDGenerator = &sequentialIDGenerator{}
)

// UseSequential switches the package generator to sequential numeric IDs.
// Sequential IDs make a simulation reproducible.
func UseSequential() {
	generatorMu.Lock()
	defer generatorMu.Unlock()

	generator = &sequentialIDGenerator{}
}

// UseRandom switches the package generator to globally unique xid IDs.
func UseRandom() {
	generatorMu.Lock()
	defer generatorMu.Unlock()

	generator = xidGenerator{}
}

// Generate returns a new ID from the package generator.
func Generate() string {
	generatorMu.Lock()
	g := generator
	generatorMu.Unlock()

	return g.Generate()
}

// NewIDGenerator returns a standalone sequential generator.
func NewIDGenerator() IDGenerator {
	return &sequentialIDGenerator{}
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)

	return strconv.FormatUint(idNumber, 10)
}

type xidGenerator struct{}

func (xidGenerator) Generate() string {
	return xid.New().String()
}
