package idx

import (
	"crypto/rand"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a ULID: 48 bits of millisecond time followed by 80 random bits, so
// ids sort by creation time.
type ID string

// Generator produces IDs from a monotonic entropy source. It is safe for
// concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
	now     func() time.Time
}

// NewGenerator returns a Generator reading entropy from r. A nil reader uses
// crypto/rand; a nil clock uses time.Now.
func NewGenerator(r io.Reader, now func() time.Time) *Generator {
	if r == nil {
		r = rand.Reader
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{entropy: ulid.Monotonic(r, 0), now: now}
}

func (g *Generator) New() ID {
	return g.NewAt(g.now().UTC())
}

// NewAt stamps the id with t. Ids minted in the same millisecond still
// increase.
func (g *Generator) NewAt(t time.Time) ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ID(ulid.MustNew(ulid.Timestamp(t), g.entropy).String())
}

var (
	defaultOnce sync.Once
	defaultGen  *Generator
)

func def() *Generator {
	defaultOnce.Do(func() { defaultGen = NewGenerator(nil, nil) })
	return defaultGen
}

func New() ID { return def().New() }

func NewAt(t time.Time) ID { return def().NewAt(t) }

func (id ID) String() string { return string(id) }

// Time returns the embedded timestamp, or the zero time for a malformed id.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}
