package ulid

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     io.Reader
	entropyOnce sync.Once
	generator   = DefaultGenerator
)

// DefaultEntropy returns a reader that generates ULID entropy.
func DefaultEntropy() io.Reader {
	entropyOnce.Do(func() {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))

		entropy = &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rng, 0),
		}
	})
	return entropy
}

// ValidID checks if the given id is a valid ULID.
func ValidID(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}

// GenerateID generates a new node id.
func GenerateID() string {
	return generator()
}

func DefaultGenerator() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), DefaultEntropy()).String()
}

func ResetGenerator() {
	generator = DefaultGenerator
}

// MockGenerator makes GenerateID return mockValue until ResetGenerator
// is called. Tests use it to get stable ids.
func MockGenerator(mockValue string) {
	generator = func() string {
		return mockValue
	}
}
