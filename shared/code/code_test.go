package code_test

import (
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"lagoon/shared/code"
)

func TestGenerator_Next(t *testing.T) {
	gen := code.New()

	got := gen.Next("BK")
	assert.Regexp(t, regexp.MustCompile(`^BK\d{6}$`), got)
}

func TestGenerator_NextIsUniquePerCall(t *testing.T) {
	gen := code.New()

	seen := make(map[string]bool)
	for range 1000 {
		c := gen.Next("CT")
		assert.False(t, seen[c], "duplicate code %s", c)
		seen[c] = true
	}
}

func TestGenerator_NextConcurrent(t *testing.T) {
	gen := code.New()

	var mu sync.Mutex
	seen := make(map[string]bool)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range 20 {
				c := gen.Next("TM")

				mu.Lock()
				assert.False(t, seen[c], "duplicate code %s", c)
				seen[c] = true
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
}
