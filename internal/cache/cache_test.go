package cache_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ashureev/learnzverse/internal/cache"
	"github.com/m-mizutani/gt"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	c := cache.Load(filepath.Join(t.TempDir(), "absent.json"), nil)
	gt.Equal(t, c.Len(), 0)
}

func TestLoadMalformedFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	gt.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	c := cache.Load(path, nil)
	gt.Equal(t, c.Len(), 0)
}

func TestGetOrGenerateHitSkipsGenerator(t *testing.T) {
	c := cache.Load(filepath.Join(t.TempDir(), "cache.json"), nil)

	calls := 0
	gen := func() string {
		calls++
		return "generated"
	}

	v, hit := c.GetOrGenerate("k", gen)
	gt.Equal(t, v, "generated")
	gt.False(t, hit)

	v, hit = c.GetOrGenerate("k", gen)
	gt.Equal(t, v, "generated")
	gt.True(t, hit)
	gt.Equal(t, calls, 1)
}

func TestGetOrGeneratePersistsEveryEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "cache.json")
	c := cache.Load(path, nil)

	c.GetOrGenerate("a", func() string { return "first" })
	c.GetOrGenerate("b", func() string { return "second" })

	data, err := os.ReadFile(path)
	gt.NoError(t, err)

	var onDisk map[string]string
	gt.NoError(t, json.Unmarshal(data, &onDisk))
	gt.Equal(t, onDisk["a"], "first")
	gt.Equal(t, onDisk["b"], "second")

	reloaded := cache.Load(path, nil)
	gt.Equal(t, reloaded.Len(), 2)
	v, hit := reloaded.GetOrGenerate("a", func() string { return "other" })
	gt.True(t, hit)
	gt.Equal(t, v, "first")
}

func TestKeyTruncatesQuestion(t *testing.T) {
	long := strings.Repeat("x", 80)
	key := cache.Key("Mr. Newton", "10", long)
	gt.Equal(t, key, "Mr. Newton_10_"+strings.Repeat("x", 50))

	short := cache.Key("Dr. Darwin", "8", "What is DNA?")
	gt.Equal(t, short, "Dr. Darwin_8_What is DNA?")
}

func TestKeyCountsCharactersNotBytes(t *testing.T) {
	q := strings.Repeat("é", 60)
	key := cache.Key("Prof. Euler", "12", q)
	gt.Equal(t, key, "Prof. Euler_12_"+strings.Repeat("é", 50))
}

func TestKeyKeepsClassLevelAndQuestionApart(t *testing.T) {
	a := cache.Key("Mr. Newton", "10_a", "b")
	b := cache.Key("Mr. Newton", "10", "a_b")
	gt.True(t, a != b)
	gt.Equal(t, a, "Mr. Newton_10-a_b")
	gt.Equal(t, b, "Mr. Newton_10_a_b")
}

// Questions that only differ after the 50th character share an entry.
func TestLongQuestionsSharingPrefixCollide(t *testing.T) {
	c := cache.Load(filepath.Join(t.TempDir(), "cache.json"), nil)

	q1 := "Explain gravity please help me understand this concept in depth today now"
	q2 := "Explain gravity please help me understand this concept in a different way"
	gt.True(t, len(q1) > 50)
	gt.Equal(t, q1[:50], q2[:50])

	first, _ := c.GetOrGenerate(cache.Key("Mr. Newton", "10", q1), func() string { return "answer one" })
	second, hit := c.GetOrGenerate(cache.Key("Mr. Newton", "10", q2), func() string { return "answer two" })
	gt.True(t, hit)
	gt.Equal(t, second, first)
}
