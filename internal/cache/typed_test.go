package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"browserstore/internal/codec"
	"browserstore/internal/kv"
)

type product struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Price float64  `json:"price"`
}

func TestTyped_RoundTrip(t *testing.T) {
	f := newFixture(t, codec.Codec{})
	products := NewTyped[[]product](f.cache)
	calls := 0
	load := func() []product {
		calls++
		return []product{{ID: 1, Name: "lamp", Tags: []string{"home"}, Price: 9.5}}
	}

	first := products.Get("products", load, WithExpire(30))
	f.clock.Advance(10 * time.Second)
	second := products.Get("products", load, WithExpire(30))

	require.Equal(t, first, second)
	require.Equal(t, 1, calls)
}

func TestTyped_MismatchFallsBackToProducer(t *testing.T) {
	f := newFixture(t, codec.Codec{})
	f.cache.Get("n", kv.Literal("not a number"), WithExpire(30))

	nums := NewTyped[int](f.cache)
	require.Equal(t, 7, nums.Get("n", func() int { return 7 }, WithExpire(30)))
}

func TestTyped_Set(t *testing.T) {
	f := newFixture(t, codec.Codec{})
	names := NewTyped[string](f.cache)
	names.Set("name", "ada")
	require.Equal(t, "ada", names.Get("name", func() string { return "other" }))
}
