package measure

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/scribe/internal/format"
)

func TestMonospace(t *testing.T) {
	m := Monospace(0.5)
	f := format.Default()
	f.FontSize = 20

	require.Equal(t, 0.0, m("", f))
	require.Equal(t, 30.0, m("abc", f))
	require.Equal(t, 20.0, m("日é", f), "one advance per grapheme cluster")
}

func TestMonospace_DefaultRatio(t *testing.T) {
	f := format.Default()
	f.FontSize = 10
	require.InDelta(t, 12.0, Monospace(0)("ab", f), 1e-9)
}

func TestCells(t *testing.T) {
	m := Cells()
	f := format.Default()

	require.Equal(t, 5.0, m("hello", f))
	require.Equal(t, 4.0, m("日本", f))
	require.Equal(t, 0.0, m("", f))
}

func TestCache_MemoizesByFontAndText(t *testing.T) {
	calls := 0
	next := func(text string, f format.State) float64 {
		calls++
		return float64(len(text)) * f.FontSize
	}
	c := NewCache(next, DefaultExpiration, DefaultCleanupInterval)
	f := format.Default()

	require.Equal(t, 48.0, c.Measure("abc", f))
	require.Equal(t, 48.0, c.Measure("abc", f))
	require.Equal(t, 1, calls)

	f.Bold = true
	require.Equal(t, 48.0, c.Measure("abc", f))
	require.Equal(t, 2, calls, "bold text is a different cache entry")
	require.Equal(t, 2, c.Len())

	c.Func()("abc", f)
	require.Equal(t, 2, calls, "Func shares the cache")
}

func TestCache_IgnoresForeignValues(t *testing.T) {
	c := NewCache(Monospace(1), DefaultExpiration, DefaultCleanupInterval)
	f := format.Default()
	c.cache.Set(cacheKey("ab", f), "not a width", DefaultExpiration)

	require.Equal(t, 32.0, c.Measure("ab", f))
}
