package toon

import (
	"testing"

	"github.com/doom-fish/flamecat/internal/render"
	"github.com/doom-fish/flamecat/internal/testutil"
)

func rankedEntries(n int) []render.RankedEntry {
	b := testutil.NewThreadBuilder(1, "Main")
	for i := 0; i < n; i++ {
		start := float64(i * 10)
		b = b.WithSpan(testutil.NewSpanBuilder(uint64(i), "frame", start, start+5).
			WithSelfValue(2).
			Build())
	}
	thread := b.Build()
	entries := render.AggregateRanked(thread.Spans)
	render.SortRanked(entries, render.RankedSortBySelf)
	return entries
}

func BenchmarkEncode_RankedSmall(b *testing.B) {
	entries := rankedEntries(20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Encode(entries)
	}
}

func BenchmarkEncode_RankedMedium(b *testing.B) {
	entries := rankedEntries(200)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Encode(entries)
	}
}

func BenchmarkEncode_RankedLarge(b *testing.B) {
	entries := rankedEntries(2000)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Encode(entries)
	}
}

func BenchmarkEncode_TabularArray(b *testing.B) {
	type Item struct {
		Name     string
		Value    int
		Duration float64
	}

	b.Run("10Items", func(b *testing.B) {
		items := make([]Item, 10)
		for i := 0; i < 10; i++ {
			items[i] = Item{Name: "item", Value: i, Duration: float64(i) * 1.5}
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = Encode(items)
		}
	})

	b.Run("100Items", func(b *testing.B) {
		items := make([]Item, 100)
		for i := 0; i < 100; i++ {
			items[i] = Item{Name: "item", Value: i, Duration: float64(i) * 1.5}
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = Encode(items)
		}
	})

	b.Run("1000Items", func(b *testing.B) {
		items := make([]Item, 1000)
		for i := 0; i < 1000; i++ {
			items[i] = Item{Name: "item", Value: i, Duration: float64(i) * 1.5}
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = Encode(items)
		}
	})
}

func BenchmarkEncode_DeepNesting(b *testing.B) {
	type Inner struct {
		Value int
	}
	type Middle struct {
		Inner Inner
		Name  string
	}
	type Outer struct {
		Middle Middle
		ID     int
	}

	data := Outer{
		ID: 1,
		Middle: Middle{
			Name:  "test",
			Inner: Inner{Value: 42},
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Encode(data)
	}
}

func BenchmarkEncode_Map(b *testing.B) {
	b.Run("SmallMap", func(b *testing.B) {
		m := make(map[string]float64)
		for i := 0; i < 10; i++ {
			m["key"+string(rune('A'+i))] = float64(i) * 1.5
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = Encode(m)
		}
	})

	b.Run("LargeMap", func(b *testing.B) {
		m := make(map[string]float64)
		for i := 0; i < 100; i++ {
			m["key"+string(rune('A'+i%26))+string(rune('0'+i/26))] = float64(i) * 1.5
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = Encode(m)
		}
	})
}

func BenchmarkEncodeIndent(b *testing.B) {
	entries := rankedEntries(200)

	b.Run("NoIndent", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = EncodeIndent(entries, "", "")
		}
	})

	b.Run("WithIndent", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = EncodeIndent(entries, "", "  ")
		}
	})
}
