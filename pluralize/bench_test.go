package pluralize

import (
	"fmt"
	"testing"
)

var benchWords = []string{"cat", "House", "person", "matrix", "wolf", "sheep", "CITY", "analysis"}

func BenchmarkPluralize(b *testing.B) {
	e := New()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		for j := 0; j < 10000; j++ {
			e.Pluralize(benchWords[j%len(benchWords)], j%3, false)
		}
	}
}

func BenchmarkAddRulesThenPluralize(b *testing.B) {
	for i := 0; i < b.N; i++ {
		e := New()
		for j := 0; j < 100; j++ {
			_ = e.AddPluralRule(fmt.Sprintf(`(?i)^(widget%d)$`, j), "${1}z")
		}
		for j := 0; j < 1000; j++ {
			e.Pluralize(benchWords[j%len(benchWords)], 2, true)
		}
	}
}

func BenchmarkNew(b *testing.B) {
	for i := 0; i < b.N; i++ {
		New()
	}
}

func BenchmarkParallelPluralize(b *testing.B) {
	e := New()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			e.Pluralize(benchWords[i%len(benchWords)], 2, false)
			i++
		}
	})
}
