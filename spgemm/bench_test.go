// Package spgemm_test provides benchmarks for the multiplication strategies
// on random square operands with ~8 entries per row.
package spgemm_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/katalvlaran/lvsparse/csr"
	"github.com/katalvlaran/lvsparse/dispatch"
	"github.com/katalvlaran/lvsparse/spgemm"
)

// benchSizes are the operand dimensions to benchmark.
var benchSizes = []int{256, 1024}

// sink to defeat dead-code elimination
var sinkC *csr.Matrix

func benchMultiply(b *testing.B, opts ...spgemm.Option) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			a := randomCSR(b, 1337, n, n, 8/float64(n))
			e, err := spgemm.New(opts...)
			if err != nil {
				b.Fatal(err)
			}
			ctx := context.Background()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				c, err := e.Multiply(ctx, a, a)
				if err != nil {
					b.Fatal(err)
				}
				sinkC = c
			}
		})
	}
}

func BenchmarkMultiply_DotMerge(b *testing.B) {
	benchMultiply(b)
}

func BenchmarkMultiply_DotLinear(b *testing.B) {
	benchMultiply(b, spgemm.WithMatch(spgemm.MatchLinear))
}

func BenchmarkMultiply_DotCached(b *testing.B) {
	benchMultiply(b, spgemm.WithCandidateCache(true))
}

func BenchmarkMultiply_Gustavson(b *testing.B) {
	benchMultiply(b, spgemm.WithStrategy(spgemm.StrategyGustavson))
}

func BenchmarkMultiply_Serial(b *testing.B) {
	benchMultiply(b, spgemm.WithDispatcher(dispatch.Serial{}))
}

func BenchmarkMultiply_PoolStealing(b *testing.B) {
	pool := dispatch.NewPool(0, dispatch.WithGrain(32))
	defer pool.Close()
	benchMultiply(b, spgemm.WithDispatcher(pool), spgemm.WithStrategy(spgemm.StrategyGustavson))
}
