// cmd/demo/main.go
package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	"lrkv/pkg/btree"
	"lrkv/pkg/router"
)

type record struct {
	key   int64
	value string
}

// leftRange/rightRange use the 32-bit INT_MIN+1/INT_MAX-1 bounds; the
// router itself works over any integer key width, this demo just sticks
// to that numeric range.
const (
	leftRange  = math.MinInt32 + 1
	rightRange = math.MaxInt32 - 1
	opCount    = 1_000_000
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: demo <segments> <shards-per-segment>")
		os.Exit(1)
	}
	segments, err := strconv.Atoi(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo: invalid segments: %v\n", err)
		os.Exit(1)
	}
	shardsPerSegment, err := strconv.Atoi(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo: invalid shards-per-segment: %v\n", err)
		os.Exit(1)
	}

	keys := generateKeys(opCount)
	mean, sigma := statisticFeature(keys)

	lr, err := router.NewLR(router.LROptions[int64, record]{
		Mean:             mean,
		StdDev:           sigma,
		Segments:         segments,
		ShardsPerSegment: shardsPerSegment,
		Left:             leftRange,
		Right:            rightRange,
		KeyOf:            func(r record) int64 { return r.key },
		Tree: btree.Options[record]{
			Compare: func(a, b record) int {
				switch {
				case a.key < b.key:
					return -1
				case a.key > b.key:
					return 1
				default:
					return 0
				}
			},
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "demo: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	for i, k := range keys {
		lr.Set(record{key: k, value: fmt.Sprintf("This is num %d!!!", i)})
	}
	for _, k := range keys {
		lr.Get(record{key: k})
	}
	for i, k := range keys {
		lr.Set(record{key: k, value: fmt.Sprintf("Num %d has been changed!!!", i)})
	}
	for _, k := range keys {
		lr.Delete(record{key: k})
	}
	elapsed := time.Since(start)

	fmt.Printf("LR tree with %d segments, %d shards per segment took %f (microseconds)\n",
		segments, shardsPerSegment, float64(elapsed.Nanoseconds())/1000)
}

func generateKeys(n int) []int64 {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	keys := make([]int64, n)
	for i := range keys {
		keys[i] = int64(rng.Int63n(rightRange-leftRange)) + leftRange
	}
	return keys
}

func statisticFeature(keys []int64) (mean, sigma float64) {
	n := float64(len(keys))
	var sum float64
	for _, k := range keys {
		sum += float64(k)
	}
	mean = sum / n
	var sq float64
	for _, k := range keys {
		d := float64(k) - mean
		sq += d * d
	}
	sigma = math.Sqrt(sq / n)
	return mean, sigma
}
