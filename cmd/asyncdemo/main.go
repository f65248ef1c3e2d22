// Command asyncdemo runs the async scope's two end-to-end scenarios
// (spec §8 scenarios 1 and 2): parallel sleeps summed via AwaitAll, and a
// shutdown-on-first-success race consumed via Await's completion-order
// stream.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/arcway/actorkit/async"
	"github.com/arcway/actorkit/internal/dashboard"
)

func parallelSleeps() {
	scope := async.New[int]()

	fmt.Println("scenario 1: parallel sleeps")
	start := time.Now()

	a, _ := scope.AsyncNamed("forty", func(ctx context.Context) (int, error) {
		time.Sleep(1 * time.Second)
		return 40, nil
	})
	b, _ := scope.AsyncNamed("two", func(ctx context.Context) (int, error) {
		time.Sleep(1 * time.Second)
		return 2, nil
	})

	if err := scope.AwaitAll(); err != nil {
		log.Fatal(err)
	}

	ra, _ := a.Result()
	rb, _ := b.Result()
	combined := async.Merge(ra, rb, func(x, y int) int { return x + y })
	sum, _ := combined.Value()

	fmt.Printf("%s\n", dashboard.Bar(20, 2, 2))
	fmt.Printf("sum = %d, elapsed = %s\n\n", sum, time.Since(start).Round(10*time.Millisecond))
}

func shutdownOnFirstSuccess() {
	scope := async.New[int]()

	fmt.Println("scenario 2: shutdown on first success")

	scope.AsyncNamed("slow", func(ctx context.Context) (int, error) {
		select {
		case <-time.After(1 * time.Second):
			return 1, nil
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	})
	scope.AsyncNamed("fast", func(ctx context.Context) (int, error) {
		time.Sleep(42 * time.Millisecond)
		return 2, nil
	})

	winner, err := scope.Await(func(stream *async.Stream[int]) (any, error) {
		r, err := stream.Next()
		if err != nil {
			return nil, err
		}
		v, ok := r.Value()
		if !ok {
			return nil, errors.New("first completion was not a success")
		}
		return v, nil
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("winner = %v\n\n", winner)
}

func main() {
	dashboard.ClearScreen()
	parallelSleeps()
	shutdownOnFirstSuccess()
}
