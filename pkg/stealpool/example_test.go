package stealpool_test

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/mvasek/gosteal/pkg/stealpool"
)

// Example demonstrates basic usage of the pool
func Example() {
	pool, err := stealpool.New(3)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Stop()

	fut, err := stealpool.Submit(context.Background(), pool,
		func(ctx context.Context) (int, error) {
			return 6 * 7, nil
		})
	if err != nil {
		log.Printf("Failed to submit task: %v", err)
		return
	}

	value, err := fut.Get()
	if err != nil {
		log.Printf("Task failed: %v", err)
		return
	}
	fmt.Println(value)

	// Output: 42
}

// Example_fanOut demonstrates collecting many results through futures
func Example_fanOut() {
	pool, err := stealpool.New(4)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Stop()

	inputs := []int{5, 3, 8, 1}

	futures := make([]*stealpool.Future[int], 0, len(inputs))
	for _, n := range inputs {
		n := n
		fut, err := stealpool.Submit(context.Background(), pool,
			func(ctx context.Context) (int, error) {
				return n * n, nil
			})
		if err != nil {
			log.Printf("Failed to submit task: %v", err)
			continue
		}
		futures = append(futures, fut)
	}

	squares := make([]int, 0, len(futures))
	for _, fut := range futures {
		v, err := fut.Get()
		if err != nil {
			log.Printf("Task failed: %v", err)
			continue
		}
		squares = append(squares, v)
	}

	sort.Ints(squares)
	fmt.Println(squares)

	// Output: [1 9 25 64]
}

// Example_subTasks demonstrates worker-local submission from inside a task
func Example_subTasks() {
	pool, err := stealpool.New(2)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Stop()

	// Submitting with the task's own context places the sub-task on the
	// executing worker's local queue.
	outer, err := stealpool.Submit(context.Background(), pool,
		func(ctx context.Context) (int, error) {
			inner, err := stealpool.Submit(ctx, pool,
				func(ctx context.Context) (int, error) {
					return 2, nil
				})
			if err != nil {
				return 0, err
			}
			v, err := inner.Get()
			return v * 10, err
		})
	if err != nil {
		log.Fatal(err)
	}

	value, err := outer.Get()
	if err != nil {
		log.Printf("Task failed: %v", err)
		return
	}
	fmt.Println(value)

	// Output: 20
}
