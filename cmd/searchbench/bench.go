package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"chess-negamax/engine"
	"chess-negamax/rules"
)

// defaultFENs are quiet positions: few pending captures, so the unbounded
// capture search stays small.
var defaultFENs = []string{
	rules.StartFEN,
	"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
	"6k1/5ppp/8/8/8/8/5PPP/3R2K1 w - - 0 1",
	"4k3/8/8/2n1p3/3P4/2N5/8/4K3 w - - 0 1",
	"8/5pk1/6p1/8/8/6P1/5PK1/8 w - - 0 1",
	"8/8/4k3/8/2p5/3P4/4K3/8 b - - 0 1",
}

type config struct {
	depth   int
	workers int
	noTT    bool
}

type job struct {
	index int
	fen   string
}

type result struct {
	index  int
	fen    string
	search engine.Result
}

// readFENs returns the non-empty lines of r, skipping # comments.
func readFENs(r io.Reader) ([]string, error) {
	var fens []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fens = append(fens, line)
	}
	return fens, scanner.Err()
}

// run searches every FEN once. Each worker owns its Searcher, so tables are
// never shared. Results come back in input order.
func run(ctx context.Context, cfg config, fens []string) ([]result, error) {
	g, ctx := errgroup.WithContext(ctx)

	var jobs = make(chan job)
	var results = make(chan result)

	g.Go(func() error {
		defer close(jobs)
		for i, fen := range fens {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- job{index: i, fen: fen}:
			}
		}
		return nil
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < cfg.workers; i++ {
		worker := i + 1
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return searchPositions(ctx, cfg, worker, jobs, results)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	var collected []result
	for res := range results {
		log.Printf("position %d: bestmove %s score %d nodes %d qnodes %d time %v",
			res.index+1, rules.MoveString(res.search.Move), res.search.Score,
			res.search.Stats.Nodes, res.search.Stats.QNodes, res.search.Elapsed)
		collected = append(collected, res)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].index < collected[j].index })
	return collected, nil
}

func searchPositions(ctx context.Context, cfg config, worker int, jobs <-chan job, results chan<- result) error {
	searcher := engine.NewSearcher(engine.Options{DisableTT: cfg.noTT})
	log.Printf("worker %d: session %s", worker, searcher.ID())
	for j := range jobs {
		board, err := rules.ParseFEN(j.fen)
		if err != nil {
			return fmt.Errorf("position %d: %w", j.index+1, err)
		}
		// A new position is a new game.
		searcher.Reset()
		res, err := searcher.Search(board, cfg.depth)
		if err != nil {
			return fmt.Errorf("position %d: %w", j.index+1, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case results <- result{index: j.index, fen: j.fen, search: res}:
		}
	}
	return nil
}

func summarize(results []result) engine.Stats {
	var total engine.Stats
	for _, r := range results {
		total.Add(r.search.Stats)
	}
	return total
}
