package main

import (
	"context"
	"flag"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"
)

func main() {
	depthFlag := flag.Int("depth", 3, "search depth in plies")
	fenFlag := flag.String("fen", "", "single FEN to search (empty = built-in set)")
	fileFlag := flag.String("file", "", "file with one FEN per line")
	workersFlag := flag.Int("workers", runtime.NumCPU(), "positions searched concurrently")
	noTTFlag := flag.Bool("nott", false, "disable the transposition table")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}
	if *workersFlag <= 0 {
		log.Fatalf("workers must be positive, got %d", *workersFlag)
	}

	fens := defaultFENs
	switch {
	case *fileFlag != "":
		f, err := os.Open(*fileFlag)
		if err != nil {
			log.Fatalf("could not open FEN file: %v", err)
		}
		fens, err = readFENs(f)
		f.Close()
		if err != nil {
			log.Fatalf("could not read FEN file: %v", err)
		}
	case *fenFlag != "":
		fens = []string{*fenFlag}
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	cfg := config{
		depth:   *depthFlag,
		workers: *workersFlag,
		noTT:    *noTTFlag,
	}
	log.Printf("searchbench: positions=%d depth=%d workers=%d", len(fens), cfg.depth, cfg.workers)

	start := time.Now()
	results, err := run(context.Background(), cfg, fens)
	if err != nil {
		log.Fatalf("searchbench: %v", err)
	}
	total := summarize(results)
	elapsed := time.Since(start)
	log.Printf("total: nodes=%d qnodes=%d ttcutoffs=%d time=%v",
		total.Nodes, total.QNodes, total.TTCutoffs, elapsed)

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
