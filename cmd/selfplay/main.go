package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"chess-negamax/engine"
	"chess-negamax/rules"
)

func main() {
	depthFlag := flag.Int("depth", 3, "search depth in plies for both sides")
	fenFlag := flag.String("fen", rules.StartFEN, "starting position")
	maxPlies := flag.Int("maxplies", 0, "stop after this many plies (0 = play to the end)")
	logFlag := flag.Bool("log", false, "log every search to stderr")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}

	board, err := rules.ParseFEN(*fenFlag)
	if err != nil {
		log.Fatalf("bad start position: %v", err)
	}

	opts := engine.DefaultOptions()
	if *logFlag {
		opts.Logger = log.New(os.Stderr, "selfplay: ", log.LstdFlags)
	}
	// One session for the whole game: the table carries over between moves.
	searcher := engine.NewSearcher(opts)
	if *logFlag {
		log.Printf("selfplay: session %s depth %d", searcher.ID(), *depthFlag)
	}

	fmt.Println(board)
	for plies := 0; !board.IsGameOver(); plies++ {
		if *maxPlies > 0 && plies >= *maxPlies {
			fmt.Println("Ply limit reached")
			break
		}
		move, err := searcher.FindBestMove(board, *depthFlag)
		if err != nil {
			log.Fatalf("search failed: %v", err)
		}
		fmt.Printf("Move %d, %s. Engine plays: %s\n", board.FullmoveNumber(), board.SideToMove(), rules.MoveString(move))
		board.Push(move)
		fmt.Println(board)
		fmt.Println()
	}
	fmt.Println("Game over:", board.Result())
}
