package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"chess-negamax/engine"
	"chess-negamax/rules"
)

const (
	engineName   = "chess-negamax"
	engineAuthor = "chess-negamax authors"
)

func main() {
	depthFlag := flag.Int("depth", 3, "search depth in plies when go has no depth")
	logFlag := flag.Bool("log", false, "log search sessions to stderr")
	noTTFlag := flag.Bool("nott", false, "disable the transposition table")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}

	opts := engine.DefaultOptions()
	opts.DisableTT = *noTTFlag
	if *logFlag {
		opts.Logger = log.New(os.Stderr, "search: ", log.LstdFlags|log.Lmicroseconds)
	}

	u := newUCI(os.Stdout, opts, *depthFlag)
	if err := u.loop(os.Stdin); err != nil {
		log.Fatalf("reading input: %v", err)
	}
}

// uci holds the state of one protocol conversation: the game board and the
// search session that lives until the next ucinewgame.
type uci struct {
	out          io.Writer
	board        *rules.Position
	searcher     *engine.Searcher
	defaultDepth int
}

func newUCI(out io.Writer, opts engine.Options, depth int) *uci {
	return &uci{
		out:          out,
		board:        rules.NewPosition(),
		searcher:     engine.NewSearcher(opts),
		defaultDepth: depth,
	}
}

func (u *uci) println(a ...any) {
	fmt.Fprintln(u.out, a...)
}

func (u *uci) loop(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		if !u.handle(line, tokens) {
			return nil
		}
	}
	return scanner.Err()
}

// handle runs one command and reports whether the loop should go on.
func (u *uci) handle(line string, tokens []string) bool {
	switch strings.ToLower(tokens[0]) {
	case "uci":
		u.println("id name", engineName)
		u.println("id author", engineAuthor)
		u.println("uciok")
	case "isready":
		u.println("readyok")
	case "ucinewgame":
		u.board = rules.NewPosition()
		u.searcher.Reset()
	case "position":
		u.position(tokens[1:])
	case "go":
		u.goCommand(tokens[1:])
	case "stop":
		// searches are synchronous, nothing is running
	case "eval":
		u.println("info string eval", engine.Evaluate(u.board), "white", engine.EvaluateRelative(u.board), "side to move")
	case "stats":
		u.searcher.Stats().Dump(u.out)
	case "d":
		u.println(u.board.String())
		u.println("Fen:", u.board.FEN())
		u.println("Key:", fmt.Sprintf("%016x", u.board.Hash()))
		if u.board.IsGameOver() {
			u.println("Result:", u.board.Result())
		}
	case "quit":
		return false
	default:
		u.println("info string Unknown command:", line)
	}
	return true
}

func (u *uci) position(args []string) {
	if len(args) == 0 {
		u.println("info string Malformed position command")
		return
	}

	var board *rules.Position
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		board = rules.NewPosition()
	case "fen":
		var fields []string
		for len(rest) > 0 && strings.ToLower(rest[0]) != "moves" {
			fields = append(fields, rest[0])
			rest = rest[1:]
		}
		if len(fields) == 0 {
			u.println("info string Invalid fen position")
			return
		}
		var err error
		board, err = rules.ParseFEN(strings.Join(fields, " "))
		if err != nil {
			u.println("info string", err)
			return
		}
	default:
		u.println("info string Invalid position subcommand")
		return
	}
	if len(rest) > 0 && strings.ToLower(rest[0]) == "moves" {
		for _, moveStr := range rest[1:] {
			m, err := board.ParseMove(moveStr)
			if err != nil {
				// keep the previous game rather than half of this one
				u.println("info string Move", moveStr, "not found for position", board.FEN())
				return
			}
			board.Push(m)
		}
	}
	u.board = board
}

func (u *uci) goCommand(args []string) {
	depth := u.defaultDepth
	for i := 0; i < len(args); i++ {
		token := strings.ToLower(args[i])
		switch token {
		case "infinite", "ponder":
			continue
		case "wtime", "btime", "winc", "binc", "movestogo", "movetime", "nodes", "mate":
			// no time management; skip the value
			i++
		case "depth":
			if i+1 >= len(args) {
				u.println("info string Malformed go command option depth")
				continue
			}
			i++
			d, err := strconv.Atoi(args[i])
			if err != nil {
				u.println("info string Malformed go command option; could not convert depth")
				continue
			}
			depth = d
		default:
			u.println("info string Unknown go subcommand", token)
		}
	}

	res, err := u.searcher.Search(u.board, depth)
	if err != nil {
		u.println("info string search failed:", err)
		u.println("bestmove", rules.MoveString(rules.NullMove))
		return
	}
	ms := res.Elapsed.Milliseconds()
	u.println(fmt.Sprintf("info depth %d score cp %d nodes %d time %d nps %d",
		res.Depth, res.Score, res.Stats.Nodes+res.Stats.QNodes, ms, nps(res.Stats.Nodes+res.Stats.QNodes, res.Elapsed)))
	u.println("bestmove", rules.MoveString(res.Move))
}

func nps(nodes uint64, elapsed time.Duration) uint64 {
	if elapsed <= 0 {
		return 0
	}
	return uint64(float64(nodes) / elapsed.Seconds())
}
