package engine

import (
	"fmt"
	"io"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"chess-negamax/rules"
)

// Infinity bounds every score. Its negation is representable.
const Infinity = math.MaxInt32

// Options configures a search session.
type Options struct {
	// DisableTT turns the transposition table off. Scores do not change,
	// only the amount of work.
	DisableTT bool

	// Logger receives one line per completed search. Nil discards.
	Logger *log.Logger
}

func DefaultOptions() Options {
	return Options{}
}

// Searcher is one search session. Its transposition table survives from one
// move decision to the next until Reset is called. A Searcher runs one
// search at a time and must not be shared between goroutines.
type Searcher struct {
	id     uuid.UUID
	tt     *TransTable
	logger *log.Logger
	stats  Stats

	// ply counts moves pushed by the running search, so a failed search can
	// hand the board back as it was given.
	ply int
}

func NewSearcher(opts Options) *Searcher {
	s := &Searcher{id: uuid.New(), logger: opts.Logger}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	if !opts.DisableTT {
		s.tt = NewTransTable()
	}
	return s
}

// ID identifies the session in log output.
func (s *Searcher) ID() string { return s.id.String() }

// TT returns the session table, nil when disabled.
func (s *Searcher) TT() *TransTable { return s.tt }

// Stats returns the counters of the last search.
func (s *Searcher) Stats() Stats { return s.stats }

// Reset ends the session: the table is emptied and counters zeroed.
func (s *Searcher) Reset() {
	if s.tt != nil {
		s.tt.Clear()
	}
	s.stats = Stats{}
	s.logger.Printf("session %s: reset", s.id)
}

// Result describes a finished root search.
type Result struct {
	Move rules.Move
	// Found is false when the root position has no legal move; Move is then
	// rules.NullMove and Score is meaningless.
	Found   bool
	Score   int
	Depth   int
	Stats   Stats
	Elapsed time.Duration
}

// FindBestMove searches every legal move to depth plies and returns the best
// one, or rules.NullMove when there is none.
func (s *Searcher) FindBestMove(b Board, depth int) (rules.Move, error) {
	res, err := s.Search(b, depth)
	if err != nil {
		return rules.NullMove, err
	}
	return res.Move, nil
}

// Search runs the root move loop. Every root move is searched with the full
// window; only the inner nodes narrow it. Ties keep the first move in rules
// engine order.
func (s *Searcher) Search(b Board, depth int) (res Result, err error) {
	if depth < 1 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidDepth, depth)
	}

	s.stats = Stats{}
	s.ply = 0
	defer s.recoverContract(b, &err)

	start := time.Now()
	bestScore := -Infinity
	bestMove := rules.NullMove
	found := false
	alpha, beta := -Infinity, Infinity

	for _, move := range b.LegalMoves() {
		s.push(b, move)
		score := -s.Negamax(b, depth-1, -beta, -alpha)
		s.pop(b)

		if score > bestScore {
			bestScore = score
			bestMove = move
			found = true
		}
	}

	res = Result{
		Move:    bestMove,
		Found:   found,
		Score:   bestScore,
		Depth:   depth,
		Stats:   s.stats,
		Elapsed: time.Since(start),
	}
	s.logSearch(res)
	return res, nil
}

func (s *Searcher) logSearch(res Result) {
	ttSize := 0
	if s.tt != nil {
		ttSize = s.tt.Len()
	}
	s.logger.Printf("session %s: depth %d bestmove %s score %d nodes %d qnodes %d tt %d time %v",
		s.id, res.Depth, rules.MoveString(res.Move), res.Score,
		res.Stats.Nodes, res.Stats.QNodes, ttSize, res.Elapsed)
}

// recoverContract turns a contract panic raised deep in the tree into an
// error and takes back the moves that were still on the board.
func (s *Searcher) recoverContract(b Board, err *error) {
	r := recover()
	if r == nil {
		return
	}
	cerr, ok := r.(*ContractError)
	if !ok {
		panic(r)
	}
	for s.ply > 0 {
		s.pop(b)
	}
	s.logger.Printf("session %s: %v", s.id, cerr)
	*err = cerr
}

func (s *Searcher) push(b Board, move rules.Move) {
	b.Push(move)
	s.ply++
}

func (s *Searcher) pop(b Board) {
	b.Pop()
	s.ply--
}

// Negamax returns the score of b from the side to move's point of view.
// A non-terminal position without legal moves panics with *ContractError;
// Search turns that into an error.
func (s *Searcher) Negamax(b Board, depth, alpha, beta int) int {
	s.stats.Nodes++
	originalAlpha := alpha
	hash := b.Hash()

	if s.tt != nil {
		if entry, ok := s.tt.Probe(hash); ok && entry.Depth >= depth {
			s.stats.TTHits++
			switch entry.Flag {
			case ExactFlag:
				s.stats.TTCutoffs++
				return entry.Score
			case LowerFlag:
				alpha = Max(alpha, entry.Score)
			case UpperFlag:
				beta = Min(beta, entry.Score)
			}
			if alpha >= beta {
				s.stats.TTCutoffs++
				return entry.Score
			}
		}
	}

	if depth <= 0 || b.IsGameOver() {
		return s.Quiescence(b, alpha, beta)
	}

	moves := b.LegalMoves()
	if len(moves) == 0 {
		panic(&ContractError{Hash: hash, Depth: depth})
	}

	bestScore := -Infinity
	for _, move := range moves {
		s.push(b, move)
		score := -s.Negamax(b, depth-1, -beta, -alpha)
		s.pop(b)

		bestScore = Max(bestScore, score)
		alpha = Max(alpha, score)
		if alpha >= beta {
			s.stats.BetaCutoffs++
			break
		}
	}

	if s.tt != nil {
		flag := UpperFlag
		if bestScore >= beta {
			flag = LowerFlag
		} else if bestScore > originalAlpha {
			flag = ExactFlag
		}
		s.tt.Store(hash, TTEntry{Score: bestScore, Depth: depth, Flag: flag})
	}
	return bestScore
}

// Quiescence follows captures only until the position is quiet. The side to
// move may always stand pat instead of capturing. Fail-hard: the result is
// clamped to [alpha, beta].
func (s *Searcher) Quiescence(b Board, alpha, beta int) int {
	s.stats.QNodes++

	standPat := EvaluateRelative(b)
	if standPat >= beta {
		s.stats.QStandPatCutoffs++
		return beta
	}
	alpha = Max(alpha, standPat)

	for _, move := range b.LegalMoves() {
		if !b.IsCapture(move) {
			continue
		}
		s.push(b, move)
		score := -s.Quiescence(b, -beta, -alpha)
		s.pop(b)

		if score >= beta {
			s.stats.QBetaCutoffs++
			return beta
		}
		alpha = Max(alpha, score)
	}
	return alpha
}
