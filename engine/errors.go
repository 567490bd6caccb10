package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDepth is returned for a search depth below one ply.
	ErrInvalidDepth = errors.New("search depth must be at least 1")

	// ErrRulesContract means the rules engine reported a non-terminal
	// position without legal moves.
	ErrRulesContract = errors.New("rules engine contract violation")
)

// ContractError carries the position where the rules engine broke its
// contract. It unwraps to ErrRulesContract.
type ContractError struct {
	Hash  uint64
	Depth int
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%v: position %016x has no legal moves but is not over (depth %d)", ErrRulesContract, e.Hash, e.Depth)
}

func (e *ContractError) Unwrap() error { return ErrRulesContract }
