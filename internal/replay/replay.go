// Package replay plays recorded games through the rules engine. Games are
// read with a third-party PGN reader; every move it produces must also be
// one of the moves this engine generates, which makes replay a check on
// the generators as much as a convenience.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/corentings/chess/v2"

	"github.com/hailam/chessrules/internal/board"
)

// ErrIllegalMove is returned when a recorded move is not among the legal
// moves generated for the position it was played in.
var ErrIllegalMove = errors.New("move not generated")

// Result summarises a replayed game.
type Result struct {
	FEN     string       // final position
	Plies   int          // moves played
	Status  board.Status // status of the final position
	Outcome string       // result recorded in the game ("1-0", "0-1", "1/2-1/2" or "*")
	Moves   []board.Move
}

// Game reads one game from r and replays it from the standard start or from
// the position in its FEN tag.
func Game(r io.Reader) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read PGN: %w", err)
	}
	// The reader only recognises a game by its tag section.
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		data = append([]byte("[Event \"?\"]\n\n"), data...)
	}

	opt, err := chess.PGN(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read PGN: %w", err)
	}
	game := chess.NewGame(opt)

	pos := board.NewPosition()
	if fen := game.GetTagPair("FEN"); fen != "" {
		pos, err = board.ParseFEN(fen)
		if err != nil {
			return nil, err
		}
		if err := pos.Validate(); err != nil {
			return nil, err
		}
	}

	res := &Result{Outcome: outcome(game)}
	for i, gm := range game.Moves() {
		uci := chess.UCINotation{}.Encode(nil, gm)
		m, err := pos.ParseMove(uci)
		if err != nil {
			return nil, fmt.Errorf("%w: ply %d (%s) in %s", ErrIllegalMove, i+1, uci, pos.ToFEN())
		}
		pos.ApplyMove(m)
		res.Moves = append(res.Moves, m)
	}

	res.FEN = pos.ToFEN()
	res.Plies = len(res.Moves)
	res.Status = pos.Status()
	return res, nil
}

// outcome is the result the game records, from its movetext or its Result
// tag, or "*" when there is none.
func outcome(game *chess.Game) string {
	if o := game.Outcome(); o != "" {
		return string(o)
	}
	if tag := game.GetTagPair("Result"); tag != "" {
		return tag
	}
	return string(chess.NoOutcome)
}
