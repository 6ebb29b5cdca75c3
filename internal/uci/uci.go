// Package uci drives the rules engine over a line protocol modelled on the
// Universal Chess Interface.
package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/engine"
	"github.com/hailam/chessrules/internal/perft"
)

// UCI implements the protocol loop.
type UCI struct {
	engine   *engine.Engine
	position *board.Position

	out   io.Writer
	diag  io.Writer
	outMu sync.Mutex

	// Search state
	searchDone chan struct{}
	cancel     context.CancelFunc
}

// New creates a protocol handler writing responses to out. Diagnostics go
// to stderr.
func New(eng *engine.Engine, out io.Writer) *UCI {
	return &UCI{
		engine:   eng,
		position: board.NewPosition(),
		out:      out,
		diag:     os.Stderr,
	}
}

// Run reads commands from in until "quit" or end of input.
func (u *UCI) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	defer u.waitSearch()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.waitSearch()
			u.println("readyok")
		case "ucinewgame":
			u.handleStop()
			u.position = board.NewPosition()
		case "position":
			u.handleStop()
			u.handlePosition(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "quit":
			u.handleStop()
			return nil
		case "setoption":
			u.handleSetOption(args)
		// Debug commands
		case "d":
			u.println(u.position.String())
			u.printf("Fen: %s\n", u.position.ToFEN())
		case "moves":
			u.handleMoves()
		case "status":
			u.printf("status %s check %v\n", u.position.Status(), u.position.InCheck())
		case "perft":
			u.handlePerft(args)
		default:
			u.info("Unknown command: %s", cmd)
		}
	}

	return scanner.Err()
}

func (u *UCI) println(s string) {
	u.outMu.Lock()
	defer u.outMu.Unlock()
	fmt.Fprintln(u.out, s)
}

func (u *UCI) printf(format string, args ...any) {
	u.outMu.Lock()
	defer u.outMu.Unlock()
	fmt.Fprintf(u.out, format, args...)
}

func (u *UCI) info(format string, args ...any) {
	fmt.Fprintf(u.diag, "info string "+format+"\n", args...)
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	u.println("id name ChessRules")
	u.println("id author ChessRules Team")
	u.println("")
	u.println("option name Threads type spin default 1 min 1 max 256")
	u.println("uciok")
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := slices.Index(args, "moves")
	if movesAt < 0 {
		movesAt = len(args)
	}

	var pos *board.Position
	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
	case "fen":
		var err error
		pos, err = board.ParseFEN(strings.Join(args[1:movesAt], " "))
		if err == nil {
			err = pos.Validate()
		}
		if err != nil {
			u.info("Invalid FEN: %v", err)
			return
		}
	default:
		return
	}

	if movesAt < len(args) {
		for _, moveStr := range args[movesAt+1:] {
			m, err := pos.ParseMove(moveStr)
			if err != nil {
				u.info("Invalid move: %s", moveStr)
				return
			}
			pos.ApplyMove(m)
		}
	}

	u.position = pos
}

// GoOptions holds parsed "go" command options.
type GoOptions struct {
	Depth int
	Nodes uint64
	Perft int
}

func parseGoOptions(args []string) GoOptions {
	opts := GoOptions{}

	for i := 0; i+1 < len(args); i++ {
		switch args[i] {
		case "depth":
			opts.Depth, _ = strconv.Atoi(args[i+1])
			i++
		case "nodes":
			opts.Nodes, _ = strconv.ParseUint(args[i+1], 10, 64)
			i++
		case "perft":
			opts.Perft, _ = strconv.Atoi(args[i+1])
			i++
		}
	}

	return opts
}

// handleGo starts a search, or runs perft for "go perft N".
func (u *UCI) handleGo(args []string) {
	opts := parseGoOptions(args)
	if opts.Perft > 0 {
		u.runPerft(opts.Perft)
		return
	}

	u.handleStop()

	u.engine.OnInfo = u.sendInfo

	ctx, cancel := context.WithCancel(context.Background())
	u.cancel = cancel
	u.searchDone = make(chan struct{})

	pos := u.position.Copy()
	limits := engine.SearchLimits{Depth: opts.Depth, Nodes: opts.Nodes}

	go func() {
		defer close(u.searchDone)
		defer cancel()

		bestMove := u.engine.Search(ctx, pos, limits)
		if bestMove == board.NoMove {
			// Only when there is no legal move or the search was stopped
			// before depth 1 finished.
			if legal := pos.GenerateLegalMoves(); legal.Len() > 0 {
				bestMove = legal.Get(0)
			}
		}
		u.printf("bestmove %s\n", bestMove.UCI())
	}()
}

// sendInfo prints one iteration of the search.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	parts := []string{fmt.Sprintf("depth %d", info.Depth)}

	if engine.IsMateScore(info.Score) {
		remaining := info.Score - engine.MateScore
		sign := 1
		if info.Score < 0 {
			remaining = -info.Score - engine.MateScore
			sign = -1
		}
		plies := info.Depth - remaining
		parts = append(parts, fmt.Sprintf("score mate %d", sign*(plies+1)/2))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %d", info.Score*100))
	}

	parts = append(parts,
		fmt.Sprintf("nodes %d", info.Nodes),
		fmt.Sprintf("time %d", info.Time.Milliseconds()),
	)

	if len(info.PV) > 0 {
		pv := make([]string, len(info.PV))
		for i, m := range info.PV {
			pv[i] = m.UCI()
		}
		parts = append(parts, "pv "+strings.Join(pv, " "))
	}

	u.printf("info %s\n", strings.Join(parts, " "))
}

// handleStop cancels a running search and waits for its bestmove.
func (u *UCI) handleStop() {
	if u.cancel != nil {
		u.engine.Stop()
		u.cancel()
	}
	u.waitSearch()
}

func (u *UCI) waitSearch() {
	if u.searchDone != nil {
		<-u.searchDone
		u.searchDone = nil
		u.cancel = nil
	}
}

// handleSetOption handles "setoption name <name> value <value>".
func (u *UCI) handleSetOption(args []string) {
	var name, value []string
	var target *[]string
	for _, arg := range args {
		switch arg {
		case "name":
			target = &name
		case "value":
			target = &value
		default:
			if target != nil {
				*target = append(*target, arg)
			}
		}
	}

	switch strings.ToLower(strings.Join(name, " ")) {
	case "threads":
		n, err := strconv.Atoi(strings.Join(value, " "))
		if err != nil || n < 1 {
			u.info("Invalid Threads value: %s", strings.Join(value, " "))
			return
		}
		u.handleStop()
		u.engine.SetWorkers(n)
	default:
		u.info("Unknown option: %s", strings.Join(name, " "))
	}
}

// handleMoves lists the legal moves in canonical order.
func (u *UCI) handleMoves() {
	moves := u.position.GenerateLegalMoves()
	moves.Sort()
	u.printf("moves %s\n", strings.Join(moves.Strings(), " "))
}

// handlePerft handles the "perft N" debug command.
func (u *UCI) handlePerft(args []string) {
	if len(args) == 0 {
		u.info("perft needs a depth")
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 1 {
		u.info("Invalid perft depth: %s", args[0])
		return
	}
	u.runPerft(depth)
}

func (u *UCI) runPerft(depth int) {
	u.waitSearch()
	start := time.Now()
	entries := perft.Divide(u.position, depth)
	elapsed := time.Since(start)

	for _, e := range entries {
		u.printf("%s: %d\n", e.Move.UCI(), e.Nodes)
	}
	nodes := perft.Total(entries)
	u.printf("\nNodes searched: %d\n", nodes)
	if secs := elapsed.Seconds(); secs > 0 {
		u.info("time %v nps %.0f", elapsed, float64(nodes)/secs)
	}
}
