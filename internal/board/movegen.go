package board

import "log"

var promotionTypes = [4]PieceType{Queen, Rook, Bishop, Knight}

// GenerateLegalMoves generates all legal moves for the side to move.
// It panics if the side to move has no king.
func (p *Position) GenerateLegalMoves() *MoveList {
	return p.filterLegalMoves(p.GeneratePseudoLegalMoves())
}

// GeneratePseudoLegalMoves generates every move the side to move's pieces
// can make by their movement rules, including ones that leave the own king
// attacked. Castling is already fully checked here.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	for sq := A1; sq <= H8; sq++ {
		if pc := p.Board[sq]; pc != NoPiece && pc.Color() == p.SideToMove {
			p.generatePieceMoves(ml, sq)
		}
	}
	return ml
}

// GenerateMovesFrom returns the legal moves of the piece standing on sq.
// The list is empty if sq is empty or holds a piece of the side not to move.
func (p *Position) GenerateMovesFrom(sq Square) *MoveList {
	ml := NewMoveList()
	if pc := p.PieceAt(sq); pc != NoPiece && pc.Color() == p.SideToMove {
		p.generatePieceMoves(ml, sq)
	}
	return p.filterLegalMoves(ml)
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	ml := p.GeneratePseudoLegalMoves()
	ksq := p.kingSquareOrPanic()
	for _, m := range ml.Slice() {
		if p.isLegal(m, ksq) {
			return true
		}
	}
	return false
}

func (p *Position) generatePieceMoves(ml *MoveList, from Square) {
	switch p.Board[from].Type() {
	case Pawn:
		p.generatePawnMoves(ml, from)
	case Knight:
		p.generateKnightMoves(ml, from)
	case Bishop:
		p.generateSliderMoves(ml, from, 0, 4)
	case Rook:
		p.generateSliderMoves(ml, from, 4, 8)
	case Queen:
		p.generateSliderMoves(ml, from, 0, 8)
	case King:
		p.generateKingMoves(ml, from)
	}
}

func (p *Position) generatePawnMoves(ml *MoveList, from Square) {
	pawn := p.Board[from]
	us := pawn.Color()
	fwd := us.forward()
	lastRank, startRank := 7, 1
	if us == Black {
		lastRank, startRank = 0, 6
	}

	addPawnMove := func(to Square, captured Piece) {
		if to.Rank() != lastRank {
			if captured == NoPiece {
				ml.Add(NewMove(pawn, from, to))
			} else {
				ml.Add(NewCapture(pawn, from, to, captured))
			}
			return
		}
		for _, pt := range promotionTypes {
			ml.Add(NewPromotion(pawn, from, to, NewPiece(pt, us), captured))
		}
	}

	if one, ok := from.Offset(0, fwd); ok && p.IsEmpty(one) {
		addPawnMove(one, NoPiece)
		if from.Rank() == startRank {
			if two, ok := from.Offset(0, 2*fwd); ok && p.IsEmpty(two) {
				ml.Add(NewMove(pawn, from, two))
			}
		}
	}

	for _, df := range [2]int{-1, 1} {
		to, ok := from.Offset(df, fwd)
		if !ok {
			continue
		}
		if target := p.Board[to]; target != NoPiece {
			if target.Color() != us {
				addPawnMove(to, target)
			}
			continue
		}
		if to != p.EnPassant || us != p.SideToMove {
			continue
		}
		// The pawn that just double-pushed stands beside us, behind the
		// en passant square.
		victimSq := NewSquare(to.File(), from.Rank())
		if victim := p.Board[victimSq]; victim == NewPiece(Pawn, us.Other()) {
			ml.Add(NewEnPassant(pawn, from, to, victimSq, victim))
		}
	}
}

func (p *Position) generateKnightMoves(ml *MoveList, from Square) {
	for _, d := range knightOffsets {
		if to, ok := from.Offset(d.df, d.dr); ok {
			p.addStep(ml, from, to)
		}
	}
}

// generateSliderMoves walks rayDirections[lo:hi] from the origin until the
// board edge or the first occupied square, which is captured if hostile.
func (p *Position) generateSliderMoves(ml *MoveList, from Square, lo, hi int) {
	for _, d := range rayDirections[lo:hi] {
		for dist := 1; ; dist++ {
			to, ok := from.Offset(d.df*dist, d.dr*dist)
			if !ok || !p.addStep(ml, from, to) {
				break
			}
		}
	}
}

func (p *Position) generateKingMoves(ml *MoveList, from Square) {
	for _, d := range rayDirections {
		if to, ok := from.Offset(d.df, d.dr); ok {
			p.addStep(ml, from, to)
		}
	}
	p.generateCastlingMoves(ml, from)
}

// addStep adds a quiet move or capture to an adjacent or ray square. It
// returns true if the square was empty, so a slider may continue past it.
func (p *Position) addStep(ml *MoveList, from, to Square) bool {
	pc := p.Board[from]
	target := p.Board[to]
	if target == NoPiece {
		ml.Add(NewMove(pc, from, to))
		return true
	}
	if target.Color() != pc.Color() {
		ml.Add(NewCapture(pc, from, to, target))
	}
	return false
}

// generateCastlingMoves adds castles whose right is held, whose squares
// between king and rook are empty, and whose king neither starts on, passes
// through, nor lands on an attacked square.
func (p *Position) generateCastlingMoves(ml *MoveList, from Square) {
	king := p.Board[from]
	us := king.Color()
	home := E1
	if us == Black {
		home = E8
	}
	if from != home {
		return
	}
	them := us.Other()

	for _, kingSide := range [2]bool{true, false} {
		right := castleRight(us, kingSide)
		if p.CastlingRights&right == 0 {
			continue
		}
		rookSq := rookHome[right]
		if p.Board[rookSq] != NewPiece(Rook, us) {
			continue
		}

		step := 1
		if !kingSide {
			step = -1
		}
		clear := true
		for sq, _ := from.Offset(step, 0); sq != rookSq; sq, _ = sq.Offset(step, 0) {
			if !p.IsEmpty(sq) {
				clear = false
				break
			}
		}
		if !clear {
			continue
		}

		transit, _ := from.Offset(step, 0)
		dest, _ := from.Offset(2*step, 0)
		if p.IsSquareAttacked(from, them) || p.IsSquareAttacked(transit, them) || p.IsSquareAttacked(dest, them) {
			continue
		}
		ml.Add(NewMove(king, from, dest))
	}
}

func (p *Position) kingSquareOrPanic() Square {
	ksq := p.KingSquare[p.SideToMove]
	if ksq == NoSquare || p.Board[ksq] != NewPiece(King, p.SideToMove) {
		log.Panicf("movegen: no %v king in position %s", p.SideToMove, p.ToFEN())
	}
	return ksq
}

// isLegal plays m on a scratch copy and reports whether the mover's king
// is safe afterwards.
func (p *Position) isLegal(m Move, ksq Square) bool {
	scratch := *p
	scratch.ApplyMove(m)
	if m.Piece.Is(King) {
		ksq = m.To
	}
	return !scratch.IsSquareAttacked(ksq, p.SideToMove.Other())
}

// filterLegalMoves keeps the moves that do not leave the mover in check.
func (p *Position) filterLegalMoves(ml *MoveList) *MoveList {
	legal := NewMoveList()
	if ml.Len() == 0 {
		return legal
	}
	ksq := p.kingSquareOrPanic()
	for _, m := range ml.Slice() {
		if p.isLegal(m, ksq) {
			legal.Add(m)
		}
	}
	return legal
}
