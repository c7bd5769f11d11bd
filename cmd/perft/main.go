// Command perft counts move-generator leaf nodes from a position, the
// standard way to catch move generation bugs: run it against a known
// position and compare against published node counts.
//
// Example:
//
//	perft -fen startpos -depth 5
//	perft -fen kiwipete -depth 4 -divide
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/pkg/profile"

	_ "github.com/castleforge/chesscore/internal/attack"
	"github.com/castleforge/chesscore/internal/board"
	"github.com/castleforge/chesscore/internal/movegen"
)

var known = map[string]string{
	"startpos": board.StartFEN,
	"kiwipete": "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"duplain":  "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
}

func main() {
	fenFlag := flag.String("fen", "startpos", "FEN to search, or one of: startpos, kiwipete, duplain")
	depth := flag.Int("depth", 5, "search depth")
	divide := flag.Bool("divide", false, "print node counts split by the first move")
	cpuProfile := flag.Bool("cpuprofile", false, "write a CPU profile (cpu.pprof) for the run")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	fen := *fenFlag
	if s, ok := known[fen]; ok {
		fen = s
	}

	b, err := board.ParseFEN(fen)
	if err != nil {
		log.Fatalf("parsing FEN %q: %v", fen, err)
	}

	fmt.Printf("searching %q to depth %d\n", fen, *depth)
	start := time.Now()

	var nodes int64
	if *divide {
		nodes = runDivide(b, *depth)
	} else {
		nodes = perft(b, *depth)
	}

	elapsed := time.Since(start)
	knps := float64(nodes) / elapsed.Seconds() / 1000
	fmt.Printf("nodes: %d  elapsed: %v  %.0f Knps\n", nodes, elapsed, knps)
}

func perft(b *board.Board, depth int) int64 {
	if depth == 0 {
		return 1
	}
	moves := movegen.GenerateLegalMoves(b)
	if depth == 1 {
		return int64(moves.Len())
	}
	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		b.ApplyMove(m)
		nodes += perft(b, depth-1)
		b.PopMove()
	}
	return nodes
}

func runDivide(b *board.Board, depth int) int64 {
	moves := movegen.GenerateLegalMoves(b)
	var total int64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		b.ApplyMove(m)
		n := perft(b, depth-1)
		b.PopMove()
		fmt.Printf("%-6s %d\n", m, n)
		total += n
	}
	return total
}
