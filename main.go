// Hotseat console mode: two players at one terminal, same rules as the
// server. Useful for trying the game logic without a frontend.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"bingo-server/internal/game"
	"bingo-server/internal/room"
	"bingo-server/internal/store"

	"go.uber.org/zap"
)

func main() {
	logger := zap.NewNop()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rm := room.NewManager(store.NewMemoryStore(), logger, rng)

	r, p1, err := rm.Join("p1", "Player 1", room.JoinRequest{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	_, p2, err := rm.Join("p2", "Player 2", room.JoinRequest{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	players := []*room.Player{p1, p2}
	reader := bufio.NewReader(os.Stdin)
	turn := 0

	fmt.Printf("Room %s. Enter \"row col\" (1-5) to call that cell, or press enter for a random pick.\n", r.Code)
	for {
		cur, ok := rm.Get(r.Code)
		if !ok || cur.Status == room.StatusFinished {
			break
		}
		p := players[turn]
		fmt.Printf("\n%s's board:\n", p.Name)
		printBoard(p, cur.Called)
		fmt.Print("> ")

		line, _ := reader.ReadString('\n')
		cell, err := parseCell(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if err := rm.ApplyMove(r.Code, p.ID, cell); err != nil {
			fmt.Println("rejected:", err)
			continue
		}
		turn = 1 - turn
	}

	final, ok := rm.Get(r.Code)
	if ok && final.WinnerID != nil {
		for _, p := range players {
			if p.ID == *final.WinnerID {
				fmt.Printf("\n%s wins!\n", p.Name)
			}
		}
	}
}

func parseCell(line string) (*game.Cell, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil, nil // auto-pick
	}
	if len(parts) != 2 {
		return nil, fmt.Errorf("expected \"row col\" or an empty line")
	}
	row, err1 := strconv.Atoi(parts[0])
	col, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return nil, fmt.Errorf("row and col must be numbers")
	}
	return &game.Cell{Row: row - 1, Col: col - 1}, nil
}

func printBoard(p *room.Player, called []int) {
	calledSet := map[int]bool{}
	for _, n := range called {
		calledSet[n] = true
	}
	for r := 0; r < game.BoardSize; r++ {
		for c := 0; c < game.BoardSize; c++ {
			n := p.Board[r][c]
			if calledSet[n] {
				fmt.Printf("[%2d] ", n)
			} else {
				fmt.Printf(" %2d  ", n)
			}
		}
		fmt.Println()
	}
	count, _ := game.CompletedLines(p.Board, calledSet)
	fmt.Printf("completed lines: %d (need %d)\n", count, game.WinningLines)
}
