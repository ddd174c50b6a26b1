package game

const (
	// BoardSize is the side length of a bingo board.
	BoardSize = 5
	// PoolSize is the number of values shared by both boards in a room.
	PoolSize = BoardSize * BoardSize
	// MaxNumber is the upper bound (inclusive) for pool values.
	MaxNumber = 99
	// WinningLines is how many completed lines end the game.
	WinningLines = 5
)

// Pool is the ordered 25-number universe of a room. Both players' boards
// are permutations of the same pool.
type Pool []int

// Board is a player's private 5x5 arrangement of the room pool.
type Board [BoardSize][BoardSize]int

// Cell addresses one board position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether the cell lies on a 5x5 board.
func (c Cell) InBounds() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// Rows returns the board as row slices, the shape the HTTP and websocket
// payloads carry.
func (b Board) Rows() [][]int {
	out := make([][]int, BoardSize)
	for r := 0; r < BoardSize; r++ {
		row := make([]int, BoardSize)
		copy(row, b[r][:])
		out[r] = row
	}
	return out
}
