package game

// CompletedLines counts the fully-called lines on a board: 5 rows, 5
// columns and both diagonals, 12 candidates in total. It also returns the
// numbers belonging to those lines, in check order (rows, columns, main
// diagonal, anti diagonal) and with duplicates, for client-side
// highlighting.
func CompletedLines(b Board, called map[int]bool) (int, []int) {
	completed := 0
	numbers := []int{}

	for r := 0; r < BoardSize; r++ {
		if lineCalled(b[r][:], called) {
			completed++
			numbers = append(numbers, b[r][:]...)
		}
	}
	for c := 0; c < BoardSize; c++ {
		col := make([]int, BoardSize)
		for r := 0; r < BoardSize; r++ {
			col[r] = b[r][c]
		}
		if lineCalled(col, called) {
			completed++
			numbers = append(numbers, col...)
		}
	}

	diag := make([]int, BoardSize)
	for i := 0; i < BoardSize; i++ {
		diag[i] = b[i][i]
	}
	if lineCalled(diag, called) {
		completed++
		numbers = append(numbers, diag...)
	}
	for i := 0; i < BoardSize; i++ {
		diag[i] = b[i][BoardSize-1-i]
	}
	if lineCalled(diag, called) {
		completed++
		numbers = append(numbers, diag...)
	}

	return completed, numbers
}

func lineCalled(line []int, called map[int]bool) bool {
	for _, n := range line {
		if !called[n] {
			return false
		}
	}
	return true
}
