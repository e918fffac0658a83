package entity

type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

// BoardSize is the number of cells on a 3x3 board.
const BoardSize = 9

// WinCombos lists the cell triples that win when filled by a single mark.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is one snapshot of the grid in row-major order.
type Board [BoardSize]Mark

// Winner returns the mark that completes a line, or EmptyCell when nobody has.
func (that Board) Winner() Mark {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

func (that Board) IsEmpty() bool {
	return that == Board{}
}

// Strings returns the board as plain strings for rendering.
func (that Board) Strings() [BoardSize]string {
	var cells [BoardSize]string
	for i, mark := range that {
		cells[i] = string(mark)
	}

	return cells
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}
