package mines

import "strconv"

// Content is what a tile holds: either [Mine] or a danger count 0..8 of
// mined neighbours.
type Content int8

const Mine Content = -1

// Danger returns the content of a safe tile with k mined neighbours.
func Danger(k int) Content {
	if k < 0 || k > 8 {
		panic(AssertionError{"danger count out of range: " + strconv.Itoa(k)})
	}
	return Content(k)
}

func (c Content) IsMine() bool {
	return c == Mine
}

// Danger reports the neighbour mine count of a safe tile. ok is false for
// mines.
func (c Content) Danger() (k int, ok bool) {
	if c == Mine {
		return 0, false
	}
	return int(c), true
}

func (c Content) String() string {
	if c == Mine {
		return "*"
	}
	return strconv.Itoa(int(c))
}

// Flag is the marker a player puts on a hidden tile.
type Flag uint8

const (
	NoFlag Flag = iota
	MineFlag
	QuestionFlag
)

func (f Flag) String() string {
	switch f {
	case MineFlag:
		return "mine"
	case QuestionFlag:
		return "question"
	default:
		return "none"
	}
}

// square is the stored state of one tile. Callers read it through
// [Minefield.TileIsHidden], [Minefield.TileContent] and [Minefield.TileFlag].
type square struct {
	hidden  bool
	content Content
	flag    Flag
}

func (t *square) clear() {
	t.hidden = true
	t.content = Danger(0)
	t.flag = NoFlag
}
