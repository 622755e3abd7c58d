package autocrop

import "testing"

type samplerFunc func(primary, secondary int) Color

func (f samplerFunc) At(primary, secondary int) Color { return f(primary, secondary) }

// gridSampler serves rows[secondary][primary] and fails the test on any
// read outside the grid.
func gridSampler(t *testing.T, rows [][]Color) samplerFunc {
	t.Helper()
	return func(primary, secondary int) Color {
		if secondary < 0 || secondary >= len(rows) || primary < 0 || primary >= len(rows[secondary]) {
			t.Fatalf("sample (%d,%d) outside %dx%d grid", primary, secondary, len(rows[0]), len(rows))
		}
		return rows[secondary][primary]
	}
}

// stripes builds a grid of the given height whose column i has colors[i].
func stripes(height int, colors ...Color) [][]Color {
	rows := make([][]Color, height)
	for y := range rows {
		rows[y] = append([]Color(nil), colors...)
	}
	return rows
}

var (
	black = RGB(0, 0, 0)
	white = RGB(255, 255, 255)
	red   = RGB(255, 0, 0)
	green = RGB(0, 255, 0)
)

func TestFindBorderSize(t *testing.T) {
	tests := []struct {
		name string
		rows [][]Color
		want int
	}{
		{
			"first mismatch on probe lines",
			stripes(4, black, black, black, white, white, white),
			3,
		},
		{
			"uniform probe lines",
			stripes(4, black, black, black, black),
			0,
		},
		{
			"corners disagree",
			[][]Color{
				{black, black, white},
				{black, black, white},
				{white, black, white},
			},
			0,
		},
		{
			"mismatch on far probe line only",
			[][]Color{
				{black, black, black, black, black},
				{black, black, black, black, black},
				{black, black, white, black, black},
			},
			2,
		},
		{
			"mismatch at the last column",
			stripes(3, black, black, black, black, white),
			4,
		},
		{
			"near colors stay in the border",
			stripes(3, black, RGB(4, 4, 4), RGB(3, 1, 2), RGB(5, 0, 0)),
			3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanSize := len(tt.rows[0]) - 1
			secondary := len(tt.rows) - 1
			got := FindBorderSize(scanSize, secondary, gridSampler(t, tt.rows))
			if got != tt.want {
				t.Errorf("FindBorderSize = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFindBorder(t *testing.T) {
	tests := []struct {
		name string
		rows [][]Color
		want int
	}{
		{
			"verified strip",
			stripes(5, black, black, white, red, green),
			2,
		},
		{
			"interior pixel shortens the strip",
			[][]Color{
				{black, black, black, white},
				{black, black, black, white},
				{black, black, red, white},
				{black, black, black, white},
			},
			2,
		},
		{
			"interior pixel in the first column",
			[][]Color{
				{black, black, black, white},
				{red, black, black, white},
				{black, black, black, white},
			},
			0,
		},
		{
			"no candidate",
			stripes(3, black, black, black),
			0,
		},
		{
			"corners disagree",
			[][]Color{
				{black, white},
				{red, white},
			},
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scanSize := len(tt.rows[0]) - 1
			secondary := len(tt.rows) - 1
			got := FindBorder(scanSize, secondary, gridSampler(t, tt.rows))
			if got != tt.want {
				t.Errorf("FindBorder = %d, want %d", got, tt.want)
			}
			if got < 0 || got > scanSize {
				t.Errorf("FindBorder = %d outside 0..%d", got, scanSize)
			}
		})
	}
}

func TestFindBorder_ZeroScanSize(t *testing.T) {
	rows := stripes(3, black)
	if got := FindBorder(0, 2, gridSampler(t, rows)); got != 0 {
		t.Errorf("FindBorder with scanSize 0 = %d, want 0", got)
	}
}

func TestFindBorder_SingleLine(t *testing.T) {
	rows := [][]Color{{black, black, white}}
	if got := FindBorder(2, 0, gridSampler(t, rows)); got != 2 {
		t.Errorf("FindBorder on a single line = %d, want 2", got)
	}
}
