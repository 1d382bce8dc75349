package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	gm "chess-influence/goosemg"
	"chess-influence/influence"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const DefaultCellSize = 80

var (
	unowned    = color.RGBA{0, 0, 255, 255}
	background = color.RGBA{255, 255, 255, 255}
	ink        = color.RGBA{0, 0, 0, 255}
	// Piece glyphs: First in white, Second in black.
	glyphColors = [influence.NumSides]color.RGBA{{255, 255, 255, 255}, {0, 0, 0, 255}}
)

// PNGRenderer writes turn_<index>.png files into Dir.
type PNGRenderer struct {
	Dir      string
	CellSize int
}

func NewPNGRenderer(dir string, cellSize int) *PNGRenderer {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &PNGRenderer{Dir: dir, CellSize: cellSize}
}

// Prepare creates Dir, or removes the regular files a previous run left in it.
func (r *PNGRenderer) Prepare() error {
	entries, err := os.ReadDir(r.Dir)
	if os.IsNotExist(err) {
		return errors.Wrapf(os.MkdirAll(r.Dir, 0o755), "create output dir %s", r.Dir)
	}
	if err != nil {
		return errors.Wrapf(err, "read output dir %s", r.Dir)
	}
	removed := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if err := os.Remove(filepath.Join(r.Dir, e.Name())); err != nil {
			return errors.Wrapf(err, "clear output dir %s", r.Dir)
		}
		removed++
	}
	log.Debug().Str("dir", r.Dir).Int("removed", removed).Msg("output dir cleared")
	return nil
}

// Path is the file the frame with the given index is written to.
func (r *PNGRenderer) Path(index int) string {
	return filepath.Join(r.Dir, fmt.Sprintf("turn_%d.png", index))
}

func (r *PNGRenderer) Render(grid *influence.Grid, board *gm.Board, index int) error {
	img := Draw(grid, board, index, r.CellSize)
	path := r.Path(index)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

// CellColor blends white (First) against black (Second) by influence share as
// (share, share, 1-share); squares nobody reaches are blue.
func CellColor(grid *influence.Grid, sq influence.Square) color.RGBA {
	share, ok := grid.Share(sq, influence.First)
	if !ok {
		return unowned
	}
	first := uint8(share*255 + 0.5)
	second := uint8((1-share)*255 + 0.5)
	return color.RGBA{first, first, second, 255}
}

// layout of one frame, in pixels.
type layout struct {
	cell   int
	margin int // left and bottom label bands
	title  int // top title band
}

func (l layout) size() image.Rectangle {
	return image.Rect(0, 0, l.margin+8*l.cell, l.title+8*l.cell+l.margin)
}

// cellRect places row 7 (rank 8) at the top.
func (l layout) cellRect(sq influence.Square) image.Rectangle {
	x := l.margin + sq.Col()*l.cell
	y := l.title + (7-sq.Row())*l.cell
	return image.Rect(x, y, x+l.cell, y+l.cell)
}

// Draw renders one frame in memory.
func Draw(grid *influence.Grid, board *gm.Board, index, cellSize int) *image.RGBA {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	l := layout{cell: cellSize, margin: cellSize / 3, title: cellSize / 2}
	img := image.NewRGBA(l.size())
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	glyphScale := max(1, cellSize/26)
	for sq := influence.Square(0); sq < influence.NumSquares; sq++ {
		r := l.cellRect(sq)
		draw.Draw(img, r, image.NewUniform(CellColor(grid, sq)), image.Point{}, draw.Src)
		p := board.PieceAt(gm.Square(sq))
		if p == gm.NoPiece {
			continue
		}
		drawCentered(img, r, p.Letter(), glyphColors[influence.SideOf(p.Color())], glyphScale)
	}

	labelScale := max(1, cellSize/60)
	for i := 0; i < 8; i++ {
		file := image.Rect(l.margin+i*l.cell, l.title+8*l.cell, l.margin+(i+1)*l.cell, l.title+8*l.cell+l.margin)
		drawCentered(img, file, string(rune('a'+i)), ink, labelScale)
		rank := image.Rect(0, l.title+(7-i)*l.cell, l.margin, l.title+(8-i)*l.cell)
		drawCentered(img, rank, string(rune('1'+i)), ink, labelScale)
	}
	title := image.Rect(0, 0, img.Bounds().Dx(), l.title)
	drawCentered(img, title, fmt.Sprintf("Board State at Move %d", index), ink, labelScale)
	return img
}

// drawCentered writes s in the fixed 7x13 face, magnified by scale, centered in r.
func drawCentered(dst draw.Image, r image.Rectangle, s string, c color.Color, scale int) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, s).Ceil()
	h := face.Metrics().Height.Ceil()
	if w == 0 || h == 0 {
		return
	}
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{Dst: src, Src: image.NewUniform(c), Face: face, Dot: fixed.P(0, face.Metrics().Ascent.Ceil())}
	d.DrawString(s)

	sw, sh := w*scale, h*scale
	x := r.Min.X + (r.Dx()-sw)/2
	y := r.Min.Y + (r.Dy()-sh)/2
	draw.NearestNeighbor.Scale(dst, image.Rect(x, y, x+sw, y+sh), src, src.Bounds(), draw.Over, nil)
}
