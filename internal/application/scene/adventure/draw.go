package adventure

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/adventure/internal/application/convo"
	"github.com/younwookim/adventure/internal/domain/entity"
)

// Colors for rendering
var (
	colorBG       = color.RGBA{26, 26, 46, 255}
	colorActor    = color.RGBA{100, 200, 100, 255}
	colorMain     = color.RGBA{100, 100, 200, 255}
	colorShadow   = color.RGBA{0, 0, 0, 80}
	colorPoint    = color.RGBA{255, 215, 0, 255}
	colorEdge     = color.RGBA{200, 200, 100, 128}
	colorMenu     = color.RGBA{0, 0, 0, 180}
	colorMenuUsed = color.RGBA{60, 60, 60, 200}
	colorOverlay  = color.RGBA{0, 0, 0, 128}
)

// Debug font metrics
const (
	glyphW    = 6
	rowHeight = 16
	menuX     = 20
	menuPad   = 10
)

// toScreen converts world coordinates (y up) to screen coordinates (y down)
func (s *Scene) toScreen(x, y float64) (float64, float64) {
	return x - s.camera.X, float64(s.screenH) - (y - s.camera.Y)
}

// toWorld converts screen coordinates back to world coordinates
func (s *Scene) toWorld(sx, sy float64) (float64, float64) {
	return sx + s.camera.X, float64(s.screenH) - sy + s.camera.Y
}

// menuTop returns the screen y of the first row of an n-option menu
func (s *Scene) menuTop(n int) float64 {
	return float64(s.screenH - menuPad - n*rowHeight)
}

// choiceAt returns the menu row under a screen point
func (s *Scene) choiceAt(sx, sy float64) (int, bool) {
	opts, ok := s.convo.PendingChoice()
	if !ok || sx < 0 || sx > float64(s.screenW) {
		return 0, false
	}
	top := s.menuTop(len(opts))
	if sy < top {
		return 0, false
	}
	i := int((sy - top) / rowHeight)
	if i >= len(opts) {
		return 0, false
	}
	return i, true
}

// Draw renders the scene (implements scene.Scene)
func (s *Scene) Draw(screen *ebiten.Image) {
	screen.Fill(s.bg)

	for _, a := range s.DrawOrder() {
		s.drawActor(screen, a)
	}
	if ebiten.IsKeyPressed(ebiten.KeyTab) {
		s.drawWalkpath(screen)
	}

	for _, c := range s.background {
		s.drawBubble(screen, c)
	}
	s.drawBubble(screen, s.convo)
	s.drawChoice(screen)
	s.drawUI(screen)

	if s.paused {
		s.drawPauseOverlay(screen)
	}
}

func (s *Scene) drawActor(screen *ebiten.Image, a *entity.Actor) {
	if !a.Visible {
		return
	}
	minX, minY, maxX, maxY := a.Bounds()
	x, y := s.toScreen(minX, maxY)
	w, h := maxX-minX, maxY-minY

	if a.Definition().CastsShadow {
		sx, sy := s.toScreen(a.X, a.Y)
		ebitenutil.DrawRect(screen, sx-w/2, sy-2, w, 4, colorShadow)
	}

	c := colorActor
	if a.ID == entity.MainActorID {
		c = colorMain
	}
	ax, ay := s.toScreen(a.X, a.Y)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x-ax, y-ay)
	op.GeoM.Rotate(a.Rotation * math.Pi / 180)
	op.GeoM.Translate(ax, ay)
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(float32(a.Opacity) / 255)
	screen.DrawImage(pixelImage(), op)

	label := a.State
	if n := a.Definition().Animations[a.State].Frames; n > 1 {
		label = fmt.Sprintf("%s %d/%d", a.State, a.Frame()+1, n)
	}
	ebitenutil.DebugPrintAt(screen, label, int(x), int(y))
}

var pixel *ebiten.Image

// pixelImage returns a shared 1x1 white image for drawing transformed rectangles
func pixelImage() *ebiten.Image {
	if pixel == nil {
		pixel = ebiten.NewImage(1, 1)
		pixel.Fill(color.White)
	}
	return pixel
}

func (s *Scene) drawWalkpath(screen *ebiten.Image) {
	points, edges := s.graph.Info()
	for id, nbrs := range edges {
		from := points[id]
		fx, fy := s.toScreen(from[0], from[1])
		for _, n := range nbrs {
			to := points[n]
			tx, ty := s.toScreen(to[0], to[1])
			ebitenutil.DrawLine(screen, fx, fy, tx, ty, colorEdge)
		}
	}
	for id, xy := range points {
		x, y := s.toScreen(xy[0], xy[1])
		ebitenutil.DrawRect(screen, x-2, y-2, 4, 4, colorPoint)
		ebitenutil.DebugPrintAt(screen, id, int(x)+4, int(y))
	}
}

func (s *Scene) drawBubble(screen *ebiten.Image, c *convo.Conversation) {
	b, ok := c.Bubble()
	if !ok {
		return
	}
	x, y := s.toScreen(b.X, b.Y)
	w := float64(b.Columns*glyphW + 8)
	h := float64(len(b.Lines)*rowHeight + 4)
	left := x - w/2
	top := y - h

	bg := b.Color
	bg.A = 200
	ebitenutil.DrawRect(screen, left, top, w, h, bg)
	ebitenutil.DebugPrintAt(screen, strings.Join(b.Lines, "\n"), int(left)+4, int(top)+2)
}

func (s *Scene) drawChoice(screen *ebiten.Image) {
	opts, ok := s.convo.PendingChoice()
	if !ok {
		return
	}
	top := s.menuTop(len(opts))
	ebitenutil.DrawRect(screen, 0, top, float64(s.screenW), float64(len(opts)*rowHeight), colorMenu)
	for i, text := range opts {
		y := top + float64(i*rowHeight)
		if i%2 == 1 {
			ebitenutil.DrawRect(screen, 0, y, float64(s.screenW), rowHeight, colorMenuUsed)
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d. %s", i+1, text), menuX, int(y))
	}
}

func (s *Scene) drawUI(screen *ebiten.Image) {
	if ids := s.world.Inventory.IDs(); len(ids) > 0 {
		names := make([]string, 0, len(ids))
		for _, id := range ids {
			item, _ := s.world.Inventory.Get(id)
			names = append(names, item.Name)
		}
		ebitenutil.DebugPrintAt(screen, "Inventory: "+strings.Join(names, ", "), 10, 20)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s | %s | Click: Walk/Talk | Space: Skip | 1-9: Choose | F5: Save | ESC: Pause", s.name, s.Mode()))
}

func (s *Scene) drawPauseOverlay(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, 0, float64(s.screenW), float64(s.screenH), colorOverlay)

	text := "PAUSED\n\nPress ESC to resume"
	ebitenutil.DebugPrintAt(screen, text, s.screenW/2-50, s.screenH/2-20)
}

// parseColor reads #rrggbb, returning def for anything else
func parseColor(hex string, def color.RGBA) color.RGBA {
	var r, g, b uint8
	if len(hex) != 7 || hex[0] != '#' {
		return def
	}
	if _, err := fmt.Sscanf(hex[1:], "%2x%2x%2x", &r, &g, &b); err != nil {
		return def
	}
	return color.RGBA{r, g, b, 255}
}
