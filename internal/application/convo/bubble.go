package convo

import (
	"image/color"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/younwookim/adventure/internal/domain/entity"
)

// Bubble is the speech text currently shown next to an actor
type Bubble struct {
	Speaker string
	Text    string
	// Lines is Text wrapped to the configured column count
	Lines     []string
	Multiline bool
	// Columns is the widest line in terminal cells
	Columns int
	Color   color.RGBA
	// X, Y is the point the bubble's tail touches
	X, Y float64
}

// layoutBubble wraps text wider than columns
func layoutBubble(speaker string, a *entity.Actor, text string, columns int, c color.RGBA) *Bubble {
	b := &Bubble{Speaker: speaker, Text: text, Color: c}
	b.X, b.Y = a.DialogueAnchor()

	if columns > 0 && runewidth.StringWidth(text) > columns {
		b.Multiline = true
		b.Lines = wrapWords(text, columns)
	} else {
		b.Lines = []string{text}
	}
	for _, l := range b.Lines {
		if w := runewidth.StringWidth(l); w > b.Columns {
			b.Columns = w
		}
	}
	return b
}

// wrapWords breaks text at spaces so no line is wider than columns cells.
// Words that are wider than a line on their own are hard-wrapped.
func wrapWords(text string, columns int) []string {
	var lines []string
	cur, curWidth := "", 0
	for _, word := range strings.Fields(text) {
		w := runewidth.StringWidth(word)
		if w > columns {
			if cur != "" {
				lines = append(lines, cur)
			}
			parts := strings.Split(runewidth.Wrap(word, columns), "\n")
			lines = append(lines, parts[:len(parts)-1]...)
			cur = parts[len(parts)-1]
			curWidth = runewidth.StringWidth(cur)
			continue
		}
		switch {
		case cur == "":
			cur, curWidth = word, w
		case curWidth+1+w <= columns:
			cur += " " + word
			curWidth += 1 + w
		default:
			lines = append(lines, cur)
			cur, curWidth = word, w
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// mainColor is reserved for the player character
var mainColor = color.RGBA{R: 255, G: 201, B: 215, A: 255}

var speakerColors = []color.RGBA{
	{R: 229, G: 201, B: 255, A: 255},
	{R: 201, G: 206, B: 255, A: 255},
	{R: 201, G: 249, B: 255, A: 255},
	{R: 201, G: 255, B: 211, A: 255},
	{R: 255, G: 255, B: 201, A: 255},
	{R: 255, G: 228, B: 201, A: 255},
	{R: 255, G: 201, B: 201, A: 255},
}

// Palette hands out speech colors. One palette is shared by every
// conversation of a game so a speaker keeps its color.
type Palette struct {
	assigned map[string]color.RGBA
	next     int
}

// NewPalette creates a palette with main already assigned
func NewPalette() *Palette {
	return &Palette{assigned: map[string]color.RGBA{entity.MainActorID: mainColor}}
}

// Color returns the speaker's color, assigning the next free one on first use
func (p *Palette) Color(speaker string) color.RGBA {
	if c, ok := p.assigned[speaker]; ok {
		return c
	}
	c := speakerColors[p.next%len(speakerColors)]
	p.next++
	p.assigned[speaker] = c
	return c
}
