package main

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/intio/tagwm/internal/config"
	"github.com/intio/tagwm/internal/core"
)

// Glyphs of the X cursor font, from cursorfont.h.
const (
	xcLeftPtr = 68
	xcFleur   = 52
	xcSizing  = 120
)

// Painter owns the few server-side resources the window manager draws
// with: pointer cursors and border colours.
type Painter struct {
	xc *xgb.Conn

	cursorNormal xproto.Cursor
	cursorMove   xproto.Cursor
	cursorResize xproto.Cursor

	schemes [3]uint32
}

// NewPainter allocates a new Painter.
func NewPainter(xc *xgb.Conn) *Painter {
	return &Painter{xc: xc}
}

// Init creates the cursors and allocates the border colours in the
// default colormap.
func (p *Painter) Init(screen *xproto.ScreenInfo, colors config.Colors) error {
	var err error
	if p.cursorNormal, err = p.glyphCursor(xcLeftPtr); err != nil {
		return err
	}
	if p.cursorMove, err = p.glyphCursor(xcFleur); err != nil {
		return err
	}
	if p.cursorResize, err = p.glyphCursor(xcSizing); err != nil {
		return err
	}
	for i, hex := range []string{colors.Normal, colors.Selected, colors.Urgent} {
		v, err := config.ParseColor(hex)
		if err != nil {
			return err
		}
		p.schemes[i] = p.allocColor(screen.DefaultColormap, v)
	}
	return nil
}

func (p *Painter) glyphCursor(glyph uint16) (xproto.Cursor, error) {
	font, err := xproto.NewFontId(p.xc)
	if err != nil {
		return 0, err
	}
	cursor, err := xproto.NewCursorId(p.xc)
	if err != nil {
		return 0, err
	}
	err = xproto.OpenFontChecked(p.xc, font, uint16(len("cursor")), "cursor").Check()
	if err != nil {
		return 0, err
	}
	defer xproto.CloseFont(p.xc, font)
	err = xproto.CreateGlyphCursorChecked(
		p.xc,
		cursor,
		font,
		font,
		glyph,
		glyph+1,
		0, 0, 0,
		0xffff, 0xffff, 0xffff,
	).Check()
	return cursor, err
}

// allocColor returns the pixel for a 0xrrggbb value, or the value
// itself on a true colour visual that refuses the allocation.
func (p *Painter) allocColor(cmap xproto.Colormap, rgb uint32) uint32 {
	r := uint16(rgb>>16&0xff) * 0x101
	g := uint16(rgb>>8&0xff) * 0x101
	b := uint16(rgb&0xff) * 0x101
	reply, err := xproto.AllocColor(p.xc, cmap, r, g, b).Reply()
	if err != nil {
		return rgb
	}
	return reply.Pixel
}

// BorderPixel is the border colour of a client in scheme s, with
// urgency taking precedence over selection.
func (p *Painter) BorderPixel(s core.Scheme, urgent bool) uint32 {
	if urgent {
		return p.schemes[2]
	}
	return p.schemes[s]
}

func (p *Painter) Free() {
	for _, c := range []xproto.Cursor{p.cursorNormal, p.cursorMove, p.cursorResize} {
		if c != 0 {
			xproto.FreeCursor(p.xc, c)
		}
	}
}
