package symbolic

import (
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ============================================================
// Rendering
// ============================================================

// RenderOption configures Format and Render.
type RenderOption func(*renderOptions)

type renderOptions struct {
	compact bool
}

// WithCompact drops operator spacing and abbreviates trig names. Grids also
// size each column separately instead of using one uniform width.
func WithCompact(compact bool) RenderOption {
	return func(o *renderOptions) { o.compact = compact }
}

func gatherRenderOptions(opts []RenderOption) renderOptions {
	var o renderOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type renderer struct {
	strings.Builder
	compact bool
}

// Format renders s as canonical text.
func Format(s Symbol, opts ...RenderOption) string {
	r := &renderer{compact: gatherRenderOptions(opts).compact}
	s.render(r)
	return r.String()
}

// Render writes the canonical text of s to w.
func Render(w io.Writer, s Symbol, opts ...RenderOption) error {
	_, err := io.WriteString(w, Format(s, opts...))
	return err
}

// DisplayWidth is the number of runes in a rendered string.
func DisplayWidth(text string) int { return utf8.RuneCountInString(text) }

func (r *renderer) opString(op Op) string {
	if r.compact {
		return opSymbols[op]
	}
	return " " + opSymbols[op] + " "
}

func (r *renderer) kindName(k Kind) string {
	if r.compact {
		return kindAbbrev[k]
	}
	return kindNames[k]
}

// child renders s, parenthesized when its operator binds looser than parent.
// Nodes with a coefficient or power parenthesize themselves.
func (r *renderer) child(parent Op, s Symbol) {
	e, ok := s.(*Expression)
	if ok && e.scalar.IsOne() && e.power.IsOne() && e.op.precedence() < parent.precedence() {
		r.WriteString("(")
		e.render(r)
		r.WriteString(")")
		return
	}
	s.render(r)
}

func (r *renderer) writeRat(x *big.Rat) {
	if x.IsInt() {
		r.WriteString(x.Num().String())
		return
	}
	r.WriteString("(" + x.Num().String() + "/" + x.Denom().String() + ")")
}

func (r *renderer) writeFloat(v float64) {
	rounded := math.Round(v)
	switch {
	case math.Abs(v) < evalEpsilon:
		r.WriteString("0")
	case math.Abs(v-rounded) < evalEpsilon:
		r.WriteString(strconv.FormatFloat(rounded, 'f', -1, 64))
	default:
		r.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
}
