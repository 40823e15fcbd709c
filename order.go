package symbolic

import (
	"cmp"
	"strings"

	"github.com/njchilds90/symbolic/greek"
)

// Compare orders symbols canonically: values, then named symbols, then
// expressions. Named symbols compare by kind, argument and power; Greek
// argument names sort by alphabet position ahead of other names.
func Compare(a, b Symbol) int {
	if c := cmp.Compare(rank(a), rank(b)); c != 0 {
		return c
	}
	switch x := a.(type) {
	case *Value:
		y := b.(*Value)
		if c := x.val.Cmp(y.val); c != 0 {
			return c
		}
		return x.pow.Cmp(y.pow)
	case *Named:
		y := b.(*Named)
		if c := cmp.Compare(x.kind, y.kind); c != 0 {
			return c
		}
		if c := compareArgs(x.arg, y.arg); c != 0 {
			return c
		}
		return x.power.val.Cmp(y.power.val)
	}
	return 0
}

func Less(a, b Symbol) bool { return Compare(a, b) < 0 }

func rank(s Symbol) int {
	switch s.(type) {
	case *Value:
		return 0
	case *Named:
		return 1
	}
	return 2
}

func compareArgs(a, b *Arg) int {
	if a == b {
		return 0
	}
	pa, greekA := greek.SortOrder(a.name)
	pb, greekB := greek.SortOrder(b.name)
	switch {
	case greekA && greekB:
		return cmp.Compare(pa, pb)
	case greekA:
		return -1
	case greekB:
		return 1
	}
	return strings.Compare(a.name, b.name)
}
