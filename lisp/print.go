package lisp

import (
	"bytes"
	"strconv"
	"strings"
)

// PrintString renders v as text.  When readable is true string contents are
// escaped so that reading the result reproduces the original value; when
// false strings render raw for human display.
func PrintString(v *LVal, readable bool) string {
	switch v.Type {
	case LNil:
		return "nil"
	case LBool:
		return strconv.FormatBool(v.Bool)
	case LInt:
		return strconv.Itoa(v.Int)
	case LString:
		if readable {
			return strconv.Quote(v.Str)
		}
		return v.Str
	case LSymbol:
		return v.Str
	case LKeyword:
		return ":" + v.Str
	case LSExpr:
		return seqString(v, readable, "(", ")")
	case LVector:
		return seqString(v, readable, "[", "]")
	case LSortMap:
		return mapString(v, readable)
	case LAtom:
		return "(atom " + PrintString(v.Cells[0], readable) + ")"
	case LFun:
		if v.Builtin != nil {
			if v.FID != "" {
				return v.FID
			}
			return "<builtin>"
		}
		var buf bytes.Buffer
		buf.WriteString("(fn* ")
		buf.WriteString(seqString(v.Formals, readable, "(", ")"))
		buf.WriteString(" ")
		buf.WriteString(PrintString(v.Body, readable))
		buf.WriteString(")")
		return buf.String()
	case LError:
		return (*ErrorVal)(v).Error()
	default:
		return "#<invalid>"
	}
}

func seqString(v *LVal, readable bool, left, right string) string {
	elems := make([]string, len(v.Cells))
	for i, cell := range v.Cells {
		elems[i] = PrintString(cell, readable)
	}
	return left + strings.Join(elems, " ") + right
}

func mapString(m *LVal, readable bool) string {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, k := range m.Keys {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(PrintString(mapKeyVal(k), readable))
		buf.WriteString(" ")
		buf.WriteString(PrintString(m.Map[k], readable))
	}
	buf.WriteString("}")
	return buf.String()
}
