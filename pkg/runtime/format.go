package runtime

import (
	"strconv"
	"strings"

	"mlang/interpreter-go/pkg/ast"
)

// Format renders a value the way `print` shows it.
func Format(v Value) string {
	switch val := v.(type) {
	case nil:
		return ""
	case StringValue:
		return val.Val
	case IntegerValue:
		return strconv.FormatInt(val.Val, 10)
	case FloatValue:
		return ast.FormatFloat(val.Val)
	case RangeValue:
		return strconv.FormatInt(val.Start, 10) + ":" + strconv.FormatInt(val.End, 10)
	case *ArrayValue:
		var sb strings.Builder
		if val.Rank == 1 {
			writeRow(&sb, val, 0, val.Cols)
			return sb.String()
		}
		sb.WriteByte('[')
		for r := 0; r < val.Rows; r++ {
			if r > 0 {
				sb.WriteString(", ")
			}
			writeRow(&sb, val, r*val.Cols, val.Cols)
		}
		sb.WriteByte(']')
		return sb.String()
	}
	return "<" + v.Kind().String() + ">"
}

func writeRow(sb *strings.Builder, a *ArrayValue, start, n int) {
	sb.WriteByte('[')
	for i := 0; i < n; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		x := a.Data[start+i]
		if a.Elem == ElemFloat {
			sb.WriteString(ast.FormatFloat(x))
		} else {
			sb.WriteString(strconv.FormatInt(int64(x), 10))
		}
	}
	sb.WriteByte(']')
}
