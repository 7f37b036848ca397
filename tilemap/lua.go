package tilemap

import (
	"bytes"
	"fmt"
	"io"
)

// MarshalLua serializes the map as a Lua table grouped by column:
//
//	{
//		[x] = {
//			[y] = "out-of-map",
//			[y] = "out-of-map"
//		}
//	}
//
// An empty map is serialized as "{\n\t}\n".
func MarshalLua(m *Map) []byte {
	var buf bytes.Buffer

	buf.WriteString("{\n")
	if m.Len() == 0 {
		buf.WriteString("\t}\n")
		return buf.Bytes()
	}

	curX, first := 0, true
	for p, kind := range m.All() {
		switch {
		case first:
			fmt.Fprintf(&buf, "\t[%d] = {\n", p.X)
		case p.X != curX:
			fmt.Fprintf(&buf, "\n\t},\n\t[%d] = {\n", p.X)
		default:
			buf.WriteString(",\n")
		}
		fmt.Fprintf(&buf, "\t\t[%d] = %q", p.Y, string(kind))
		curX, first = p.X, false
	}
	buf.WriteString("\n\t}\n}\n")

	return buf.Bytes()
}

func WriteLua(w io.Writer, m *Map) error {
	_, err := w.Write(MarshalLua(m))
	return err
}
