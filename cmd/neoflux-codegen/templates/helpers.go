package templates

import (
	"strconv"
	"strings"
)

func prefixedStrings(prefix string, count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString(prefix)
		sb.WriteString(strconv.Itoa(i))
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

func readableParams(count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString("s")
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(" Readable[T")
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString("]")
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}

func getCalls(count int) string {
	var sb strings.Builder
	for i := 0; i < count; i++ {
		sb.WriteString("s")
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(".Get()")
		if i < count-1 {
			sb.WriteString(", ")
		}
	}
	return sb.String()
}
