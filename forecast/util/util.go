package util

// IndentExpand repeats indent growth times
func IndentExpand(indent string, growth int) string {
	out := make([]byte, 0, len(indent)*max(growth, 0))
	for i := 0; i < growth; i++ {
		out = append(out, indent...)
	}
	return string(out)
}
