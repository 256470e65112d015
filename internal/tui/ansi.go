package tui

// stripANSIEscapes removes ANSI CSI sequences from a string. dimBackground
// runs it over every line before applying the scrim; anything fancier than
// CSI handling hasn't been needed for the output our renderers produce.
func stripANSIEscapes(s string) string {
	if s == "" {
		return ""
	}
	b := []byte(s)
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != 0x1b { // ESC
			out = append(out, b[i])
			continue
		}
		// CSI: ESC [ ... final byte in 0x40-0x7E.
		if i+1 < len(b) && b[i+1] == '[' {
			i += 2
			for i < len(b) {
				c := b[i]
				if c >= 0x40 && c <= 0x7E {
					break
				}
				i++
			}
			continue
		}
		// Lone ESC: drop just that byte.
	}
	return string(out)
}
