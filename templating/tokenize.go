package templating

import "strings"

const (
	openMarker  = '{'
	closeMarker = '}'

	// OpenDelim starts a placeholder.
	OpenDelim = "{{"
	// CloseDelim ends a placeholder.
	CloseDelim = "}}"
)

// tokenize splits template into literal runs and complete "{{...}}"
// runs. Joining the result yields template again. Unpaired markers
// stay in the literal text.
func tokenize(template string) []string {
	var (
		tokens []string
		buf    strings.Builder
	)

	flush := func() {
		if buf.Len() == 0 {
			return
		}

		tokens = append(tokens, buf.String())
		buf.Reset()
	}

	for i := 0; i < len(template); i++ {
		ch := template[i]

		if i+1 < len(template) && template[i+1] == ch {
			switch ch {
			case openMarker:
				flush()
				buf.WriteString(OpenDelim)
				i++

				continue
			case closeMarker:
				buf.WriteString(CloseDelim)
				flush()
				i++

				continue
			}
		}

		buf.WriteByte(ch)
	}

	flush()

	return tokens
}
