package stamper

import (
	"fmt"
	"os"
	"strings"

	"github.com/valyala/fasttemplate"
)

// LoadStamps reads status files and merges them into one map. Each
// line is "KEY VALUE", split at the first space. Lines without a space
// are skipped. Later files override earlier ones.
func LoadStamps(
	infoFiles []string,
) (map[string]string, error) {
	const errCtx = "loading stamps"

	stamps := make(map[string]string)

	for _, sf := range infoFiles {
		content, err := os.ReadFile(sf) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		for _, line := range strings.Split(
			string(content), "\n",
		) {
			key, val, ok := strings.Cut(line, " ")
			if ok {
				stamps[key] = val
			}
		}
	}

	return stamps, nil
}

// Expand replaces {KEY} references in format with values from stamps.
// Unknown keys and unterminated braces are left as-is.
func Expand(format string, stamps map[string]string) string {
	values := make(map[string]interface{}, len(stamps))
	for key, val := range stamps {
		values[key] = val
	}

	return fasttemplate.ExecuteStringStd(
		format, "{", "}", values,
	)
}
