package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ohler55/ojg/jp"

	"github.com/getmockd/seedmock/pkg/cli/internal/output"
)

// emit writes v as JSON, narrowed by --select when set.
func emit(w io.Writer, v any) error {
	if selectPath == "" {
		return output.JSON(w, v)
	}
	expr, err := jp.ParseString(selectPath)
	if err != nil {
		return fmt.Errorf("invalid --select expression %q: %w", selectPath, err)
	}

	// Round-trip so the expression sees plain JSON values and wire keys.
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}

	results := expr.Get(data)
	switch len(results) {
	case 0:
		return nil
	case 1:
		if s, ok := results[0].(string); ok {
			_, err := fmt.Fprintln(w, s)
			return err
		}
		return output.JSON(w, results[0])
	default:
		return output.JSON(w, results)
	}
}

// structured reports whether output should be JSON rather than a table.
func structured() bool {
	return jsonOutput || selectPath != ""
}
