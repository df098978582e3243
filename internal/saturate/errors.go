package saturate

import (
	"fmt"

	"github.com/superpose/superpose/internal/options"
)

type errUnknownSelector struct{ sel options.LiteralSelector }

func (e errUnknownSelector) Error() string {
	return fmt.Sprintf("saturate: unknown literal selector %q", e.sel)
}
