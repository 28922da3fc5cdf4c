package diag

import (
	"fmt"
)

type Code uint16

const (
	// UnknownCode is the catch-all for uncategorized diagnostics.
	UnknownCode Code = 0

	// Region resolution (3100-3199). 1000-2999 are reserved for the lexer
	// and parser front end, which reports through its own tooling.
	RegionInfo            Code = 3100
	RegionSelfOutsideImpl Code = 3101
	RegionNamedNotAllowed Code = 3102
	RegionUnknownName     Code = 3103

	// Internal invariant violations (3900+).
	RegionBug Code = 3900
)

func (c Code) String() string {
	return fmt.Sprintf("RG%04d", uint16(c))
}
