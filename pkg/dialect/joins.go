package dialect

import "github.com/leapstack-labs/sqlround/pkg/core"

// JoinTypeDef defines an accepted join type.
type JoinTypeDef struct {
	Type        core.JoinType
	RequiresOn  bool // true if an ON or USING condition must follow
	AllowsUsing bool // true if USING (cols) is allowed
}

// ANSIJoinTypes contains the standard SQL join types.
var ANSIJoinTypes = []JoinTypeDef{
	{Type: core.JoinPlain, RequiresOn: true, AllowsUsing: true},
	{Type: core.JoinInner, RequiresOn: true, AllowsUsing: true},
	{Type: core.JoinLeft, RequiresOn: true, AllowsUsing: true},
	{Type: core.JoinLeftOuter, RequiresOn: true, AllowsUsing: true},
	{Type: core.JoinRight, RequiresOn: true, AllowsUsing: true},
	{Type: core.JoinRightOuter, RequiresOn: true, AllowsUsing: true},
	{Type: core.JoinFull, RequiresOn: true, AllowsUsing: true},
	{Type: core.JoinFullOuter, RequiresOn: true, AllowsUsing: true},
	{Type: core.JoinCross},
	{Type: core.JoinComma},
}

// ApplyJoinTypes contains the CROSS APPLY / OUTER APPLY extensions.
var ApplyJoinTypes = []JoinTypeDef{
	{Type: core.JoinCrossApply},
	{Type: core.JoinOuterApply},
}
