package engine

import "github.com/leapstack-labs/sqlround/pkg/dialect"

// DialectInfo summarizes one dialect ID for listings.
type DialectInfo struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Implemented bool     `json:"implemented" yaml:"implemented"`
	Quote       string   `json:"quote,omitempty" yaml:"quote,omitempty"`
	LimitForms  []string `json:"limit_forms,omitempty" yaml:"limit_forms,omitempty"`
}

var limitFormNames = []struct {
	form dialect.LimitForm
	name string
}{
	{dialect.LimitTop, "TOP"},
	{dialect.LimitLimitOffset, "LIMIT/OFFSET"},
	{dialect.LimitOffsetFetch, "OFFSET/FETCH"},
}

// Describe lists every dialect ID in enumeration order, including those
// without an implementation.
func Describe() []DialectInfo {
	ids := dialect.All()
	out := make([]DialectInfo, 0, len(ids))
	for _, id := range ids {
		info := DialectInfo{ID: id.String()}
		if d, ok := dialect.Get(id); ok {
			info.Name = d.Name
			info.Implemented = true
			info.Quote = d.Identifiers.Default.String()
			for _, lf := range limitFormNames {
				if d.SupportsLimit(lf.form) {
					info.LimitForms = append(info.LimitForms, lf.name)
				}
			}
		}
		out = append(out, info)
	}
	return out
}
