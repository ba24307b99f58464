package dialect

import (
	"fmt"
	"strings"
)

// ID is the closed enumeration of dialects known to the engine. Not every
// ID has an implementation; see Get.
type ID int

// Dialect identifiers.
const (
	Generic ID = iota
	SqlAnywhere
	MsSqlServer
	MySql
	PostgreSql
)

var idNames = [...]string{
	Generic:     "generic",
	SqlAnywhere: "sqlanywhere",
	MsSqlServer: "mssql",
	MySql:       "mysql",
	PostgreSql:  "postgres",
}

var idAliases = map[string]ID{
	"ansi":       Generic,
	"sqla":       SqlAnywhere,
	"sybase":     SqlAnywhere,
	"sqlserver":  MsSqlServer,
	"tsql":       MsSqlServer,
	"mariadb":    MySql,
	"postgresql": PostgreSql,
	"pg":         PostgreSql,
}

func (id ID) String() string {
	if id >= 0 && int(id) < len(idNames) {
		return idNames[id]
	}
	return fmt.Sprintf("ID(%d)", int(id))
}

// Valid reports whether id is a member of the enumeration.
func (id ID) Valid() bool {
	return id >= 0 && int(id) < len(idNames)
}

// All returns every dialect ID in enumeration order.
func All() []ID {
	ids := make([]ID, len(idNames))
	for i := range idNames {
		ids[i] = ID(i)
	}
	return ids
}

// ParseID resolves a dialect name or alias, case-insensitively.
func ParseID(name string) (ID, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range idNames {
		if s == n {
			return ID(i), nil
		}
	}
	if id, ok := idAliases[n]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("unknown dialect %q (valid: %s)", name, strings.Join(idNames[:], ", "))
}
