package sqlstore

import (
	"fmt"
	"strconv"
	"strings"
)

// Dialect captures the SQL differences between the supported engines.
type Dialect struct {
	// Name is the migrate database name and the STORE_DRIVER value.
	Name string
	// DriverName is the database/sql driver registered for this engine.
	DriverName string
	// Numbered placeholders ($1) instead of positional ones (?).
	numbered bool
	// escapeLiteral is the LIKE escape character as written inside a string literal.
	escapeLiteral string
}

var (
	Postgres = Dialect{Name: "postgres", DriverName: "postgres", numbered: true, escapeLiteral: `\`}
	MySQL    = Dialect{Name: "mysql", DriverName: "mysql", escapeLiteral: `\\`}
	SQLite   = Dialect{Name: "sqlite", DriverName: "sqlite", escapeLiteral: `\`}
)

// DialectFor resolves a STORE_DRIVER value.
func DialectFor(name string) (Dialect, error) {
	switch name {
	case "postgres", "postgresql":
		return Postgres, nil
	case "mysql":
		return MySQL, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported store driver: %s", name)
	}
}

func (d Dialect) placeholder(n int) string {
	if d.numbered {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// containsClause matches column case-insensitively against a LIKE pattern bound at n.
func (d Dialect) containsClause(column string, n int) string {
	return fmt.Sprintf("LOWER(%s) LIKE %s ESCAPE '%s'", column, d.placeholder(n), d.escapeLiteral)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds the bound value for containsClause.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
