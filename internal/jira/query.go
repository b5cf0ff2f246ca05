package jira

import (
	"strconv"
	"strings"
)

// Query builds a JQL filter from typed clauses. Values are always
// rendered as literals, never spliced in as raw JQL, so identifiers
// taken from config cannot change the shape of the query.
type Query struct {
	clauses []string
}

// NewQuery returns an empty query.
func NewQuery() *Query {
	return &Query{}
}

// Eq adds "field = value".
func (q *Query) Eq(field, value string) *Query {
	q.clauses = append(q.clauses, field+" = "+Literal(value))
	return q
}

// ChangedFrom adds "field changed from value".
func (q *Query) ChangedFrom(field, value string) *Query {
	q.clauses = append(q.clauses, field+" changed from "+Literal(value))
	return q
}

// String joins the clauses with AND.
func (q *Query) String() string {
	return strings.Join(q.clauses, " AND ")
}

// Literal renders v as a JQL value. Plain integers stay bare so numeric
// sprint ids match by id; everything else is a quoted string.
func Literal(v string) string {
	if _, err := strconv.ParseUint(v, 10, 64); err == nil {
		return v
	}
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte('"')
	for _, r := range v {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
