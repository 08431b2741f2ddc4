package authz

import (
	"strconv"
	"strings"
)

// Predicate is an AND-combined SQL fragment built with ? placeholders and
// rendered with Postgres positional parameters on demand.
type Predicate struct {
	clauses []string
	args    []any
}

func New() *Predicate {
	return &Predicate{}
}

// And appends a clause. The clause may contain multiple ? placeholders,
// one per arg.
func (p *Predicate) And(clause string, args ...any) *Predicate {
	p.clauses = append(p.clauses, clause)
	p.args = append(p.args, args...)
	return p
}

// Empty reports whether the predicate places no restriction at all.
func (p *Predicate) Empty() bool {
	return len(p.clauses) == 0
}

// SQL renders the predicate with $n placeholders starting at start.
// An empty predicate renders as TRUE so it composes inside WHERE clauses.
func (p *Predicate) SQL(start int) string {
	if p.Empty() {
		return "TRUE"
	}
	joined := strings.Join(p.clauses, " AND ")
	var b strings.Builder
	n := start
	for _, r := range joined {
		if r == '?' {
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			n++
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Args returns the positional arguments in placeholder order.
func (p *Predicate) Args() []any {
	return p.args
}

// NextIndex returns the first placeholder index free after rendering with
// SQL(start).
func (p *Predicate) NextIndex(start int) int {
	return start + len(p.args)
}
