package golembase

import (
	"strconv"
	"strings"
)

// Expr is one node of the store's query grammar. The grammar is defined by
// the remote system and must be reproduced byte-exactly for interoperability:
// `field = "string"` or `field = 123` terms, `&&` conjunction, `||`
// disjunction, parenthesized grouping, and `~` wildcard matching.
type Expr struct {
	text string
	// op is the joining operator of a compound expression, "" for terms.
	op string
}

// String renders the expression as a query string.
func (e Expr) String() string { return e.text }

// IsZero reports whether the expression is empty.
func (e Expr) IsZero() bool { return e.text == "" }

// Eq builds an exact-match term against a string annotation.
func Eq(field, value string) Expr {
	return Expr{text: field + ` = "` + value + `"`}
}

// EqInt builds an exact-match term against a numeric annotation.
func EqInt(field string, value int64) Expr {
	return Expr{text: field + " = " + strconv.FormatInt(value, 10)}
}

// Match builds a case-insensitive keyword term using the store's wildcard
// operator: every keyword character becomes a two-character class, e.g.
// Match("name", "nft") renders `name ~ "*[Nn][Ff][Tt]*"`.
func Match(field, keyword string) Expr {
	var sb strings.Builder
	sb.WriteString(field)
	sb.WriteString(` ~ "*`)
	for _, r := range keyword {
		lower := strings.ToLower(string(r))
		upper := strings.ToUpper(string(r))
		if lower == upper {
			sb.WriteString(string(r))
			continue
		}
		sb.WriteByte('[')
		sb.WriteString(upper)
		sb.WriteString(lower)
		sb.WriteByte(']')
	}
	sb.WriteString(`*"`)
	return Expr{text: sb.String()}
}

// And joins expressions with the `&&` operator. `&&` binds tighter than
// `||`, so disjunctive children are parenthesized.
func And(exprs ...Expr) Expr {
	return join(" && ", "&&", exprs, func(e Expr) bool { return e.op == "||" })
}

// Or joins expressions with the `||` operator. Conjunctive children are left
// bare, matching the flat `a && b || c && d` form the store expects.
func Or(exprs ...Expr) Expr {
	return join(" || ", "||", exprs, func(e Expr) bool { return false })
}

func join(sep, op string, exprs []Expr, needsGroup func(Expr) bool) Expr {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		if e.IsZero() {
			continue
		}
		if needsGroup(e) {
			parts = append(parts, "("+e.text+")")
		} else {
			parts = append(parts, e.text)
		}
	}
	switch len(parts) {
	case 0:
		return Expr{}
	case 1:
		return Expr{text: parts[0]}
	default:
		return Expr{text: strings.Join(parts, sep), op: op}
	}
}
