package domain

import "github.com/samber/lo"

type Field string

const (
	FieldUserID    Field = "userId"
	FieldSocketID  Field = "socketId"
	FieldRoles     Field = "roles"
	FieldConnected Field = "connected"
)

type Operator string

const (
	EQUALS     Operator = "EQUALS"
	NOT_EQUALS Operator = "NOT_EQUALS"
	IN         Operator = "IN"
)

// Criterion is a single field/operator/value filter over connection records.
// Values are strings, Roles, bools, or slices of those depending on the field.
type Criterion struct {
	Field    Field
	Operator Operator
	Value    any
}

func Where(field Field, operator Operator, value any) Criterion {
	return Criterion{Field: field, Operator: operator, Value: value}
}

// Match evaluates the criterion. Unknown fields, operators or value types never match.
func (c Criterion) Match(u ConnectionUser) bool {
	switch c.Operator {
	case EQUALS:
		return c.equals(u)
	case NOT_EQUALS:
		return !c.equals(u)
	case IN:
		return c.in(u)
	default:
		return false
	}
}

func (c Criterion) equals(u ConnectionUser) bool {
	switch c.Field {
	case FieldUserID:
		v, ok := asString(c.Value)
		return ok && u.UserID == v
	case FieldSocketID:
		v, ok := asString(c.Value)
		return ok && u.SocketID == v
	case FieldRoles:
		v, ok := asString(c.Value)
		return ok && u.HasRole(Role(v))
	case FieldConnected:
		v, ok := c.Value.(bool)
		return ok && u.IsConnected() == v
	default:
		return false
	}
}

func (c Criterion) in(u ConnectionUser) bool {
	values, ok := asStrings(c.Value)
	if !ok {
		return false
	}
	switch c.Field {
	case FieldUserID:
		return lo.Contains(values, u.UserID)
	case FieldSocketID:
		return lo.Contains(values, u.SocketID)
	case FieldRoles:
		return lo.SomeBy(u.Roles, func(r Role) bool { return lo.Contains(values, string(r)) })
	default:
		return false
	}
}

// MatchAll is true when every criterion matches. No criteria matches everything.
func MatchAll(u ConnectionUser, criteria []Criterion) bool {
	return lo.EveryBy(criteria, func(c Criterion) bool { return c.Match(u) })
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case Role:
		return string(s), true
	default:
		return "", false
	}
}

func asStrings(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []Role:
		return lo.Map(s, func(r Role, _ int) string { return string(r) }), true
	default:
		return nil, false
	}
}
