package model

// TemplateVar is one placeholder substitution. Substitutions are ordered:
// the renderer applies them in slice order, replacing only the first
// occurrence of each token.
type TemplateVar struct {
	Token string
	Value string
}
