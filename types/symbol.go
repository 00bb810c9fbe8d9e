package types

// Symbol - a bare word read from a literal
type Symbol string

// Keyword - a colon-prefixed name read from a literal
type Keyword string
