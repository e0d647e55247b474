package token

import "github.com/funvibe/seam/internal/config"

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal string
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	IDENT = "IDENT"

	// Operators and delimiters
	ASSIGN   = "="
	EQ       = "=="
	SUBTYPE  = "<:"
	LT       = "<"
	GT       = ">"
	ARROW    = "->"
	ELLIPSIS = "..."
	DOT      = "."
	COMMA    = ","
	COLON    = ":"

	LPAREN   = "("
	RPAREN   = ")"
	LBRACE   = "{"
	RBRACE   = "}"
	LBRACKET = "["
	RBRACKET = "]"

	// Keywords
	TYPE   = "TYPE"
	ASSERT = "ASSERT"
	FN     = "FN"
	FORALL = "FORALL"
	MU     = "MU"
	STRUCT = "STRUCT"
	ENUM   = "ENUM"
)

var keywords = map[string]TokenType{
	config.TypeKeyword:   TYPE,
	config.AssertKeyword: ASSERT,
	config.FnKeyword:     FN,
	config.ForallKeyword: FORALL,
	config.MuKeyword:     MU,
	config.StructKeyword: STRUCT,
	config.EnumKeyword:   ENUM,
}

// LookupIdent distinguishes keywords from ordinary identifiers.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
