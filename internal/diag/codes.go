package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// syntax
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynExpectSemicolon   Code = 2003
	SynExpectIdentifier  Code = 2004
	SynExpectType        Code = 2005
	SynExpectExpression  Code = 2006
	SynUnexpectedTopItem Code = 2007
	SynUnexpectedMember  Code = 2008

	// formatting pipeline
	FmtInfo                 Code = 3000
	FmtUnrecognizedNodeKind Code = 3001
	FmtAmbiguousComment     Code = 3002
	FmtRemovedLocation      Code = 3003
	FmtNotIdempotent        Code = 3004

	// io
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed number literal",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedDelimiter:        "Unclosed delimiter",
	SynExpectSemicolon:          "Expected ';'",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectType:               "Expected type name",
	SynExpectExpression:         "Expected expression",
	SynUnexpectedTopItem:        "Unexpected item at top level",
	SynUnexpectedMember:         "Unexpected contract member",
	FmtInfo:                     "Formatter information",
	FmtUnrecognizedNodeKind:     "Unrecognized syntax node kind",
	FmtAmbiguousComment:         "Comment attachment resolved by tie-break",
	FmtRemovedLocation:          "Redundant data location removed",
	FmtNotIdempotent:            "Formatting is not idempotent",
	IOLoadFileError:             "Failed to read file",
	IOWriteFileError:            "Failed to write file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("FMT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
