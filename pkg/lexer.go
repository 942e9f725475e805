package dicer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType uint64
type stateFunc func(l *Lexer) stateFunc

// EOF is outside the rune range so a NUL in the source is lexed like
// any other symbol.
const EOF rune = -1

const (
	TokenError TokenType = iota + 1
	TokenEOF
	TokenNumber

	TokenDice
	TokenDot

	TokenPlus
	TokenMinus
	TokenMulti
	TokenDiv
	TokenOpenParentheses
	TokenCloseParentheses
)

var tokenNames = map[TokenType]string{
	TokenError:            "Error",
	TokenEOF:              "EOF",
	TokenNumber:           "Number",
	TokenDice:             "Dice",
	TokenDot:              "Dot",
	TokenPlus:             "Plus",
	TokenMinus:            "Minus",
	TokenMulti:            "Multi",
	TokenDiv:              "Div",
	TokenOpenParentheses:  "OpenParentheses",
	TokenCloseParentheses: "CloseParentheses",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return fmt.Sprintf("TokenType(%d)", uint64(t))
}

// Both cases are accepted for the dice marker: 2.d6 and 2.D6 are the same roll.
var keywordTable = map[string]TokenType{
	"d": TokenDice,
	"D": TokenDice,
}

var operatorTable = map[string]TokenType{
	".": TokenDot,
	"+": TokenPlus,
	"-": TokenMinus,
	"*": TokenMulti,
	"/": TokenDiv,
	"(": TokenOpenParentheses,
	")": TokenCloseParentheses,
}

// Location points at the 1-based column a token starts at.
type Location struct {
	Col int
}

func (l *Location) String() string {
	if l == nil {
		return "end of input"
	}

	return fmt.Sprintf("col %d", l.Col)
}

type Token struct {
	Typ   TokenType
	Value string
	Loc   *Location
}

func (t Token) isValid() bool {
	return t.Typ != TokenError && t.Typ != TokenEOF
}

// Tokenizer produces the tokens consumed by the Parser. Do runs the
// tokenizer to completion and Get blocks until the next token is ready.
type Tokenizer interface {
	Do()
	Get() Token
}

type Lexer struct {
	reader *bufio.Reader
	done   chan Token

	col   int
	start int
}

func NewLexer(reader io.Reader) *Lexer {
	return &Lexer{
		reader: bufio.NewReader(reader),
		done:   make(chan Token),
	}
}

func NewLexerFromString(source string) *Lexer {
	return NewLexer(strings.NewReader(source))
}

func (l *Lexer) Chan() chan Token {
	return l.done
}

func (l *Lexer) Do() {
	l.Run()
}

// Get returns the next token. Once the lexer has finished every call
// yields an EOF token.
func (l *Lexer) Get() Token {
	t, ok := <-l.done
	if !ok {
		return Token{Typ: TokenEOF, Loc: &Location{Col: l.col + 1}}
	}

	return t
}

func (l *Lexer) Run() {
	for state := defaultState; state != nil; {
		state = state(l)
	}

	close(l.done)
}

func (l *Lexer) RunBlocking() ([]Token, error) {
	go l.Run()

	var tokens []Token
	for t := range l.Chan() {
		if t.Typ == TokenEOF {
			return tokens, nil
		}

		if t.Typ == TokenError {
			return nil, errors.New(t.Value)
		}

		tokens = append(tokens, t)
	}

	return tokens, nil
}

func defaultState(l *Lexer) stateFunc {
	for {
		l.start = l.col + 1

		switch r := l.peek(); {
		case r == EOF:
			return l.emit(TokenEOF, "")
		case unicode.IsSpace(r):
			l.next()
			continue
		case '0' <= r && r <= '9':
			return numberState
		case unicode.IsLetter(r):
			return identifierState
		default:
			return operatorState
		}
	}
}

func numberState(l *Lexer) stateFunc {
	var num strings.Builder
	for r := l.peek(); '0' <= r && r <= '9'; r = l.peek() {
		num.WriteRune(l.next())
	}

	return l.emit(TokenNumber, num.String())
}

// identifierState only accepts the dice marker. A dice marker is always
// followed by its number of sides, so digits end the word.
func identifierState(l *Lexer) stateFunc {
	var id strings.Builder
	for r := l.peek(); unicode.IsLetter(r); r = l.peek() {
		id.WriteRune(l.next())
	}

	if t, ok := keywordTable[id.String()]; ok {
		return l.emit(t, id.String())
	}

	return l.errorf("unknown identifier '%s'", id.String())
}

func operatorState(l *Lexer) stateFunc {
	r := l.next()
	if tok, ok := operatorTable[string(r)]; ok {
		return l.emit(tok, string(r))
	}

	return l.errorf("invalid symbol %q", r)
}

func (l *Lexer) errorf(format string, args ...interface{}) stateFunc {
	l.done <- Token{
		Typ:   TokenError,
		Value: fmt.Sprintf(format, args...),
		Loc:   &Location{Col: l.start},
	}

	return nil
}

func (l *Lexer) emit(t TokenType, val string) stateFunc {
	l.done <- Token{
		Typ:   t,
		Value: val,
		Loc:   &Location{Col: l.start},
	}

	if t == TokenEOF {
		return nil
	}

	return defaultState
}

func (l *Lexer) peek() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		return EOF
	}

	_ = l.reader.UnreadRune()
	return r
}

func (l *Lexer) next() rune {
	r, _, err := l.reader.ReadRune()
	if err != nil {
		if err == io.EOF {
			return EOF
		}

		return utf8.RuneError
	}

	l.col++
	return r
}
