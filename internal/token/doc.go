// Package token defines lexical token kinds and trivia for the C# subset
// understood by sharplint.
// Invariants:
//   - Token.Text is the exact source text of the token.
//   - Token.Span matches Text exactly (Start..End).
//   - Trivia never appears in the main token stream; it is attached to the
//     leading or trailing edge of a token.
//   - Trailing trivia ends at (and includes) the first line break after the
//     token; everything after that belongs to the next token's leading trivia.
//   - Contextual keywords (var, async, await, nameof, ...) are identifiers.
//     They are recognized by the parser, not the lexer.
package token
