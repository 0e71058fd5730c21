// Package token defines lexical token kinds and trivia for the JavaScript
// subset accepted by the cjsflat parser.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Comments never appear in the main token stream; they are attached to the
//     following token as leading Trivia. A "/** ... */" comment is TriviaDocBlock.
//   - Contextual words (of, get, set, static, async) are identifiers.
package token
