package embedding

import (
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// SparseDimensions is the hashed vocabulary size of the lexical space.
const SparseDimensions = 1 << 18

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {},
	"for": {}, "from": {}, "in": {}, "is": {}, "it": {}, "me": {}, "of": {}, "on": {},
	"or": {}, "the": {}, "to": {}, "with": {}, "who": {}, "find": {}, "show": {},
	"i": {}, "we": {}, "need": {}, "want": {}, "looking": {}, "someone": {},
}

// LexicalEncoder maps text to a hashed term-frequency vector. It is the
// second-stage comparator for candidate profiles, catching exact skill and
// tool names that dense embeddings blur together.
type LexicalEncoder struct{}

func NewLexicalEncoder() *LexicalEncoder {
	return &LexicalEncoder{}
}

// Encode returns index→weight with log-scaled term frequency, L2 normalized.
func (e *LexicalEncoder) Encode(text string) map[int32]float32 {
	counts := make(map[int32]int)
	for _, tok := range Tokenize(text) {
		counts[hashToken(tok)]++
	}

	out := make(map[int32]float32, len(counts))
	var norm float64
	for idx, c := range counts {
		w := 1 + math.Log(float64(c))
		out[idx] = float32(w)
		norm += w * w
	}
	if norm == 0 {
		return out
	}
	norm = math.Sqrt(norm)
	for idx, w := range out {
		out[idx] = float32(float64(w) / norm)
	}
	return out
}

// Tokenize lowercases and splits on anything that is not a letter, digit,
// '+' or '#', so "C++" and "C#" survive as terms.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})

	tokens := fields[:0]
	for _, f := range fields {
		if _, skip := stopwords[f]; skip {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func hashToken(tok string) int32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tok))
	return int32(h.Sum32() % SparseDimensions)
}
