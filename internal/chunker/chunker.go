// Package chunker splits document text into retrieval-sized pieces
// using document-type-specific size profiles.
package chunker

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"

	"clindex/internal/domain"
)

// Profile controls chunk size and tail overlap, both in characters.
type Profile struct {
	ChunkSize int
	Overlap   int
}

// ProfileFor returns the chunking profile for a document type. Case
// narratives use mid-sized chunks, reference texts larger ones for
// complete concepts, guidelines smaller ones for precise
// recommendations and lab reports the smallest, value-centric pieces.
func ProfileFor(docType domain.DocumentType) Profile {
	switch docType {
	case domain.DocTypeTextbook:
		return Profile{ChunkSize: 768, Overlap: 200}
	case domain.DocTypeGuideline:
		return Profile{ChunkSize: 400, Overlap: 100}
	case domain.DocTypeLabReport:
		return Profile{ChunkSize: 256, Overlap: 50}
	default:
		return Profile{ChunkSize: 512, Overlap: 128}
	}
}

// Piece is one chunk of text with its position and token count.
type Piece struct {
	Index      int
	Text       string
	TokenCount int
}

// Chunker splits text on sentence boundaries and accumulates sentences
// up to the profile size, carrying a tail overlap between chunks for
// context continuity.
type Chunker struct {
	encoding *tiktoken.Tiktoken
}

// New builds a chunker with the cl100k_base token encoding.
func New() (*Chunker, error) {
	encoding, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("chunker.New: load encoding: %w", err)
	}
	return &Chunker{encoding: encoding}, nil
}

// Split breaks text into pieces using the profile for docType.
func (c *Chunker) Split(text string, docType domain.DocumentType) []Piece {
	profile := ProfileFor(docType)

	sentences := strings.Split(strings.ReplaceAll(text, "\n", " "), ". ")
	var pieces []Piece
	current := ""

	flush := func() {
		trimmed := strings.TrimSpace(current)
		if trimmed == "" {
			return
		}
		pieces = append(pieces, Piece{
			Index:      len(pieces),
			Text:       trimmed,
			TokenCount: c.CountTokens(trimmed),
		})
	}

	for _, sentence := range sentences {
		if sentence == "" {
			continue
		}
		if len(current)+len(sentence) < profile.ChunkSize {
			current += sentence + ". "
			continue
		}
		flush()

		// Carry the tail of the previous chunk into the next one.
		if len(current) > profile.Overlap {
			current = current[len(current)-profile.Overlap:] + sentence + ". "
		} else {
			current = sentence + ". "
		}
	}
	flush()

	return pieces
}

// CountTokens returns the cl100k_base token count of text.
func (c *Chunker) CountTokens(text string) int {
	return len(c.encoding.Encode(text, nil, nil))
}
