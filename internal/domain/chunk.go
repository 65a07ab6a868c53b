package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DiffChunk is a file-boundary-respecting slice of a diff.
// A chunk never holds part of a file's diff; a single file larger than the
// chunk limit forms its own Oversized chunk.
// Fields are ordered to minimize memory padding.
type DiffChunk struct {
	RawText   string
	Files     []string
	ID        int
	ByteSize  int
	Oversized bool
}

// Label returns a short description of the chunk for prompts and markers.
func (c DiffChunk) Label() string {
	if len(c.Files) == 0 {
		return fmt.Sprintf("chunk %d", c.ID)
	}
	return fmt.Sprintf("chunk %d (%s)", c.ID, strings.Join(c.Files, ", "))
}

// ChunkDiff splits diff into chunks of at most maxChunkBytes, packing whole
// file sections greedily in their original order. A section larger than
// maxChunkBytes becomes its own oversized chunk and is never sliced.
// A non-positive maxChunkBytes puts everything into one chunk.
func ChunkDiff(diff string, maxChunkBytes int) []DiffChunk {
	sections := ParseFileDiffs(diff)
	if len(sections) == 0 {
		return nil
	}

	var chunks []DiffChunk
	var text strings.Builder
	var files []string

	flush := func(oversized bool) {
		if text.Len() == 0 {
			return
		}
		chunks = append(chunks, DiffChunk{
			ID:        len(chunks),
			Files:     files,
			RawText:   text.String(),
			ByteSize:  text.Len(),
			Oversized: oversized,
		})
		text.Reset()
		files = nil
	}

	for _, s := range sections {
		size := len(s.Text)
		if maxChunkBytes > 0 && size > maxChunkBytes {
			flush(false)
			text.WriteString(s.Text)
			files = appendPath(files, s.Path)
			flush(true)
			continue
		}
		if maxChunkBytes > 0 && text.Len() > 0 && text.Len()+size > maxChunkBytes {
			flush(false)
		}
		text.WriteString(s.Text)
		files = appendPath(files, s.Path)
	}
	flush(false)

	return chunks
}

func appendPath(files []string, p string) []string {
	if p == "" {
		return files
	}
	return append(files, p)
}

// TruncateText cuts text to at most limit bytes, preferring the last line
// break inside the limit and never splitting a UTF-8 sequence.
// It returns the kept text and the number of bytes dropped.
func TruncateText(text string, limit int) (string, int) {
	if limit < 0 {
		limit = 0
	}
	if len(text) <= limit {
		return text, 0
	}
	cut := limit
	if nl := strings.LastIndexByte(text[:limit], '\n'); nl >= 0 {
		cut = nl + 1
	} else {
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
	}
	return text[:cut], len(text) - cut
}

// TruncationNotice is appended after text cut by TruncateText.
func TruncationNotice(dropped int) string {
	return fmt.Sprintf("... [truncated %d bytes]\n", dropped)
}

// TruncateWithNotice truncates text and appends a notice when bytes were dropped.
func TruncateWithNotice(text string, limit int) string {
	kept, dropped := TruncateText(text, limit)
	if dropped == 0 {
		return kept
	}
	if kept != "" && !strings.HasSuffix(kept, "\n") {
		kept += "\n"
	}
	return kept + TruncationNotice(dropped)
}
