package ingest

import "strings"

// ChunkWords splits text on whitespace and greedily groups consecutive words
// into chunks of at most maxWords words. Chunks are fixed-size, non-overlapping
// windows; the trailing partial chunk is kept if non-empty. Joining all chunk
// words in order reproduces the input word sequence exactly.
func ChunkWords(text string, maxWords int) []string {
	if maxWords <= 0 {
		maxWords = 300
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	for start := 0; start < len(words); start += maxWords {
		end := start + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
