package ingest

import (
	"bytes"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

// Transcript is one video's full transcript text, keyed by the file stem.
type Transcript struct {
	VideoID string
	Text    string
}

// transcriptExts are the file extensions treated as transcripts.
var transcriptExts = map[string]bool{
	".txt":  true,
	".md":   true,
	".html": true,
	".pdf":  true,
}

// LoadTranscripts recursively collects transcript files under dir in sorted
// path order, so chunk indices are reproducible across runs. The file stem
// becomes the video id. A missing directory or an unreadable file is logged
// and skipped, never fatal.
func LoadTranscripts(dir string) ([]Transcript, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		slog.Warn("transcript directory does not exist", "dir", dir)
		return nil, nil
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if transcriptExts[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(paths)

	var transcripts []Transcript
	for _, path := range paths {
		text, err := extractText(path)
		if err != nil {
			slog.Warn("skipping unreadable transcript", "path", path, "error", err)
			continue
		}
		videoID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		transcripts = append(transcripts, Transcript{VideoID: videoID, Text: text})
	}
	return transcripts, nil
}

func extractText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDFText(path)
	case ".html":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return ExtractHTMLText(string(data))
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func extractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	return buf.String(), nil
}

// ExtractHTMLText returns the visible text of an HTML document. Script and
// style contents are dropped; surviving text nodes are joined with spaces.
func ExtractHTMLText(src string) (string, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return sb.String(), nil
}
