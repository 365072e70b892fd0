package note

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingStamp indicates the document does not start with a YAML fence.
	ErrMissingStamp = errors.New("note: missing archive stamp")
	// ErrMalformedStamp indicates the YAML block could not be parsed.
	ErrMalformedStamp = errors.New("note: malformed archive stamp")
)

// ArchiveStamp is the provenance metadata written as YAML frontmatter onto
// every archived note copy. Its presence marks a note as already processed.
type ArchiveStamp struct {
	Note       string
	ArchivedAt time.Time
	Run        string
	OpenTasks  int
}

type stampEnvelope struct {
	Daybook stampYAML `yaml:"daybook"`
}

type stampYAML struct {
	Note      string `yaml:"note"`
	Archived  string `yaml:"archived"`
	Run       string `yaml:"run,omitempty"`
	OpenTasks int    `yaml:"open_tasks"`
}

// HasStamp reports whether content begins with a frontmatter fence.
func HasStamp(content []byte) bool {
	return bytes.HasPrefix(normalizeNewlines(content), []byte("---\n"))
}

// ParseStamp splits an archived note into its stamp and body.
func ParseStamp(content []byte) (ArchiveStamp, []byte, error) {
	normalized := normalizeNewlines(content)
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return ArchiveStamp{}, nil, ErrMissingStamp
	}
	parts := bytes.SplitN(normalized[4:], []byte("\n---\n"), 2)
	if len(parts) < 2 {
		return ArchiveStamp{}, nil, ErrMalformedStamp
	}
	var envelope stampEnvelope
	if err := yaml.Unmarshal(parts[0], &envelope); err != nil {
		return ArchiveStamp{}, nil, fmt.Errorf("%w: %v", ErrMalformedStamp, err)
	}
	if envelope.Daybook.Note == "" {
		return ArchiveStamp{}, nil, fmt.Errorf("%w: missing note date", ErrMalformedStamp)
	}
	archived, err := time.Parse(time.RFC3339, envelope.Daybook.Archived)
	if err != nil {
		return ArchiveStamp{}, nil, fmt.Errorf("%w: bad archived timestamp: %v", ErrMalformedStamp, err)
	}
	stamp := ArchiveStamp{
		Note:       envelope.Daybook.Note,
		ArchivedAt: archived,
		Run:        envelope.Daybook.Run,
		OpenTasks:  envelope.Daybook.OpenTasks,
	}
	body := parts[1]
	if bytes.HasPrefix(body, []byte("\n")) {
		body = body[1:]
	}
	return stamp, body, nil
}

// WriteStamp renders the stamp and body with YAML fences.
func WriteStamp(stamp ArchiveStamp, body []byte) ([]byte, error) {
	if stamp.Note == "" {
		return nil, fmt.Errorf("note: archive stamp missing note date")
	}
	envelope := stampEnvelope{Daybook: stampYAML{
		Note:      stamp.Note,
		Archived:  stamp.ArchivedAt.UTC().Format(time.RFC3339),
		Run:       stamp.Run,
		OpenTasks: stamp.OpenTasks,
	}}
	data, err := yaml.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("note: encode archive stamp: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(bytes.TrimRight(data, "\n"))
	buf.WriteString("\n---\n\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

func normalizeNewlines(content []byte) []byte {
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
}
