package models

import (
	"fmt"
	"strings"
)

// Note is a dated entry in the shared communication log.
type Note struct {
	ID      string   `json:"id"`
	Date    string   `json:"date"` // YYYY-MM-DD HH:MM
	Author  Guardian `json:"author"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func (n *Note) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("note id cannot be empty")
	}
	if strings.TrimSpace(n.Content) == "" {
		return fmt.Errorf("note content cannot be empty")
	}
	if !n.Author.Valid() {
		return fmt.Errorf("invalid note author %q", n.Author)
	}
	return nil
}

// ParseTags splits a comma-separated tag list, dropping blanks.
func ParseTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
