// Package interaction describes what a workflow shows an operator, independent
// of the chat platform that renders it.
package interaction

import (
	"time"

	"unishift/internal/continuation"
)

// Color is an embed accent colour.
type Color int

const (
	ColorAccent  Color = 0xFF6B35
	ColorSuccess Color = 0x00FF00
	ColorDanger  Color = 0xFF0000
)

// ButtonStyle selects how a control is drawn.
type ButtonStyle int

const (
	ButtonPrimary ButtonStyle = iota + 1
	ButtonSecondary
	ButtonSuccess
	ButtonDanger
)

// Button is a control whose identifier is its continuation token.
type Button struct {
	Label string
	Style ButtonStyle
	Token continuation.Token
}

// Embed is a titled card.
type Embed struct {
	Title       string
	Description string
	Footer      string
	Color       Color
	Timestamp   time.Time
}

// TextField is a single text-entry field of a Form.
type TextField struct {
	ID          string
	Label       string
	Placeholder string
	Required    bool
	Multiline   bool
	MaxLength   int
}

// Form is a structured input dialog. Its token travels with the submission.
type Form struct {
	Token continuation.Token
	Title string
	Field TextField
}

// Reply is the outcome of one workflow step. Content is used for plain
// failure messages; Embed and Buttons for cards; Form replaces both.
type Reply struct {
	Content string
	Embed   *Embed
	Buttons []Button
	Form    *Form
}

// Failure builds a plain text reply with no controls.
func Failure(message string) Reply {
	return Reply{Content: message}
}

// HasButton reports whether the reply carries a control of the given kind.
func (r Reply) HasButton(kind continuation.Kind) bool {
	_, ok := r.Button(kind)
	return ok
}

// Button returns the first control of the given kind.
func (r Reply) Button(kind continuation.Kind) (Button, bool) {
	for _, b := range r.Buttons {
		if b.Token != nil && b.Token.Kind() == kind {
			return b, true
		}
	}
	return Button{}, false
}
