// Package continuation encodes workflow context into the identifiers of
// interactive controls. Every handler parses the identifier it receives with
// Parse before acting on it.
package continuation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxLength is the longest control identifier the chat platform accepts.
const MaxLength = 100

// MaxPage bounds page numbers carried by pagination controls.
const MaxPage = 1_000_000

// ErrMalformed is returned for identifiers that do not decode to a known token.
var ErrMalformed = errors.New("continuation: malformed token")

// Kind names a token variant. It is the prefix of the wire form.
type Kind string

const (
	KindConfirmAdd   Kind = "confirm_add"
	KindCancelAdd    Kind = "cancel_add"
	KindViewPage     Kind = "view_page"
	KindRespond      Kind = "respond"
	KindResponseForm Kind = "response_modal"
)

const separator = ":"

var (
	amountPattern = regexp.MustCompile(`^[0-9]{1,9}(\.[0-9]{1,2})?$`)
	pagePattern   = regexp.MustCompile(`^[1-9][0-9]{0,6}$`)
)

// Token is one of ConfirmAdd, CancelAdd, ViewPage, Respond or ResponseForm.
type Token interface {
	Kind() Kind
	String() string
}

// ConfirmAdd commits a proposed donation.
type ConfirmAdd struct {
	Amount decimal.Decimal
}

func (ConfirmAdd) Kind() Kind { return KindConfirmAdd }

func (t ConfirmAdd) String() string {
	return string(KindConfirmAdd) + separator + t.Amount.StringFixed(2)
}

// CancelAdd discards a proposed donation.
type CancelAdd struct{}

func (CancelAdd) Kind() Kind { return KindCancelAdd }

func (CancelAdd) String() string { return string(KindCancelAdd) }

// ViewPage opens a page of the donation ledger.
type ViewPage struct {
	Page int
}

func (ViewPage) Kind() Kind { return KindViewPage }

func (t ViewPage) String() string {
	return string(KindViewPage) + separator + strconv.Itoa(t.Page)
}

// Respond opens the response form for a question.
type Respond struct {
	QuestionID string
}

func (Respond) Kind() Kind { return KindRespond }

func (t Respond) String() string {
	return string(KindRespond) + separator + t.QuestionID
}

// ResponseForm carries the question a submitted response targets.
type ResponseForm struct {
	QuestionID string
}

func (ResponseForm) Kind() Kind { return KindResponseForm }

func (t ResponseForm) String() string {
	return string(KindResponseForm) + separator + t.QuestionID
}

// Parse decodes a control identifier. Anything other than the exact wire
// form of a known variant is rejected with ErrMalformed.
func Parse(raw string) (Token, error) {
	if raw == "" || len(raw) > MaxLength {
		return nil, fmt.Errorf("%w: length %d", ErrMalformed, len(raw))
	}
	kind, payload, hasPayload := strings.Cut(raw, separator)

	switch Kind(kind) {
	case KindCancelAdd:
		if hasPayload {
			return nil, fmt.Errorf("%w: %s takes no payload", ErrMalformed, kind)
		}
		return CancelAdd{}, nil
	case KindConfirmAdd:
		if !hasPayload {
			break
		}
		amount, err := parseAmount(payload)
		if err != nil {
			return nil, err
		}
		return ConfirmAdd{Amount: amount}, nil
	case KindViewPage:
		if !hasPayload {
			break
		}
		page, err := parsePage(payload)
		if err != nil {
			return nil, err
		}
		return ViewPage{Page: page}, nil
	case KindRespond:
		if !hasPayload {
			break
		}
		id, err := parseID(payload)
		if err != nil {
			return nil, err
		}
		return Respond{QuestionID: id}, nil
	case KindResponseForm:
		if !hasPayload {
			break
		}
		id, err := parseID(payload)
		if err != nil {
			return nil, err
		}
		return ResponseForm{QuestionID: id}, nil
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrMalformed, kind)
	}
	return nil, fmt.Errorf("%w: %s requires a payload", ErrMalformed, kind)
}

func parseAmount(s string) (decimal.Decimal, error) {
	if !amountPattern.MatchString(s) {
		return decimal.Decimal{}, fmt.Errorf("%w: amount %q", ErrMalformed, s)
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: amount %q", ErrMalformed, s)
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: amount must be positive", ErrMalformed)
	}
	return amount, nil
}

func parsePage(s string) (int, error) {
	if !pagePattern.MatchString(s) {
		return 0, fmt.Errorf("%w: page %q", ErrMalformed, s)
	}
	page, err := strconv.Atoi(s)
	if err != nil || page > MaxPage {
		return 0, fmt.Errorf("%w: page %q", ErrMalformed, s)
	}
	return page, nil
}

// parseID accepts only the canonical lowercase hyphenated UUID form.
func parseID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil || id.String() != s {
		return "", fmt.Errorf("%w: id %q", ErrMalformed, s)
	}
	return s, nil
}
