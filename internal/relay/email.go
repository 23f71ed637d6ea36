package relay

import (
	"bytes"
	"fmt"
	"html/template"

	"unishift/internal/domain"
)

// DefaultOrganisation signs outbound replies when none is configured.
const DefaultOrganisation = "UniSHIFT"

var responseTemplate = template.Must(template.New("response").Parse(`<h2>Thank you for your question!</h2>
<p><strong>Your question:</strong> {{.Question}}</p>
<p><strong>Our response:</strong> {{.Response}}</p>
<br>
<p>Best regards,<br>The {{.Organisation}} Team</p>
`))

// Composer renders the reply email sent to a question's submitter.
type Composer struct {
	organisation string
}

// NewComposer returns a Composer signing emails as organisation.
func NewComposer(organisation string) *Composer {
	if organisation == "" {
		organisation = DefaultOrganisation
	}
	return &Composer{organisation: organisation}
}

// Compose builds the email answering q with response. User-supplied text is
// HTML-escaped.
func (c *Composer) Compose(q *domain.Question, response string) (domain.Email, error) {
	var body bytes.Buffer
	err := responseTemplate.Execute(&body, struct {
		Question     string
		Response     string
		Organisation string
	}{q.Question, response, c.organisation})
	if err != nil {
		return domain.Email{}, fmt.Errorf("render response email: %w", err)
	}
	return domain.Email{
		To:       q.Email,
		Subject:  fmt.Sprintf("Response to your %s question", c.organisation),
		HTMLBody: body.String(),
	}, nil
}
