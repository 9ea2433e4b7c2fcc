package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"
)

const resetSubject = "Reset your password"

var resetHTML = template.Must(template.New("reset").Parse(`<div style="font-family:system-ui, -apple-system, Segoe UI, Roboto, Helvetica, Arial, sans-serif; line-height:1.6">
  <h2>Password reset request</h2>
  <p>We received a request to reset your password. Click the button below to set a new password.</p>
  <p><a href="{{.URL}}" style="display:inline-block;padding:10px 16px;background:#2563eb;color:#fff;border-radius:8px;text-decoration:none">Reset Password</a></p>
  <p>If the button doesn't work, copy and paste this link into your browser:</p>
  <p><a href="{{.URL}}">{{.URL}}</a></p>
  <p>This link will expire in {{.Minutes}} minutes. If you didn't request this, you can safely ignore this email.</p>
</div>
`))

// ResetURL builds the frontend link that carries the raw reset token.
func ResetURL(frontendOrigin, token string) string {
	return strings.TrimRight(frontendOrigin, "/") + "/reset-password?token=" + url.QueryEscape(token)
}

// ResetPasswordMessage renders the reset email for to.
func ResetPasswordMessage(to, frontendOrigin, token string, validity time.Duration) (Message, error) {
	link := ResetURL(frontendOrigin, token)
	minutes := int(validity.Minutes())

	var buf bytes.Buffer
	if err := resetHTML.Execute(&buf, struct {
		URL     string
		Minutes int
	}{link, minutes}); err != nil {
		return Message{}, fmt.Errorf("render reset email: %w", err)
	}

	text := fmt.Sprintf("We received a request to reset your password.\n\nOpen this link to set a new one:\n%s\n\nThis link will expire in %d minutes. If you didn't request this, you can safely ignore this email.\n", link, minutes)

	return Message{To: to, Subject: resetSubject, HTML: buf.String(), Text: text}, nil
}
