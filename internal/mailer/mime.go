package mailer

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"strings"
	"time"
)

// formatAddress RFC 2047-encodes non-ASCII display names.
func formatAddress(name, addr string) string {
	if name == "" {
		return addr
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", name), addr)
}

func encodeSubject(subject string) string {
	return mime.QEncoding.Encode("utf-8", subject)
}

func newMessageID(domain string) string {
	return fmt.Sprintf("<%s@%s>", randomHex(12), domain)
}

func randomBoundary() string {
	return "alt-" + randomHex(12)
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func validate(e Email) error {
	switch {
	case len(e.To) == 0:
		return fmt.Errorf("mailer: at least one recipient required")
	case e.From == "":
		return fmt.Errorf("mailer: from address required")
	case e.Subject == "":
		return fmt.Errorf("mailer: subject required")
	case e.TextBody == "" && e.HTMLBody == "":
		return fmt.Errorf("mailer: text or html body required")
	}
	return nil
}

// writePart writes the content headers and a quoted-printable body.
func writePart(b *strings.Builder, contentType, body string) error {
	b.WriteString("Content-Type: " + contentType + "; charset=UTF-8\r\n")
	b.WriteString("Content-Transfer-Encoding: quoted-printable\r\n\r\n")
	w := quotedprintable.NewWriter(b)
	if _, err := w.Write([]byte(body)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	b.WriteString("\r\n")
	return nil
}

func buildMIMEMessage(e Email, messageIDDomain string) (string, error) {
	if err := validate(e); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: %s\r\n", newMessageID(messageIDDomain))
	fmt.Fprintf(&b, "From: %s\r\n", formatAddress(e.FromName, e.From))
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(e.To, ", "))
	if len(e.Cc) > 0 {
		fmt.Fprintf(&b, "Cc: %s\r\n", strings.Join(e.Cc, ", "))
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", encodeSubject(e.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	for k, v := range e.Headers {
		if k == "" || v == "" || strings.ContainsAny(k+v, "\r\n") {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\r\n", k, v)
	}

	if e.TextBody == "" || e.HTMLBody == "" {
		var err error
		if e.HTMLBody != "" {
			err = writePart(&b, "text/html", e.HTMLBody)
		} else {
			err = writePart(&b, "text/plain", e.TextBody)
		}
		return b.String(), err
	}

	boundary := randomBoundary()
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)
	fmt.Fprintf(&b, "--%s\r\n", boundary)
	if err := writePart(&b, "text/plain", e.TextBody); err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "--%s\r\n", boundary)
	if err := writePart(&b, "text/html", e.HTMLBody); err != nil {
		return "", err
	}
	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return b.String(), nil
}
