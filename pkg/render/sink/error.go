package sink

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/roadtower/pkg/errors"
	"github.com/matzehuels/roadtower/pkg/render/styles"
)

const (
	errorWidth  = 600
	errorHeight = 80
)

// ErrorMessage formats err the way the render view displays it: "Error: "
// followed by the user-facing message as is. Backend messages are never
// reworded.
func ErrorMessage(err error) string {
	msg := strings.TrimSpace(errors.UserMessage(err))
	if msg == "" {
		msg = errors.UnknownBackendError
	}
	return "Error: " + msg
}

// RenderErrorHTML returns the HTML fragment shown in place of a diagram.
func RenderErrorHTML(err error) []byte {
	return fmt.Appendf(nil, "<p class=\"roadmap-error\">%s</p>\n", styles.EscapeXML(ErrorMessage(err)))
}

// RenderErrorSVG returns a small SVG document carrying the error message, for
// consumers that expect an image.
func RenderErrorSVG(err error) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d" class="roadmap-error">`+"\n",
		errorWidth, errorHeight, errorWidth, errorHeight)
	fmt.Fprintf(&buf, `  <text x="%d" y="%d" font-size="16" text-anchor="middle" dominant-baseline="middle" style="fill:#b42318">%s</text>`+"\n",
		errorWidth/2, errorHeight/2, styles.EscapeXML(ErrorMessage(err)))
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
