package mail

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// RenderSubmissionNotification builds the html body for a new
// submission mail. Fields are listed alphabetically so the mail is
// stable regardless of map order.
func RenderSubmissionNotification(projectName string, data map[string]interface{}) string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h2>New submission for %s</h2>", html.EscapeString(projectName)))
	b.WriteString("<table>")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("<tr><td><b>%s</b></td><td>%s</td></tr>",
			html.EscapeString(k), html.EscapeString(fmt.Sprintf("%v", data[k]))))
	}
	b.WriteString("</table>")
	b.WriteString("<p>Review it in your dashboard to publish or reject.</p>")
	return b.String()
}
