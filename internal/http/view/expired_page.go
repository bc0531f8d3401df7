package view

import (
	"bytes"
	"html/template"
)

// ExpiredPageData provides the dynamic fields of the expired-link page.
type ExpiredPageData struct {
	Title  string
	Reason string
}

var expiredPageTmpl = template.Must(template.New("expired_page").Parse(`
<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8" />
	<meta name="viewport" content="width=device-width, initial-scale=1" />
	<title>{{if .Title}}{{.Title}}{{else}}Link unavailable{{end}}</title>
	<style>
		:root {
			--bg: #090a0f;
			--card: rgba(255, 255, 255, 0.05);
			--border: rgba(255, 255, 255, 0.15);
			--text: #e7ecff;
			--muted: #a1acc5;
			--accent: #fca5a5;
			font-family: "Inter", -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
		}
		* { box-sizing: border-box; }
		body {
			margin: 0;
			min-height: 100vh;
			display: flex;
			align-items: center;
			justify-content: center;
			background: radial-gradient(circle at 20% 20%, #111827, #030712 60%);
			color: var(--text);
		}
		.card {
			background: var(--card);
			border: 1px solid var(--border);
			border-radius: 18px;
			padding: 32px;
			width: min(520px, 92vw);
			box-shadow: 0 45px 100px rgba(0,0,0,0.35);
			backdrop-filter: blur(18px);
			text-align: center;
		}
		h1 {
			font-size: 1.5rem;
			margin-bottom: 6px;
			color: var(--accent);
		}
		p {
			color: var(--muted);
			margin-top: 0;
		}
	</style>
</head>
<body>
	<div class="card">
		<h1>{{if .Title}}{{.Title}}{{else}}Link unavailable{{end}}</h1>
		<p>{{.Reason}}</p>
		<p>Request a fresh streaming link to continue watching.</p>
	</div>
</body>
</html>
`))

// RenderExpiredPage expands the expired-link page template with the provided data.
func RenderExpiredPage(data ExpiredPageData) (string, error) {
	var buf bytes.Buffer
	if err := expiredPageTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
