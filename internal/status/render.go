package status

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"github.com/dkeye/Relay/internal/core"
)

//go:embed style.css
var stylesheet []byte

const (
	PageFile  = "status.html"
	StyleFile = "style.css"
)

var page = template.Must(template.New("status").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://fonts.googleapis.com/css?family=Forum|Lato">
<link rel="stylesheet" href="` + StyleFile + `">
</head>
<body>
<header><h1>{{.Title}}</h1></header>
<div id="wrapper">
{{- if .Rooms}}
<p>The following rooms are currently active:</p>
<ul>
{{- range .Rooms}}
<li>{{if .Full}}<em>{{.ID}} ({{.Occupants}})</em>{{else}}{{.ID}} ({{.Occupants}}){{end}}</li>
{{- end}}
</ul>
{{- else}}
<p class="empty">No rooms are currently active.</p>
{{- end}}
<p><small>Updated {{.Updated.Format "2006-01-02 15:04:05 MST"}}</small></p>
</div>
</body>
</html>
`))

type pageData struct {
	Title   string
	Rooms   []core.RoomInfo
	Updated time.Time
}

// Render produces the status page for the given occupancy snapshot.
func Render(title string, rooms []core.RoomInfo, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, pageData{Title: title, Rooms: rooms, Updated: now}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Stylesheet returns the CSS written next to the status page.
func Stylesheet() []byte {
	return stylesheet
}
