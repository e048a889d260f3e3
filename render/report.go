package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"io"

	"playstore-dashboard/models"
)

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Arial, sans-serif; font-size: 12px; color: black; margin: 50px; }
.warning { background: #fff4e5; border-left: 4px solid #ffb020; padding: 12px; }
table { border-collapse: collapse; margin-top: 24px; }
th, td { border: 1px solid #ddd; padding: 4px 10px; }
th { background: #f0f2f6; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Warning}}<p class="warning">{{.Warning}}</p>{{else}}
{{if .Chart}}<img alt="{{.Title}}" src="{{.Chart}}">{{end}}
<table>
<thead><tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>{{end}}</tbody>
</table>{{end}}
</body>
</html>
`))

type reportData struct {
	Title   string
	Warning string
	Chart   template.URL
	Header  []string
	Rows    [][]string
}

// Report writes a standalone HTML page with the chart embedded as a PNG and
// the tidy table below it. A closed viewing window yields the warning page.
func Report(w io.Writer, res *models.Result) error {
	data := reportData{Title: res.Title}
	if !res.Renderable {
		data.Warning = res.Warning
		return reportTemplate.Execute(w, data)
	}

	var png bytes.Buffer
	switch err := Chart(&png, res); {
	case err == nil:
		data.Chart = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png.Bytes()))
	case errors.Is(err, ErrNothingToDraw):
	default:
		return fmt.Errorf("render: chart: %w", err)
	}

	data.Header, data.Rows = res.Records()
	return reportTemplate.Execute(w, data)
}
