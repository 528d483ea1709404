// Copyright 2025 The udfcost Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"github.com/google/safehtml/template"

	"github.com/datafusion-contrib/udfcost/cmd/udfcost/internal/costtab"
)

var htmlTemplate = template.Must(template.New("udfcost").ParseFromTrustedTemplate(template.MakeTrustedTemplate(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>UDF Cost Model</title>
<style>
.costtab { border-collapse: collapse; }
.costtab th:nth-child(-n+2) { text-align: left; }
.costtab td:nth-child(-n+2) { text-align: left; }
.costtab th, .costtab td { text-align: right; padding: 0.1em 1em; }
.costtab th { border-bottom: 1px solid #666; }
pre.legend { color: #444; }
</style>
</head>
<body>
{{range .}}<h2>{{.Title}}</h2>
{{with .Legend}}<pre class='legend'>{{.}}</pre>
{{end}}<table class='costtab'>
<thead>
<tr>{{range .Header}}<th>{{.}}{{end}}
</thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.Text}}{{end}}
{{end}}</tbody>
</table>
{{end}}</body>
</html>
`)))

// formatHTML writes an HTML rendering of the tables to w.
func formatHTML(w io.Writer, tables []*costtab.Table) error {
	return htmlTemplate.Execute(w, tables)
}
