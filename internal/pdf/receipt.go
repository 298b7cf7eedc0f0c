package pdf

import (
	"bytes"
	"fmt"
	"html/template"
)

// ReceiptLine is one purchased item on the printable receipt.
type ReceiptLine struct {
	Name      string
	Freshness string
	Weight    string
	Price     string
}

// ReceiptData holds everything needed to render a printable receipt document.
type ReceiptData struct {
	StoreName     string
	ReceiptNumber string
	IssuedAt      string
	CustomerEmail string
	Lines         []ReceiptLine
	Total         string
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
      body { font-family: Arial, Helvetica, sans-serif; color: #111827; margin: 0; }
      h1 { font-size: 22px; margin: 0 0 4px; }
      .meta { color: #6b7280; font-size: 12px; margin: 0 0 24px; }
      table { width: 100%; border-collapse: collapse; font-size: 12px; }
      th { text-align: left; border-bottom: 2px solid #111827; padding: 6px 0; }
      th.num, td.num { text-align: right; }
      td { border-bottom: 1px solid #e5e7eb; padding: 6px 0; }
      .freshness { color: #6b7280; }
      tfoot td { border-bottom: none; font-weight: bold; padding-top: 12px; }
    </style>
  </head>
  <body>
    <h1>{{.StoreName}}</h1>
    <p class="meta">Receipt {{.ReceiptNumber}} &middot; {{.IssuedAt}}{{if .CustomerEmail}} &middot; {{.CustomerEmail}}{{end}}</p>
    <table>
      <thead>
        <tr>
          <th>Item</th>
          <th class="num">Weight (g)</th>
          <th class="num">Price</th>
        </tr>
      </thead>
      <tbody>
        {{range .Lines}}
        <tr>
          <td>{{.Name}} <span class="freshness">({{.Freshness}})</span></td>
          <td class="num">{{.Weight}}</td>
          <td class="num">{{.Price}}</td>
        </tr>
        {{end}}
      </tbody>
      <tfoot>
        <tr>
          <td colspan="2">Total</td>
          <td class="num">{{.Total}}</td>
        </tr>
      </tfoot>
    </table>
  </body>
</html>
`))

// RenderReceiptHTML renders the standalone receipt document that Gotenberg
// converts to PDF.
func RenderReceiptHTML(data ReceiptData) ([]byte, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render receipt document: %w", err)
	}
	return buf.Bytes(), nil
}
