package utils

import (
	"bytes"
	"html/template"
	"log"

	"gopkg.in/gomail.v2"

	"pos_manager/config"
)

type ReceiptLine struct {
	Name     string
	Quantity int
	Subtotal string
}

// ReceiptData feeds the receipt email template.
type ReceiptData struct {
	OrderNumber   string
	StoreName     string
	Lines         []ReceiptLine
	Subtotal      string
	Tax           string
	Discount      string
	Tip           string
	Total         string
	PaymentMethod string
	QRBase64      string
}

var receiptTmpl = template.Must(template.New("receipt").Parse(`
<h2>{{.StoreName}}</h2>
<p>Receipt for order <strong>{{.OrderNumber}}</strong></p>
<table>
{{range .Lines}}<tr><td>{{.Quantity}} × {{.Name}}</td><td align="right">{{.Subtotal}}</td></tr>
{{end}}
<tr><td>Subtotal</td><td align="right">{{.Subtotal}}</td></tr>
{{if ne .Discount "0.00"}}<tr><td>Discount</td><td align="right">-{{.Discount}}</td></tr>{{end}}
<tr><td>Tax</td><td align="right">{{.Tax}}</td></tr>
{{if ne .Tip "0.00"}}<tr><td>Tip</td><td align="right">{{.Tip}}</td></tr>{{end}}
<tr><td><strong>Total ({{.PaymentMethod}})</strong></td><td align="right"><strong>{{.Total}}</strong></td></tr>
</table>
{{if .QRBase64}}<p><img src="{{.QRBase64}}" alt="receipt code"/></p>{{end}}
`))

// SendReceiptEmail mails a receipt asynchronously so checkout latency never
// waits on SMTP.
func SendReceiptEmail(to string, data ReceiptData) {
	go func() {
		var body bytes.Buffer
		if err := receiptTmpl.Execute(&body, data); err != nil {
			log.Printf("failed to render receipt email: %v", err)
			return
		}
		sendMail(to, "Your receipt for order #"+data.OrderNumber, body.String())
	}()
}

// SendReportEmail mails the daily sales summary to the organization owner.
func SendReportEmail(to, subject, htmlBody string) {
	go func() {
		sendMail(to, subject, htmlBody)
	}()
}

func sendMail(to, subject, htmlBody string) {
	host := config.Config("SMTP_HOST")
	port := config.ConfigInt("SMTP_PORT", 587)
	username := config.Config("SMTP_USERNAME")
	password := config.Config("SMTP_PASSWORD")
	from := config.Config("SMTP_FROM")

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(host, port, username, password)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("failed to send email to %s: %v", to, err)
	}
}
