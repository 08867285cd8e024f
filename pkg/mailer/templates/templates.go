package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names understood by the email worker.
const Welcome = "welcome"

var welcomeHTML = template.Must(template.New(Welcome).Parse(`
<!doctype html>
<html>
  <body style="font-family: sans-serif; color: #1f2937;">
    <h2>Welcome{{if .Name}}, {{.Name}}{{end}}!</h2>
    <p>Your account is ready. Eight default spending categories were created
    for you, so you can start logging expenses right away.</p>
    <p>Monthly budget: {{.CurrencySymbol}}{{printf "%.2f" .MonthlyBudget}}</p>
    <p>Happy tracking!</p>
  </body>
</html>
`))

// Render renders the named template to subject, text and HTML bodies.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case Welcome:
		var buf bytes.Buffer
		if err = welcomeHTML.Execute(&buf, templateData(data)); err != nil {
			return "", "", "", err
		}
		subject = "Welcome to Expense Tracker"
		text = "Your account is ready. Eight default spending categories were created for you."
		html = buf.String()
		return subject, text, html, nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}

type welcomeData struct {
	Name           string
	CurrencySymbol string
	MonthlyBudget  float64
}

func templateData(data map[string]any) welcomeData {
	d := welcomeData{}
	if v, ok := data["Name"].(string); ok {
		d.Name = v
	}
	if v, ok := data["CurrencySymbol"].(string); ok {
		d.CurrencySymbol = v
	}
	switch v := data["MonthlyBudget"].(type) {
	case float64:
		d.MonthlyBudget = v
	case int:
		d.MonthlyBudget = float64(v)
	}
	return d
}
