// Package pages renders the HTML bodies of the generated pages.
package pages

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/indigo-web/webpool/http/status"
)

//go:embed templates/*.html
var files embed.FS

// every page is parsed into its own set, as they all define the same blocks
var (
	homePage   = parse("home.html")
	aboutPage  = parse("about.html")
	statusPage = parse("status.html")
	errorPage  = parse("error.html")
)

func parse(page string) *template.Template {
	return template.Must(template.ParseFS(files, "templates/layout.html", "templates/"+page))
}

// Status is what the status page shows. It is also served as JSON.
type Status struct {
	Port      uint16 `json:"port"`
	State     string `json:"state"`
	Workers   int    `json:"workers"`
	Live      int    `json:"live"`
	Queued    int    `json:"queued"`
	Completed uint64 `json:"completed"`
	Failed    uint64 `json:"failed"`
}

func Home(port uint16) ([]byte, error) {
	return render(homePage, struct{ Port uint16 }{port})
}

func About() ([]byte, error) {
	return render(aboutPage, nil)
}

func StatusPage(s Status) ([]byte, error) {
	return render(statusPage, s)
}

// Error renders a page titled "<code> <reason>" with the message explaining the code.
// Codes without a predefined message fall back to the reason phrase.
func Error(code status.Code) ([]byte, error) {
	message := status.Message(code)
	if len(message) == 0 {
		message = status.Text(code)
	}

	return render(errorPage, struct {
		Code    status.Code
		Reason  string
		Message string
	}{code, status.Text(code), message})
}

func render(tmpl *template.Template, data any) ([]byte, error) {
	var buff bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buff, "layout", data); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}
