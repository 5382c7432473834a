package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/pkg/money"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"brl": money.BRL,
	"pct": money.Percent,
}).ParseFS(templateFS, "templates/*.html"))

// SubjectPasswordReset assunto do e-mail de recuperação de senha.
const SubjectPasswordReset = "Recuperação de Senha - RepCom"

type orderView struct {
	ports.OrderDocument
	DisplayNumber string
	Date          string
	StatusLabel   string
	NotesOrEmpty  string
}

// OrderConfirmation monta o e-mail de confirmação do pedido.
func OrderConfirmation(to []string, doc ports.OrderDocument) (Message, error) {
	notes := strings.TrimSpace(doc.Notes)
	if notes == "" {
		notes = "Sem observações."
	}
	view := orderView{
		OrderDocument: doc,
		DisplayNumber: doc.DisplayNumber(),
		Date:          doc.IssuedAt.Format("02/01/2006"),
		StatusLabel:   strings.ToUpper(strings.ReplaceAll(doc.Status, "_", " ")),
		NotesOrEmpty:  notes,
	}
	html, err := render("pedido_confirmacao.html", view)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      to,
		Subject: fmt.Sprintf("Pedido %s - Confirmação", view.DisplayNumber),
		HTML:    html,
	}, nil
}

// PasswordReset monta o e-mail com o link de redefinição.
func PasswordReset(to, name, link string) (Message, error) {
	html, err := render("recuperacao_senha.html", map[string]string{"Name": name, "Link": link})
	if err != nil {
		return Message{}, err
	}
	return Message{To: []string{to}, Subject: SubjectPasswordReset, HTML: html}, nil
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("mail: renderizar %s: %w", name, err)
	}
	return buf.String(), nil
}
