package apptest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

// ── Hasher ────────────────────────────────────────────────────────────────────

// Hasher hash reversível "hash:<senha>", suficiente para testes.
type Hasher struct{}

var _ ports.PasswordHasher = Hasher{}

func (Hasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (Hasher) Compare(hash, password string) error {
	if hash != "hash:"+password {
		return errors.New("senha não confere")
	}
	return nil
}

// ── Tokens ────────────────────────────────────────────────────────────────────

// Tokens guarda o contexto emitido e devolve um token opaco sequencial.
type Tokens struct {
	mu     sync.Mutex
	issued map[string]tenant.Context
}

var _ ports.TokenCodec = (*Tokens)(nil)

func NewTokens() *Tokens { return &Tokens{issued: map[string]tenant.Context{}} }

func (t *Tokens) Issue(tc tenant.Context) (string, time.Time, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	token := fmt.Sprintf("tok-%d", len(t.issued)+1)
	t.issued[token] = tc
	return token, time.Now().Add(time.Hour), nil
}

func (t *Tokens) Parse(token string) (tenant.Context, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tc, ok := t.issued[token]
	if !ok {
		return tenant.Context{}, domain.ErrUnauthorized
	}
	return tc, nil
}

// ── Notifier ──────────────────────────────────────────────────────────────────

// SentReset e-mail de recuperação registrado.
type SentReset struct {
	To, Name, Link string
}

// Notifier grava as mensagens pedidas. Err, quando definido, é devolvido em todo envio.
type Notifier struct {
	mu     sync.Mutex
	Err    error
	Orders []ports.OrderDocument
	To     [][]string
	Resets []SentReset
}

var _ ports.Notifier = (*Notifier)(nil)

func (n *Notifier) SendOrderConfirmation(_ context.Context, to []string, doc ports.OrderDocument) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.Orders = append(n.Orders, doc)
	n.To = append(n.To, to)
	return nil
}

func (n *Notifier) SendPasswordReset(_ context.Context, to, name, link string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.Resets = append(n.Resets, SentReset{To: to, Name: name, Link: link})
	return nil
}

// ── Consultas externas ────────────────────────────────────────────────────────

// Lookup devolve os registros cadastrados por chave; ausentes dão ErrNotFound.
type Lookup struct {
	Companies map[string]*ports.CompanyRecord
	Addresses map[string]*ports.AddressRecord
	Err       error
}

var _ ports.RegistryLookup = (*Lookup)(nil)

func (l *Lookup) LookupTaxID(_ context.Context, cnpj string) (*ports.CompanyRecord, error) {
	if l.Err != nil {
		return nil, l.Err
	}
	if rec, ok := l.Companies[cnpj]; ok {
		return rec, nil
	}
	return nil, domain.NotFound("CNPJ")
}

func (l *Lookup) LookupPostalCode(_ context.Context, cep string) (*ports.AddressRecord, error) {
	if l.Err != nil {
		return nil, l.Err
	}
	if rec, ok := l.Addresses[cep]; ok {
		return rec, nil
	}
	return nil, domain.NotFound("CEP")
}

// ── Documentos ────────────────────────────────────────────────────────────────

// Documents guarda em memória o que foi arquivado.
type Documents struct {
	mu    sync.Mutex
	Err   error
	Files map[string][]byte
}

var _ ports.DocumentStore = (*Documents)(nil)

func NewDocuments() *Documents { return &Documents{Files: map[string][]byte{}} }

func (d *Documents) Put(_ context.Context, key, _ string, body io.Reader) (string, error) {
	if d.Err != nil {
		return "", d.Err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Files[key] = b
	return "mem://" + key, nil
}

// PDF renderiza um texto simples com o número do pedido.
type PDF struct{}

var _ ports.OrderPDFGenerator = PDF{}

func (PDF) Render(doc ports.OrderDocument) ([]byte, error) {
	return []byte("%PDF pedido " + doc.DisplayNumber()), nil
}

// Sheet planilha em CSV simples (separador ';'), o bastante para testar a importação.
type Sheet struct{}

var _ ports.Spreadsheet = Sheet{}

func (Sheet) Rows(r io.Reader) ([][]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(string(b)), "\n") {
		rows = append(rows, strings.Split(strings.TrimRight(line, "\r"), ";"))
	}
	return rows, nil
}

func (Sheet) Template() ([]byte, error) {
	return []byte("codigo;descricao;preco;unidade;categoria;tamanho;cor;sku;estoque"), nil
}

// CSV monta o conteúdo aceito por Sheet a partir das linhas.
func CSV(rows ...[]string) *bytes.Reader {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = strings.Join(r, ";")
	}
	return bytes.NewReader([]byte(strings.Join(lines, "\n")))
}
