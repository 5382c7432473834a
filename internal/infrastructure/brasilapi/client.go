// Package brasilapi adaptador de consultas de CNPJ e CEP na BrasilAPI.
package brasilapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
)

var _ ports.RegistryLookup = (*Client)(nil)

// DefaultBaseURL endpoint público.
const DefaultBaseURL = "https://brasilapi.com.br/api"

// Client implementa ports.RegistryLookup. Timeout vira domain.ErrTimeout e circuito
// aberto vira domain.ErrUnavailable.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *Breaker
}

// NewClient timeout <= 0 assume 15s.
func NewClient(baseURL string, timeout time.Duration, breaker *Breaker) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if breaker == nil {
		breaker = NewBreaker(BreakerConfig{})
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		breaker:    breaker,
	}
}

// ── Respostas da BrasilAPI ────────────────────────────────────────────────────

type cnpjResponse struct {
	CNPJ               string `json:"cnpj"`
	RazaoSocial        string `json:"razao_social"`
	NomeFantasia       string `json:"nome_fantasia"`
	Situacao           string `json:"descricao_situacao_cadastral"`
	InicioAtividade    string `json:"data_inicio_atividade"`
	Logradouro         string `json:"logradouro"`
	Numero             string `json:"numero"`
	Complemento        string `json:"complemento"`
	Bairro             string `json:"bairro"`
	Municipio          string `json:"municipio"`
	UF                 string `json:"uf"`
	CEP                string `json:"cep"`
	Telefone           string `json:"ddd_telefone_1"`
	Email              string `json:"email"`
	AtividadePrincipal string `json:"cnae_fiscal_descricao"`
}

type cepResponse struct {
	CEP          string `json:"cep"`
	State        string `json:"state"`
	City         string `json:"city"`
	Neighborhood string `json:"neighborhood"`
	Street       string `json:"street"`
}

type apiError struct {
	Message string `json:"message"`
}

// LookupTaxID consulta /cnpj/v1/{cnpj}.
func (c *Client) LookupTaxID(ctx context.Context, cnpj string) (*ports.CompanyRecord, error) {
	var r cnpjResponse
	if err := c.get(ctx, "/cnpj/v1/"+cnpj, "CNPJ", &r); err != nil {
		return nil, err
	}
	return &ports.CompanyRecord{
		TaxID:        r.CNPJ,
		LegalName:    r.RazaoSocial,
		TradeName:    r.NomeFantasia,
		Status:       r.Situacao,
		OpenedAt:     r.InicioAtividade,
		Street:       r.Logradouro,
		Number:       r.Numero,
		Complement:   r.Complemento,
		District:     r.Bairro,
		City:         r.Municipio,
		State:        r.UF,
		PostalCode:   r.CEP,
		Phone:        r.Telefone,
		Email:        r.Email,
		MainActivity: r.AtividadePrincipal,
	}, nil
}

// LookupPostalCode consulta /cep/v1/{cep}.
func (c *Client) LookupPostalCode(ctx context.Context, cep string) (*ports.AddressRecord, error) {
	var r cepResponse
	if err := c.get(ctx, "/cep/v1/"+cep, "CEP", &r); err != nil {
		return nil, err
	}
	return &ports.AddressRecord{
		PostalCode: r.CEP,
		Street:     r.Street,
		District:   r.Neighborhood,
		City:       r.City,
		State:      r.State,
	}, nil
}

func (c *Client) get(ctx context.Context, path, what string, out any) error {
	err := c.breaker.Execute(func() error {
		return c.do(ctx, path, what, out)
	}, countable)
	switch {
	case errors.Is(err, ErrCircuitOpen):
		log.Warn().Str("path", path).Msg("brasilapi: circuito aberto, consulta recusada")
		return fmt.Errorf("consulta de %s: %w", what, domain.ErrUnavailable)
	case err != nil:
		return err
	}
	return nil
}

func (c *Client) do(ctx context.Context, path, what string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("brasilapi: criar request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("consulta de %s demorou demais: %w", what, domain.ErrTimeout)
		}
		return fmt.Errorf("brasilapi: chamada HTTP: %v: %w", err, domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return fmt.Errorf("brasilapi: ler resposta: %v: %w", err, domain.ErrUnavailable)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return domain.NotFound(what)
	case resp.StatusCode == http.StatusBadRequest:
		var e apiError
		_ = json.Unmarshal(raw, &e)
		if e.Message == "" {
			e.Message = what + " inválido"
		}
		return domain.NewValidationError(strings.ToLower(what), e.Message)
	default:
		return fmt.Errorf("brasilapi: HTTP %d: %w", resp.StatusCode, domain.ErrUnavailable)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("brasilapi: resposta inválida: %v: %w", err, domain.ErrUnavailable)
	}
	return nil
}

// countable apenas indisponibilidade e timeout abrem o circuito; 404 e 400 são respostas válidas.
func countable(err error) bool {
	return errors.Is(err, domain.ErrUnavailable) || errors.Is(err, domain.ErrTimeout)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
