package catalog

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/weslleycarlos/representacao-comercial/internal/application/audit"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/entity"
	"github.com/weslleycarlos/representacao-comercial/internal/domain/tenant"
)

const (
	previewRows   = 6
	singleVariant = "Único"
	xlsxType      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	gridSep = regexp.MustCompile(`[/\-,\s]+`)

	// 1.234 ou 12.345.678: pontos só como separador de milhar
	thousandsOnly = regexp.MustCompile(`^[1-9]\d{0,2}(\.\d{3})+$`)
)

// ImportUseCase importação de produtos e preços a partir de planilha.
type ImportUseCase struct {
	repos ports.Repos
	tx    ports.TxRunner
	sheet ports.Spreadsheet
	docs  ports.DocumentStore // nil: sem arquivamento
}

func NewImportUseCase(repos ports.Repos, tx ports.TxRunner, sheet ports.Spreadsheet, docs ports.DocumentStore) *ImportUseCase {
	return &ImportUseCase{repos: repos, tx: tx, sheet: sheet, docs: docs}
}

// Preview primeiras linhas não vazias da planilha, cabeçalho incluído.
func (uc *ImportUseCase) Preview(ctx context.Context, tc tenant.Context, body io.Reader) (*dto.ImportPreviewResponse, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	rows, err := uc.sheet.Rows(body)
	if err != nil {
		return nil, domain.NewValidationError("file", "planilha inválida")
	}
	out := make([][]string, 0, previewRows)
	for _, row := range rows {
		if blank(row) {
			continue
		}
		out = append(out, row)
		if len(out) == previewRows {
			break
		}
	}
	return &dto.ImportPreviewResponse{Rows: out}, nil
}

// Template planilha modelo.
func (uc *ImportUseCase) Template() ([]byte, error) {
	return uc.sheet.Template()
}

// Import processa a planilha linha a linha (uma transação por linha).
// Erros de linha são acumulados; apenas erros de acesso ou de leitura abortam.
func (uc *ImportUseCase) Import(ctx context.Context, tc tenant.Context, catalogID string, mapping dto.ImportMapping, filename string, body io.Reader) (*dto.ImportResponse, error) {
	if err := tc.Manager(); err != nil {
		return nil, err
	}
	// ── 1. Catálogo e mapeamento ──
	catalog, err := uc.repos.Catalogs.GetByID(ctx, tc.OrganizationID, catalogID)
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, domain.NotFound("catálogo")
	}
	cols, err := parseMapping(mapping)
	if err != nil {
		return nil, err
	}

	// ── 2. Leitura ──
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	rows, err := uc.sheet.Rows(bytes.NewReader(raw))
	if err != nil {
		return nil, domain.NewValidationError("file", "planilha inválida")
	}

	// ── 3. Linhas (a primeira é cabeçalho) ──
	resp := &dto.ImportResponse{Errors: []dto.ImportRowError{}}
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := uc.importRow(ctx, tc, catalog, cols, rows[i]); err != nil {
			resp.Errors = append(resp.Errors, dto.ImportRowError{Row: i + 1, Message: err.Error()})
			continue
		}
		resp.ProcessedCount++
	}

	// ── 4. Arquivamento ──
	if uc.docs != nil {
		key := fmt.Sprintf("importacoes/%s/%s/%s-%s", tc.OrganizationID, catalog.CompanyID,
			time.Now().UTC().Format("20060102T150405"), path.Base(filename))
		loc, err := uc.docs.Put(ctx, key, xlsxType, bytes.NewReader(raw))
		if err != nil {
			log.Warn().Err(err).Str("catalog_id", catalog.ID).Msg("falha ao arquivar planilha")
		} else {
			resp.ArchivedAt = loc
		}
	}
	log.Info().Str("catalog_id", catalog.ID).Int("processed", resp.ProcessedCount).Int("errors", len(resp.Errors)).Msg("importação concluída")
	return resp, nil
}

type importColumns struct {
	code, description, price int
	sizes, colors            int // -1: não mapeada
}

type importRow struct {
	code, description string
	price             decimal.Decimal
	sizes, colors     []string
}

func (uc *ImportUseCase) importRow(ctx context.Context, tc tenant.Context, catalog *entity.Catalog, cols importColumns, cells []string) error {
	row, err := parseRow(cols, cells)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		// produto
		p, err := r.Products.GetByCompanyAndCode(ctx, catalog.CompanyID, row.code)
		if err != nil {
			return err
		}
		if p == nil {
			p = &entity.Product{
				ID:          uuid.New().String(),
				CompanyID:   catalog.CompanyID,
				Code:        row.code,
				Description: row.description,
				BasePrice:   row.price,
				Unit:        "UN",
				IsActive:    true,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := r.Products.Create(ctx, p); err != nil {
				return err
			}
		} else if p.Description != row.description {
			p.Description = row.description
			p.UpdatedAt = now
			if err := r.Products.Update(ctx, p); err != nil {
				return err
			}
		}

		// grade
		for _, size := range row.sizes {
			for _, color := range row.colors {
				v, err := r.Products.FindVariant(ctx, p.ID, size, color)
				if err != nil {
					return err
				}
				if v != nil {
					continue
				}
				err = r.Products.CreateVariant(ctx, &entity.Variant{
					ID:              uuid.New().String(),
					ProductID:       p.ID,
					Size:            size,
					Color:           color,
					PriceAdjustment: decimal.Zero,
					IsActive:        true,
					CreatedAt:       now,
					UpdatedAt:       now,
				})
				if err != nil {
					return err
				}
			}
		}

		// preço no catálogo
		item, err := r.Catalogs.GetItem(ctx, catalog.ID, p.ID)
		if err != nil {
			return err
		}
		var d audit.Diff
		switch {
		case item == nil:
			item = &entity.CatalogItem{
				ID:        uuid.New().String(),
				CatalogID: catalog.ID,
				ProductID: p.ID,
				Price:     row.price,
				IsActive:  true,
				Version:   1,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := r.Catalogs.AddItem(ctx, item); err != nil {
				return err
			}
			d.Set("preco", row.price)
		case !item.Price.Equal(row.price):
			catalogID := catalog.ID
			if err := r.Products.AddPriceHistory(ctx, &entity.PriceHistory{
				ID:            uuid.New().String(),
				ProductID:     p.ID,
				CatalogID:     &catalogID,
				PreviousPrice: item.Price,
				NewPrice:      row.price,
				Reason:        "importação de planilha",
				ChangedBy:     tc.UserID,
				ChangedAt:     now,
			}); err != nil {
				return err
			}
			d.Add("preco", item.Price, row.price)
			expected := item.Version
			item.Price = row.price
			item.UpdatedAt = now
			if err := r.Catalogs.UpdateItem(ctx, item, expected); err != nil {
				return err
			}
		}
		if d.Empty() {
			return nil
		}
		d.Set("codigo", p.Code)
		return audit.Record(ctx, r.Audit, tc, entity.AuditImport, "item_catalogo", item.ID, d)
	})
}

func parseMapping(m dto.ImportMapping) (importColumns, error) {
	var (
		cols importColumns
		err  error
	)
	if cols.code, err = columnIndex("codigo", m.Code, true); err != nil {
		return cols, err
	}
	if cols.description, err = columnIndex("descricao", m.Description, true); err != nil {
		return cols, err
	}
	if cols.price, err = columnIndex("preco", m.Price, true); err != nil {
		return cols, err
	}
	if cols.sizes, err = columnIndex("tamanhos", m.Sizes, false); err != nil {
		return cols, err
	}
	if cols.colors, err = columnIndex("cores", m.Colors, false); err != nil {
		return cols, err
	}
	return cols, nil
}

// columnIndex aceita letra de coluna ("A", "AB") ou índice a partir de zero ("0").
func columnIndex(field, ref string, required bool) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		if required {
			return 0, domain.NewValidationError("mapping."+field, "coluna obrigatória")
		}
		return -1, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 0 {
			return 0, domain.NewValidationError("mapping."+field, "índice de coluna inválido")
		}
		return n, nil
	}
	n, err := excelize.ColumnNameToNumber(strings.ToUpper(ref))
	if err != nil {
		return 0, domain.NewValidationError("mapping."+field, "coluna inválida: "+ref)
	}
	return n - 1, nil
}

func parseRow(cols importColumns, cells []string) (importRow, error) {
	row := importRow{
		code:        cell(cells, cols.code),
		description: cell(cells, cols.description),
	}
	if row.code == "" {
		return row, fmt.Errorf("código vazio")
	}
	if row.description == "" {
		return row, fmt.Errorf("descrição vazia")
	}
	price, err := parsePrice(cell(cells, cols.price))
	if err != nil {
		return row, err
	}
	row.price = price
	row.sizes = splitGrid(cell(cells, cols.sizes))
	row.colors = splitGrid(cell(cells, cols.colors))
	switch {
	case len(row.sizes) == 0 && len(row.colors) == 0:
		row.sizes = []string{singleVariant}
		row.colors = []string{""}
	case len(row.sizes) == 0:
		row.sizes = []string{""}
	case len(row.colors) == 0:
		row.colors = []string{""}
	}
	return row, nil
}

// parsePrice aceita "49.90", "49,90" e "R$ 1.234,56".
func parsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("preço vazio")
	}
	switch {
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case thousandsOnly.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("preço inválido: %s", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("preço negativo")
	}
	return d.Round(2), nil
}

func splitGrid(s string) []string {
	var out []string
	seen := map[string]bool{}
	for _, part := range gridSep.Split(strings.TrimSpace(s), -1) {
		if part == "" || seen[strings.ToUpper(part)] {
			continue
		}
		seen[strings.ToUpper(part)] = true
		out = append(out, part)
	}
	return out
}

func cell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
