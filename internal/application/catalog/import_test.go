package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weslleycarlos/representacao-comercial/internal/application/apptest"
	"github.com/weslleycarlos/representacao-comercial/internal/application/dto"
	"github.com/weslleycarlos/representacao-comercial/internal/domain"
)

var mapping = dto.ImportMapping{Code: "A", Description: "B", Sizes: "C", Colors: "D", Price: "E"}

func newImportEnv(t *testing.T) (*apptest.Store, *apptest.Documents, *ImportUseCase, *CatalogUseCase) {
	t.Helper()
	s, cat := newCatalogEnv(t)
	docs := apptest.NewDocuments()
	return s, docs, NewImportUseCase(s.Repos(), s.Tx(), apptest.Sheet{}, docs), cat
}

func TestImport_CriaProdutosGradeEPrecos(t *testing.T) {
	s, docs, uc, cat := newImportEnv(t)
	ctx := context.Background()
	body := apptest.CSV(
		[]string{"codigo", "descricao", "tamanhos", "cores", "preco"},
		[]string{"BER-001", "Bermuda", "P/M", "Azul, Preto", "R$ 1.234,56"},
		[]string{"", "", "", "", ""},
		[]string{"MEI-001", "Meia", "", "", "9.90"},
	)

	resp, err := uc.Import(ctx, manager, "cat2", mapping, "tabela.xlsx", body)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.ProcessedCount)
	assert.Empty(t, resp.Errors)
	assert.True(t, strings.HasPrefix(resp.ArchivedAt, "mem://importacoes/org1/emp1/"), resp.ArchivedAt)
	assert.Len(t, docs.Files, 1)

	items, err := cat.ListItems(ctx, manager, "cat2")
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		switch it.Product.Code {
		case "BER-001":
			assert.True(t, it.Price.Equal(apptest.Dec("1234.56")), it.Price.String())
			assert.Len(t, it.Product.Variants, 4)
		case "MEI-001":
			require.Len(t, it.Product.Variants, 1)
			assert.Equal(t, "Único", it.Product.Variants[0].Size)
			assert.Empty(t, it.Product.Variants[0].Color)
		default:
			t.Fatalf("produto inesperado %s", it.Product.Code)
		}
	}
	assert.Len(t, s.AuditLogs(), 2)
}

func TestImport_ReimportacaoAtualizaPrecoComHistorico(t *testing.T) {
	s, _, uc, cat := newImportEnv(t)
	ctx := context.Background()

	// CAM-001 já está em cat1 a 49,90
	resp, err := uc.Import(ctx, manager, "cat1", mapping, "t.xlsx", apptest.CSV(
		[]string{"codigo", "descricao", "tamanhos", "cores", "preco"},
		[]string{"CAM-001", "Camiseta Básica", "M", "", "52,90"},
	))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ProcessedCount)

	item, err := cat.ListItems(ctx, manager, "cat1")
	require.NoError(t, err)
	for _, it := range item {
		if it.Product.ID == "cam" {
			assert.True(t, it.Price.Equal(apptest.Dec("52.90")))
			assert.Equal(t, 2, it.Version)
			assert.Equal(t, "Camiseta Básica", it.Product.Description)
			require.Len(t, it.Product.Variants, 1)
			assert.Equal(t, "M", it.Product.Variants[0].Size)
		}
	}
	hist := s.PriceHistory("cam")
	require.Len(t, hist, 1)
	assert.Equal(t, "cat1", *hist[0].CatalogID)

	// mesma planilha de novo: nada muda
	resp, err = uc.Import(ctx, manager, "cat1", mapping, "t.xlsx", apptest.CSV(
		[]string{"codigo", "descricao", "tamanhos", "cores", "preco"},
		[]string{"CAM-001", "Camiseta Básica", "M", "", "52,90"},
	))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ProcessedCount)
	assert.Len(t, s.PriceHistory("cam"), 1)
}

func TestImport_ErrosPorLinha(t *testing.T) {
	_, _, uc, _ := newImportEnv(t)

	resp, err := uc.Import(context.Background(), manager, "cat2", mapping, "t.xlsx", apptest.CSV(
		[]string{"codigo", "descricao", "tamanhos", "cores", "preco"},
		[]string{"", "Sem código", "", "", "10"},
		[]string{"X-1", "Preço ruim", "", "", "abc"},
		[]string{"X-2", "Ok", "", "", "10"},
		[]string{"X-3", "Negativo", "", "", "-5"},
	))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ProcessedCount)
	require.Len(t, resp.Errors, 3)
	assert.Equal(t, 2, resp.Errors[0].Row)
	assert.Equal(t, 3, resp.Errors[1].Row)
	assert.Equal(t, 5, resp.Errors[2].Row)
}

func TestImport_MapeamentoPorIndice(t *testing.T) {
	_, _, uc, _ := newImportEnv(t)

	resp, err := uc.Import(context.Background(), manager, "cat2",
		dto.ImportMapping{Code: "1", Description: "0", Price: "2"}, "t.xlsx", apptest.CSV(
			[]string{"descricao", "codigo", "preco"},
			[]string{"Boné", "BON-1", "25"},
		))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ProcessedCount)
}

func TestImport_Rejeicoes(t *testing.T) {
	_, _, uc, _ := newImportEnv(t)
	ctx := context.Background()
	body := func() *strings.Reader { return strings.NewReader("a;b;c") }

	_, err := uc.Import(ctx, manager, "cat2", dto.ImportMapping{Code: "A", Description: "B"}, "t.xlsx", body())
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "mapping.preco", ve.Field)

	_, err = uc.Import(ctx, manager, "cat2", dto.ImportMapping{Code: "A", Description: "B", Price: "?!"}, "t.xlsx", body())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Import(ctx, other, "cat2", mapping, "t.xlsx", body())
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Import(ctx, seller, "cat2", mapping, "t.xlsx", body())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestImport_FalhaNoArquivamentoNaoAborta(t *testing.T) {
	_, docs, uc, _ := newImportEnv(t)
	docs.Err = errors.New("s3 fora")

	resp, err := uc.Import(context.Background(), manager, "cat2", mapping, "t.xlsx", apptest.CSV(
		[]string{"h"},
		[]string{"Z-1", "Zíper", "", "", "1,50"},
	))
	require.NoError(t, err)
	assert.Equal(t, 1, resp.ProcessedCount)
	assert.Empty(t, resp.ArchivedAt)
}

func TestPreview(t *testing.T) {
	_, _, uc, _ := newImportEnv(t)
	rows := [][]string{{"codigo", "descricao"}}
	for i := 0; i < 10; i++ {
		rows = append(rows, []string{"C", "D"}, []string{"", ""})
	}

	resp, err := uc.Preview(context.Background(), manager, apptest.CSV(rows...))
	require.NoError(t, err)
	assert.Len(t, resp.Rows, 6)
	assert.Equal(t, []string{"codigo", "descricao"}, resp.Rows[0])
}

func TestTemplate(t *testing.T) {
	_, _, uc, _ := newImportEnv(t)
	b, err := uc.Template()
	require.NoError(t, err)
	assert.Contains(t, string(b), "codigo")
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"49.90", "49.9", true},
		{"49,90", "49.9", true},
		{"R$ 1.234,56", "1234.56", true},
		{"1.234", "1234", true},
		{"R$ 12.345.678", "12345678", true},
		{"0.125", "0.13", true},
		{"1.5", "1.5", true},
		{"1.23.4", "", false},
		{" 10 ", "10", true},
		{"", "", false},
		{"abc", "", false},
		{"-1", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePrice(tt.in)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(apptest.Dec(tt.want)), got.String())
		})
	}
}

func TestSplitGrid(t *testing.T) {
	assert.Equal(t, []string{"P", "M", "G"}, splitGrid("P/M - G"))
	assert.Equal(t, []string{"Azul", "Preto"}, splitGrid("Azul, Preto, azul"))
	assert.Nil(t, splitGrid("  "))
}

func TestColumnIndex(t *testing.T) {
	n, err := columnIndex("x", "a", true)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	n, err = columnIndex("x", "AB", true)
	require.NoError(t, err)
	assert.Equal(t, 27, n)
	n, err = columnIndex("x", "", false)
	require.NoError(t, err)
	assert.Equal(t, -1, n)
}
