// Package spreadsheet leitura de planilhas de importação de catálogo (xlsx ou csv)
// e geração do modelo para download.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/weslleycarlos/representacao-comercial/internal/application/ports"
)

var _ ports.Spreadsheet = Excel{}

// Cabeçalho do modelo, na ordem do mapeamento padrão A..E.
var templateHeader = []string{"Código", "Descrição", "Tamanhos", "Cores", "Preço"}

var templateSample = [][]any{
	{"CAM-001", "Camiseta básica algodão", "P, M, G, GG", "Branca/Preta", 49.90},
	{"BON-010", "Boné aba curva", "", "", 35.00},
}

// maxFileSize limite de leitura do upload.
const maxFileSize = 10 << 20

// Excel implementa ports.Spreadsheet.
type Excel struct{}

// Rows devolve as linhas da primeira aba. Arquivos que não são xlsx são lidos como CSV
// (separador ";" ou ","; Latin-1 é convertido para UTF-8).
func (Excel) Rows(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("planilha: ler arquivo: %w", err)
	}
	if len(data) > maxFileSize {
		return nil, fmt.Errorf("planilha: arquivo maior que %d MB", maxFileSize>>20)
	}
	if isZip(data) {
		return xlsxRows(data)
	}
	return csvRows(data)
}

// Template gera o xlsx modelo com cabeçalho e duas linhas de exemplo.
func (Excel) Template() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Produtos"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}
	rows := append([][]any{toAny(templateHeader)}, templateSample...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "E1", bold); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "B", "B", 40); err != nil {
		return nil, err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("planilha: gerar modelo: %w", err)
	}
	return buf.Bytes(), nil
}

func xlsxRows(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("planilha: xlsx inválido: %w", err)
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("planilha: arquivo sem abas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("planilha: ler aba %q: %w", sheets[0], err)
	}
	return rows, nil
}

func csvRows(data []byte) ([][]string, error) {
	var r io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	rd := csv.NewReader(r)
	rd.Comma = separator(data)
	rd.FieldsPerRecord = -1
	rd.LazyQuotes = true
	rows, err := rd.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("planilha: csv inválido: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

// separator ";" quando a primeira linha tem mais ";" que ",".
func separator(data []byte) rune {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

func isZip(data []byte) bool {
	return len(data) >= 4 && bytes.Equal(data[:4], []byte("PK\x03\x04"))
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
