package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestTemplate_RoundTrip(t *testing.T) {
	data, err := Excel{}.Template()
	require.NoError(t, err)

	rows, err := Excel{}.Rows(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Código", "Descrição", "Tamanhos", "Cores", "Preço"}, rows[0])
	assert.Equal(t, "CAM-001", rows[1][0])
	assert.Equal(t, "P, M, G, GG", rows[1][2])
}

func TestRows_Xlsx(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"cod", "desc", "preco"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"X-1", "Item", "10,50"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := Excel{}.Rows(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"X-1", "Item", "10,50"}, rows[1])
}

func TestRows_CSV(t *testing.T) {
	rows, err := Excel{}.Rows(bytes.NewReader([]byte("\ufeffcodigo;descricao;preco\nA-1;Camisa;\"1.234,56\"\n")))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "codigo", rows[0][0])
	assert.Equal(t, []string{"A-1", "Camisa", "1.234,56"}, rows[1])

	rows, err = Excel{}.Rows(bytes.NewReader([]byte("a,b\n1,2\n")))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, rows[1])
}

func TestRows_CSVLatin1(t *testing.T) {
	// "Calção" em ISO-8859-1
	latin1 := []byte("cod;desc\nC-1;Cal\xe7\xe3o\n")
	rows, err := Excel{}.Rows(bytes.NewReader(latin1))
	require.NoError(t, err)
	assert.Equal(t, "Calção", rows[1][1])
}
