package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectURL(t *testing.T) {
	assert.Equal(t, "https://repcom-docs.s3.sa-east-1.amazonaws.com/pedidos/org1/emp1/pedido-42.pdf",
		objectURL("", "repcom-docs", "sa-east-1", "pedidos/org1/emp1/pedido-42.pdf"))
	assert.Equal(t, "http://localhost:9000/repcom-docs/importacoes/a.xlsx",
		objectURL("http://localhost:9000/", "repcom-docs", "us-east-1", "importacoes/a.xlsx"))
}
