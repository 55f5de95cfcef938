package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/stock-register/internal/domain/entity"
	"github.com/jhoicas/stock-register/internal/infrastructure/memory"
)

const header = "id,name,hsn_code,category,unit,reorder_threshold,unit_rate,tax_rate_percent\n"

func TestParseCatalog_Valido(t *testing.T) {
	csvData := header +
		"WRT-BP-001, Ball Pen (Blue) ,9608,Writing,Pcs,500,10.00,18\n" +
		"PAP-A4-001,A4 Copier Paper,4802,Paper,Ream,100,285.5,12\n"

	items, err := parseCatalog(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Ball Pen (Blue)", items[0].Name, "el nombre se normaliza")
	assert.Equal(t, int64(500), items[0].ReorderThreshold)
	assert.Equal(t, "285.50", items[1].UnitRate.StringFixed(2))
}

func TestParseCatalog_ColumnaFaltante(t *testing.T) {
	_, err := parseCatalog(strings.NewReader("id,name\nX,Y\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hsn_code")
}

func TestParseCatalog_UmbralInvalido(t *testing.T) {
	_, err := parseCatalog(strings.NewReader(header + "X,Pen,9608,Writing,Pcs,-1,10,18\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 2")
}

func TestDecodeReader_Windows1252(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String(header + "X,Cuaderno Año,4820,Paper,Pcs,5,10,12\n")
	require.NoError(t, err)

	r, err := decodeReader(strings.NewReader(encoded), "windows-1252")
	require.NoError(t, err)
	items, err := parseCatalog(r)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Cuaderno Año", items[0].Name)

	_, err = decodeReader(strings.NewReader(""), "ebcdic")
	assert.Error(t, err)
}

func TestWriteSeed_EscapaComillas(t *testing.T) {
	items := []entity.CatalogItem{{Name: "Writer's Pad", UnitRate: memory.DefaultCatalog()[0].UnitRate}}
	var buf bytes.Buffer
	require.NoError(t, writeSeed(&buf, items, nil, memory.DefaultRoster(), memory.DefaultSuppliers()))

	out := buf.String()
	assert.Contains(t, out, "'Writer''s Pad'")
	assert.Contains(t, out, "'item-1', 1,")
	assert.Contains(t, out, "ON CONFLICT (id) DO NOTHING;")
	assert.Equal(t, len(memory.DefaultRoster()), strings.Count(out, "INSERT INTO employees"))
	assert.Equal(t, len(memory.DefaultSuppliers()), strings.Count(out, "INSERT INTO suppliers"))
	assert.Contains(t, out, "'Paper World India', 'Farhan Qureshi', '+91 65432 10987', 'Paper, Printing', false)")
}
