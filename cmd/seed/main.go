// seed genera el script SQL que puebla catálogo, sucursales, personal y proveedores.
//
// Uso: go run ./cmd/seed [-encoding windows-1252] [catalogo.csv]
// Sin CSV usa el catálogo por defecto. Las planillas exportadas desde Excel en Windows suelen venir
// en Windows-1252; con -encoding se decodifican a UTF-8 antes de parsear.
// Columnas: id,name,hsn_code,category,unit,reorder_threshold,unit_rate,tax_rate_percent
// Escribe: internal/infrastructure/postgres/migrations/002_seed_defaults.sql
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stock-register/internal/domain/entity"
	"github.com/jhoicas/stock-register/internal/domain/inventory"
	"github.com/jhoicas/stock-register/internal/infrastructure/memory"
)

var catalogColumns = []string{"id", "name", "hsn_code", "category", "unit", "reorder_threshold", "unit_rate", "tax_rate_percent"}

func main() {
	encoding := flag.String("encoding", "utf-8", "codificación del CSV: utf-8 | windows-1252 | iso-8859-1")
	flag.Parse()

	items := memory.DefaultCatalog()
	if path := flag.Arg(0); path != "" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()

		r, err := decodeReader(f, *encoding)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		items, err = parseCatalog(r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Parsear CSV: %v\n", err)
			os.Exit(1)
		}
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_defaults.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	branches := []entity.Branch{{ID: "br-1", Location: memory.DefaultBranch, BOECode: memory.DefaultBOECode}}
	if err := writeSeed(out, items, branches, memory.DefaultRoster(), memory.DefaultSuppliers()); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d artículos\n", outPath, len(items))
}

// decodeReader envuelve r con el decodificador de la codificación indicada.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return r, nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	case "iso-8859-1", "latin1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", encoding)
	}
}

// parseCatalog lee el CSV con encabezado. Los nombres se normalizan igual que al reconstruir.
func parseCatalog(r io.Reader) ([]entity.CatalogItem, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV vacío")
	}
	col := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF")))] = i
	}
	for _, c := range catalogColumns {
		if _, ok := col[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}

	items := make([]entity.CatalogItem, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		get := func(name string) string {
			i := col[name]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		name := inventory.NormalizeName(get("name"))
		if name == "" {
			continue
		}
		reorder, err := strconv.ParseInt(get("reorder_threshold"), 10, 64)
		if err != nil || reorder < 0 {
			return nil, fmt.Errorf("línea %d: reorder_threshold inválido %q", line, get("reorder_threshold"))
		}
		rate, err := decimal.NewFromString(get("unit_rate"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: unit_rate inválido: %w", line, err)
		}
		tax, err := decimal.NewFromString(get("tax_rate_percent"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: tax_rate_percent inválido: %w", line, err)
		}
		items = append(items, entity.CatalogItem{
			ID:               get("id"),
			Name:             name,
			HSNCode:          get("hsn_code"),
			Category:         get("category"),
			Unit:             get("unit"),
			ReorderThreshold: reorder,
			UnitRate:         rate,
			TaxRatePercent:   tax,
		})
	}
	return items, nil
}

// writeSeed escribe los INSERT idempotentes del catálogo, las sucursales, el personal y los proveedores.
func writeSeed(w io.Writer, items []entity.CatalogItem, branches []entity.Branch, roster []entity.Employee, suppliers []entity.Supplier) error {
	var b strings.Builder
	b.WriteString("-- Datos iniciales: catálogo, sucursales, personal y proveedores\n")
	b.WriteString("-- Generado por cmd/seed\n\n")

	b.WriteString("-- 1. Catálogo\n")
	for i, it := range items {
		id := it.ID
		if id == "" {
			id = fmt.Sprintf("item-%d", i+1)
		}
		fmt.Fprintf(&b, "INSERT INTO catalog_items (id, position, name, hsn_code, category, unit, reorder_threshold, unit_rate, tax_rate_percent)\n")
		fmt.Fprintf(&b, "VALUES ('%s', %d, '%s', '%s', '%s', '%s', %d, %s, %s)\n",
			escapeSQL(id), i+1, escapeSQL(it.Name), escapeSQL(it.HSNCode), escapeSQL(it.Category),
			escapeSQL(it.Unit), it.ReorderThreshold, it.UnitRate.StringFixed(2), it.TaxRatePercent.StringFixed(2))
		b.WriteString("ON CONFLICT (id) DO UPDATE SET position = EXCLUDED.position, name = EXCLUDED.name, reorder_threshold = EXCLUDED.reorder_threshold,\n")
		b.WriteString("  unit_rate = EXCLUDED.unit_rate, tax_rate_percent = EXCLUDED.tax_rate_percent;\n")
	}

	b.WriteString("\n-- 2. Sucursales\n")
	for _, br := range branches {
		fmt.Fprintf(&b, "INSERT INTO branches (id, location, boe_code) VALUES ('%s', '%s', '%s')\n",
			escapeSQL(br.ID), escapeSQL(br.Location), escapeSQL(br.BOECode))
		b.WriteString("ON CONFLICT (id) DO UPDATE SET boe_code = EXCLUDED.boe_code;\n")
	}

	b.WriteString("\n-- 3. Personal\n")
	for _, e := range roster {
		fmt.Fprintf(&b, "INSERT INTO employees (id, name, role, initials, branch_location) VALUES ('%s', '%s', '%s', '%s', '%s')\n",
			escapeSQL(e.ID), escapeSQL(e.Name), escapeSQL(e.Role), escapeSQL(e.Initials), escapeSQL(e.BranchLocation))
		b.WriteString("ON CONFLICT (id) DO NOTHING;\n")
	}

	b.WriteString("\n-- 4. Proveedores\n")
	for _, s := range suppliers {
		fmt.Fprintf(&b, "INSERT INTO suppliers (id, name, contact, phone, items, active) VALUES ('%s', '%s', '%s', '%s', '%s', %t)\n",
			escapeSQL(s.ID), escapeSQL(s.Name), escapeSQL(s.Contact), escapeSQL(s.Phone), escapeSQL(s.Items), s.Active)
		b.WriteString("ON CONFLICT (id) DO UPDATE SET contact = EXCLUDED.contact, phone = EXCLUDED.phone, items = EXCLUDED.items, active = EXCLUDED.active;\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
