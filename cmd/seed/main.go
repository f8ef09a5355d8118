// seed genera el script SQL de datos de demostración para el motor MRP: cliente, partes,
// materiales, lista de materiales, órdenes de venta, pronósticos y recepciones iniciales.
//
// Uso: go run ./cmd/seed [-out dir] [-version N]
// Sin -out escribe el SQL en stdout. Con -out escribe el par de migración
// {N}_demo_seed.up.sql / {N}_demo_seed.down.sql en el directorio indicado.
//
// Las fechas se expresan relativas a CURRENT_DATE, de modo que el escenario es el mismo
// sin importar el día en que se cargue. Con horizonte 90: P-100 faltan 70, M-STEEL requiere 140,
// faltan 90 y se sugiere pedir 108 siete días antes de la entrega de SO-001.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type part struct {
	id, number, name string
}

type material struct {
	id, code, description, uom string
	unitPrice                  string // vacío = NULL
	averageCost                string
	leadTimeDays               int    // 0 = NULL (usa el lead time por defecto)
	safetyStockPct             string // vacío = NULL
}

type bomLine struct {
	parentID, childID, childType, qty string
}

type salesOrder struct {
	id, number        string
	deliveryInDays    int
	partID, qty, cost string
}

type forecast struct {
	partID       string
	periodInDays int
	qty          string
}

type receipt struct {
	itemID, itemType, qty, unitCost, notes string
}

const customerID = "0b6f4c4e-6a2d-4c1f-9d3e-1f0a8a3c0001"

var (
	parts = []part{
		{"5a1c2f10-0000-4000-8000-000000000100", "P-100", "Soporte metálico"},
		{"5a1c2f10-0000-4000-8000-000000000200", "P-200", "Subensamble de anclaje"},
	}
	materials = []material{
		{id: "7d3e9b20-0000-4000-8000-0000000000a1", code: "M-STEEL", description: "Lámina de acero calibre 14", uom: "kg",
			unitPrice: "12500", averageCost: "12000"},
		{id: "7d3e9b20-0000-4000-8000-0000000000a2", code: "M-BOLT", description: "Tornillo hexagonal 3/8", uom: "pcs",
			averageCost: "850", leadTimeDays: 3, safetyStockPct: "0.10"},
		{id: "7d3e9b20-0000-4000-8000-0000000000a3", code: "M-PAINT", description: "Pintura electrostática", uom: "kg",
			unitPrice: "45000", averageCost: "43000"},
	}
	bom = []bomLine{
		{parts[0].id, materials[0].id, "Material", "2"},
		{parts[1].id, materials[1].id, "Material", "0.0016"},
		{parts[1].id, materials[2].id, "Material", "0.25"},
	}
	salesOrders = []salesOrder{
		{"3c9d1e40-0000-4000-8000-000000000001", "SO-001", 20, parts[0].id, "100", "95000"},
		{"3c9d1e40-0000-4000-8000-000000000002", "SO-002", 60, parts[1].id, "40", "30000"},
	}
	forecasts = []forecast{
		{parts[1].id, 35, "25"},
	}
	receipts = []receipt{
		{parts[0].id, "Part", "30", "", "Inventario inicial"},
		{materials[0].id, "Material", "50", "12000", "Inventario inicial"},
		{materials[1].id, "Material", "0.05", "850", "Inventario inicial"},
	}
)

func main() {
	outDir := flag.String("out", "", "directorio de migraciones donde escribir el par up/down (vacío = stdout)")
	version := flag.Int("version", 100, "número de versión de la migración generada")
	flag.Parse()

	if *outDir == "" {
		writeUp(os.Stdout)
		return
	}

	base := fmt.Sprintf("%06d_demo_seed", *version)
	upPath := filepath.Join(*outDir, base+".up.sql")
	downPath := filepath.Join(*outDir, base+".down.sql")

	if err := writeFile(upPath, writeUp); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", upPath, err)
		os.Exit(1)
	}
	if err := writeFile(downPath, writeDown); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", downPath, err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s y %s: %d partes, %d materiales, %d órdenes de venta\n",
		upPath, downPath, len(parts), len(materials), len(salesOrders))
}

func writeFile(path string, render func(io.Writer)) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	render(out)
	return out.Close()
}

func writeUp(out io.Writer) {
	fmt.Fprintln(out, "-- Datos de demostración PPIC/MRP (generado por cmd/seed)")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "-- 1. Cliente")
	fmt.Fprintf(out, "INSERT INTO customers (id, customer_code, name) VALUES ('%s', 'C-001', 'Ferretería Industrial S.A.S.')\n", customerID)
	fmt.Fprintln(out, "ON CONFLICT (customer_code) DO NOTHING;")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "-- 2. Partes")
	fmt.Fprintln(out, "INSERT INTO parts (id, part_number, part_name) VALUES")
	for i, p := range parts {
		fmt.Fprintf(out, "  ('%s', '%s', '%s')%s\n", p.id, p.number, escapeSQL(p.name), sep(i, len(parts)))
	}
	fmt.Fprintln(out, "ON CONFLICT (part_number) DO NOTHING;")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "-- 3. Materiales")
	fmt.Fprintln(out, "INSERT INTO materials (id, material_code, description, uom, unit_price, average_cost, lead_time_days, safety_stock_pct) VALUES")
	for i, m := range materials {
		lead := "NULL"
		if m.leadTimeDays > 0 {
			lead = fmt.Sprint(m.leadTimeDays)
		}
		fmt.Fprintf(out, "  ('%s', '%s', '%s', '%s', %s, %s, %s, %s)%s\n",
			m.id, m.code, escapeSQL(m.description), m.uom,
			numOrNull(m.unitPrice), numOrZero(m.averageCost), lead, numOrNull(m.safetyStockPct),
			sep(i, len(materials)))
	}
	fmt.Fprintln(out, "ON CONFLICT (material_code) DO NOTHING;")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "-- 4. Lista de materiales")
	fmt.Fprintln(out, "INSERT INTO bill_of_materials (parent_part_id, child_item_id, child_item_type, quantity_per_parent) VALUES")
	for i, b := range bom {
		fmt.Fprintf(out, "  ('%s', '%s', '%s', %s)%s\n", b.parentID, b.childID, b.childType, b.qty, sep(i, len(bom)))
	}
	fmt.Fprintln(out, "ON CONFLICT (parent_part_id, child_item_id) DO NOTHING;")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "-- 5. Órdenes de venta abiertas")
	for _, so := range salesOrders {
		fmt.Fprintf(out, "INSERT INTO sales_orders (id, so_number, customer_id, delivery_date, status)\n")
		fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', CURRENT_DATE + %d, 'Open')\n", so.id, so.number, customerID, so.deliveryInDays)
		fmt.Fprintln(out, "ON CONFLICT (so_number) DO NOTHING;")
		fmt.Fprintf(out, "INSERT INTO sales_order_lines (sales_order_id, part_id, quantity, unit_price)\n")
		fmt.Fprintf(out, "SELECT '%s', '%s', %s, %s\n", so.id, so.partID, so.qty, so.cost)
		fmt.Fprintf(out, "WHERE NOT EXISTS (SELECT 1 FROM sales_order_lines WHERE sales_order_id = '%s');\n", so.id)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "-- 6. Pronósticos")
	fmt.Fprintln(out, "INSERT INTO forecasts (part_id, period, quantity) VALUES")
	for i, f := range forecasts {
		fmt.Fprintf(out, "  ('%s', CURRENT_DATE + %d, %s)%s\n", f.partID, f.periodInDays, f.qty, sep(i, len(forecasts)))
	}
	fmt.Fprintln(out, "ON CONFLICT (part_id, period) DO NOTHING;")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "-- 7. Recepciones iniciales de inventario")
	for _, r := range receipts {
		fmt.Fprintln(out, "INSERT INTO inventory_transactions (item_id, item_type, transaction_type, quantity, unit_cost, reference_type, notes)")
		fmt.Fprintf(out, "SELECT '%s', '%s', 'Receipt', %s, %s, 'seed', '%s'\n",
			r.itemID, r.itemType, r.qty, numOrNull(r.unitCost), escapeSQL(r.notes))
		fmt.Fprintf(out, "WHERE NOT EXISTS (SELECT 1 FROM inventory_transactions WHERE item_id = '%s' AND reference_type = 'seed');\n", r.itemID)
	}
}

func writeDown(out io.Writer) {
	fmt.Fprintln(out, "-- Revierte los datos de demostración PPIC/MRP")
	fmt.Fprintln(out, "DELETE FROM inventory_transactions WHERE reference_type = 'seed';")
	fmt.Fprintf(out, "DELETE FROM forecasts WHERE part_id IN (%s);\n", quoted(partIDs()))
	fmt.Fprintf(out, "DELETE FROM sales_orders WHERE id IN (%s);\n", quoted(salesOrderIDs()))
	fmt.Fprintf(out, "DELETE FROM bill_of_materials WHERE parent_part_id IN (%s);\n", quoted(partIDs()))
	fmt.Fprintf(out, "DELETE FROM materials WHERE id IN (%s);\n", quoted(materialIDs()))
	fmt.Fprintf(out, "DELETE FROM parts WHERE id IN (%s);\n", quoted(partIDs()))
	fmt.Fprintf(out, "DELETE FROM customers WHERE id = '%s';\n", customerID)
}

func partIDs() []string {
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		ids = append(ids, p.id)
	}
	return ids
}

func materialIDs() []string {
	ids := make([]string, 0, len(materials))
	for _, m := range materials {
		ids = append(ids, m.id)
	}
	return ids
}

func salesOrderIDs() []string {
	ids := make([]string, 0, len(salesOrders))
	for _, so := range salesOrders {
		ids = append(ids, so.id)
	}
	return ids
}

func quoted(ids []string) string {
	q := make([]string, len(ids))
	for i, id := range ids {
		q[i] = "'" + id + "'"
	}
	return strings.Join(q, ", ")
}

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}

func numOrNull(v string) string {
	if v == "" {
		return "NULL"
	}
	return v
}

func numOrZero(v string) string {
	if v == "" {
		return "0"
	}
	return v
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
