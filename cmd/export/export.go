package main

import (
	"context"
	"fmt"

	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/app/service"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Inventory"

var headers = []string{"Product", "SKU code", "Variant label", "Stock", "Threshold", "Status", "Pre-order"}

// collectRows pages through the whole inventory, or returns the low-stock scan
func collectRows(ctx context.Context, inventory service.InventoryService, lowOnly bool) ([]service.InventoryRow, error) {
	if lowOnly {
		return inventory.LowStock(ctx)
	}

	var rows []service.InventoryRow
	for page := 1; ; page++ {
		p, err := inventory.List(ctx, model.ListQuery{Page: page, Limit: model.MaxLimit}, "")
		if err != nil {
			return nil, fmt.Errorf("failed to list inventory page %d: %w", page, err)
		}
		rows = append(rows, p.Items...)
		if page >= p.TotalPages || len(p.Items) == 0 {
			return rows, nil
		}
	}
}

func buildWorkbook(rows []service.InventoryRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetRow(sheetName, "A1", &headers); err != nil {
		f.Close()
		return nil, err
	}

	for i, r := range rows {
		preOrder := "no"
		if r.AllowPreOrder {
			preOrder = "yes"
		}
		values := []interface{}{r.Title, r.SKUCode, r.Label, r.Stock, r.Threshold, string(r.Status), preOrder}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
