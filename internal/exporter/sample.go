package exporter

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Dhagoo/Financial-Health-Assistant/internal/parser"
)

//go:embed sample_financials.csv
var sampleCSV []byte

const (
	SampleCSVFilename  = "sample_financials.csv"
	SampleXLSXFilename = "sample_financials.xlsx"
	sampleSheetName    = "Transactions"
)

// SampleCSV 返回内置示例 CSV 的副本
func SampleCSV() []byte {
	return bytes.Clone(sampleCSV)
}

// Exporter 示例工作簿导出器
type Exporter struct {
	sheetName string
}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{sheetName: sampleSheetName}
}

// ExportSample 将内置示例 CSV 转为 XLSX；金额列写为数值单元格
func (e *Exporter) ExportSample() (*excelize.File, error) {
	sheet, err := parser.ParseCSV(bytes.NewReader(sampleCSV))
	if err != nil {
		return nil, fmt.Errorf("parse embedded sample failed: %w", err)
	}
	mapping, err := parser.NewFieldMapper().MapColumns(sheet.Header)
	if err != nil {
		return nil, fmt.Errorf("embedded sample header invalid: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), e.sheetName); err != nil {
		_ = f.Close()
		return nil, err
	}

	header := make([]interface{}, len(sheet.Header))
	for i, h := range sheet.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(e.sheetName, "A1", &header); err != nil {
		_ = f.Close()
		return nil, err
	}

	for i, raw := range sheet.Rows {
		row := make([]interface{}, len(raw))
		for col, v := range raw {
			row[col] = v
			if col == mapping.Amount {
				if amount, ok := parser.ParseAmount(v); ok {
					row[col] = amount.InexactFloat64()
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(e.sheetName, cell, &row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	if err := e.styleHeader(f, len(sheet.Header)); err != nil {
		_ = f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// styleHeader 表头加粗并设置列宽
func (e *Exporter) styleHeader(f *excelize.File, cols int) error {
	if cols == 0 {
		return nil
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(cols)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(e.sheetName, "A1", last+"1", style); err != nil {
		return err
	}
	return f.SetColWidth(e.sheetName, "A", last, 18)
}
