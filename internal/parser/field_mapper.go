package parser

import (
	"fmt"
	"strings"

	"github.com/Dhagoo/Financial-Health-Assistant/internal/errorx"
	"github.com/Dhagoo/Financial-Health-Assistant/internal/model"
)

// 列名匹配规则（列名已经过 NormalizeColumnName）
var fieldPatterns = map[FieldKind]string{
	FieldType:     `^(type|transactiontype|txntype|entrytype)$`,
	FieldAmount:   `^(amount|amt|value)$`,
	FieldCategory: `^(category|account|head)$`,
}

// FieldMapper 交易字段映射器
type FieldMapper struct{}

// NewFieldMapper 创建字段映射器
func NewFieldMapper() *FieldMapper {
	return &FieldMapper{}
}

// MapColumns 根据表头识别 Type / Amount / Category 列
// Type 或 Amount 缺失时返回 DataError
func (m *FieldMapper) MapColumns(header []string) (ColumnMapping, error) {
	mapping := ColumnMapping{Type: -1, Amount: -1, Category: -1}

	for idx, col := range header {
		col = NormalizeColumnName(col)
		if col == "" {
			continue
		}
		// 同名列以第一列为准
		switch {
		case mapping.Type < 0 && MatchPattern(col, fieldPatterns[FieldType]):
			mapping.Type = idx
		case mapping.Amount < 0 && MatchPattern(col, fieldPatterns[FieldAmount]):
			mapping.Amount = idx
		case mapping.Category < 0 && MatchPattern(col, fieldPatterns[FieldCategory]):
			mapping.Category = idx
		}
	}

	var missing []string
	if mapping.Type < 0 {
		missing = append(missing, string(FieldType))
	}
	if mapping.Amount < 0 {
		missing = append(missing, string(FieldAmount))
	}
	if len(missing) > 0 {
		return mapping, errorx.NewDataError(fmt.Sprintf("missing required column(s): %s", strings.Join(missing, ", ")), nil)
	}
	return mapping, nil
}

// MapRows 将表格行转换为交易行
// 金额无法解析的行计入 Skipped，不视为错误
func (m *FieldMapper) MapRows(sheet *model.Sheet, mapping ColumnMapping) RowsResult {
	result := RowsResult{Rows: make([]model.Row, 0, len(sheet.Rows))}

	for i, raw := range sheet.Rows {
		amount, ok := ParseAmount(sheet.Cell(raw, mapping.Amount))
		if !ok {
			result.Skipped++
			result.SkippedLines = append(result.SkippedLines, sheet.Line(i))
			continue
		}
		row := model.Row{
			Type:   model.TransactionType(NormalizeType(sheet.Cell(raw, mapping.Type))),
			Amount: amount,
		}
		if mapping.HasCategory() {
			row.Category = strings.TrimSpace(sheet.Cell(raw, mapping.Category))
		}
		result.Rows = append(result.Rows, row)
	}

	return result
}
