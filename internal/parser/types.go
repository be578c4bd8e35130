package parser

import "github.com/Dhagoo/Financial-Health-Assistant/internal/model"

// FieldKind 语义字段
type FieldKind string

const (
	FieldType     FieldKind = "Type"
	FieldAmount   FieldKind = "Amount"
	FieldCategory FieldKind = "Category"
)

// ColumnMapping 语义字段到列索引的映射，-1 表示不存在
type ColumnMapping struct {
	Type     int `json:"type"`
	Amount   int `json:"amount"`
	Category int `json:"category"`
}

// HasCategory 是否识别到分类列
func (m ColumnMapping) HasCategory() bool {
	return m.Category >= 0
}

// RowsResult 行解析结果
type RowsResult struct {
	Rows         []model.Row
	Skipped      int   // 金额无法解析的行数
	SkippedLines []int // 被跳过行的源文件行号
}

// supportedFormats 扩展名 -> 文件格式
var supportedFormats = map[string]model.FileFormat{
	".csv":  model.FormatCSV,
	".xlsx": model.FormatXLSX,
}
