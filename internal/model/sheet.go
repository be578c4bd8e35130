package model

// FileFormat 上传文件格式
type FileFormat string

const (
	FormatCSV  FileFormat = "csv"
	FormatXLSX FileFormat = "xlsx"
)

// Sheet 解析后的表格：表头 + 数据行
type Sheet struct {
	Name   string     `json:"name"`
	Format FileFormat `json:"format"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
	Lines  []int      `json:"lines,omitempty"` // 每个数据行在源文件中的行号，与 Rows 一一对应
}

// Line 第 i 个数据行的源文件行号；未记录时按表头在第 1 行且无空行推算
func (s *Sheet) Line(i int) int {
	if i >= 0 && i < len(s.Lines) {
		return s.Lines[i]
	}
	return i + 2
}

// Cell 返回指定行列的值，越界时返回空串
func (s *Sheet) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// RowCount 数据行数（不含表头）
func (s *Sheet) RowCount() int {
	if s == nil {
		return 0
	}
	return len(s.Rows)
}
