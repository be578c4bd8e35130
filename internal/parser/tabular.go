package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Dhagoo/Financial-Health-Assistant/internal/errorx"
	"github.com/Dhagoo/Financial-Health-Assistant/internal/model"
)

// DetectFormat 根据扩展名判断文件格式（大小写不敏感）
func DetectFormat(filename string) (model.FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(strings.TrimSpace(filename)))
	format, ok := supportedFormats[ext]
	if !ok {
		return "", errorx.NewInvalidFormat(filename)
	}
	return format, nil
}

// Parse 将上传文件解析为表格
func Parse(filename string, data []byte) (*model.Sheet, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errorx.ErrEmptyUpload
	}

	var sheet *model.Sheet
	switch format {
	case model.FormatCSV:
		sheet, err = ParseCSV(bytes.NewReader(data))
	case model.FormatXLSX:
		sheet, err = ParseXLSX(bytes.NewReader(data))
	}
	if err != nil {
		return nil, err
	}
	sheet.Format = format
	if sheet.Name == "" {
		sheet.Name = filepath.Base(filename)
	}
	return sheet, nil
}

// ParseCSV 解析 CSV，首个非空行为表头
func ParseCSV(r io.Reader) (*model.Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	var lines []int
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errorx.NewDataError("failed to read csv", err)
		}
		line, _ := reader.FieldPos(0)
		records = append(records, rec)
		lines = append(lines, line)
	}

	return buildSheet("", records, lines)
}

// ParseXLSX 解析 XLSX 第一个有数据的工作表
func ParseXLSX(r io.Reader) (*model.Sheet, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errorx.NewDataError("failed to open excel", err)
	}
	defer func() { _ = file.Close() }()

	for _, name := range file.GetSheetList() {
		rows, err := file.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, errorx.NewDataError(fmt.Sprintf("failed to read sheet %q", name), err)
		}
		lines := make([]int, len(rows))
		for i := range rows {
			lines[i] = i + 1
		}
		if records, _ := trimEmptyRows(rows, lines); len(records) == 0 {
			continue
		}
		return buildSheet(name, rows, lines)
	}

	return nil, errorx.NewDataError("workbook has no data", nil)
}

// buildSheet 跳过空行，首行作为表头；lines 为每条记录的源文件行号
func buildSheet(name string, records [][]string, lines []int) (*model.Sheet, error) {
	records, lines = trimEmptyRows(records, lines)
	if len(records) == 0 {
		return nil, errorx.NewDataError("file has no header row", nil)
	}

	header := make([]string, len(records[0]))
	for i, h := range records[0] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	return &model.Sheet{
		Name:   name,
		Header: header,
		Rows:   records[1:],
		Lines:  lines[1:],
	}, nil
}

// trimEmptyRows 去除所有单元格都为空的行，行号同步过滤
func trimEmptyRows(records [][]string, lines []int) ([][]string, []int) {
	out := make([][]string, 0, len(records))
	outLines := make([]int, 0, len(records))
	for i, rec := range records {
		if isEmptyRow(rec) {
			continue
		}
		out = append(out, rec)
		outLines = append(outLines, lines[i])
	}
	return out, outLines
}

func isEmptyRow(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
