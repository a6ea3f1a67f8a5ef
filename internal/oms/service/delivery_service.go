package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bitfantasy/nimo-fab/internal/oms/entity"
	"github.com/bitfantasy/nimo-fab/internal/oms/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// DeliveryService 送货单查询与导出
type DeliveryService struct {
	doRepo *repository.DeliveryOrderRepository
	logger *zap.Logger
}

func NewDeliveryService(doRepo *repository.DeliveryOrderRepository, logger *zap.Logger) *DeliveryService {
	return &DeliveryService{doRepo: doRepo, logger: logger}
}

// GetDelivery 获取送货单详情（含行项）
func (s *DeliveryService) GetDelivery(ctx context.Context, doNumber string) (*entity.DeliveryOrder, error) {
	do, err := s.doRepo.FindByNumber(ctx, doNumber)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Kind: KindDeliveryOrder, Key: doNumber}
	}
	if err != nil {
		return nil, err
	}
	items, err := s.doRepo.FindItems(ctx, doNumber)
	if err != nil {
		return nil, err
	}
	do.Items = items
	return do, nil
}

var deliveryNoteHeaders = []string{"No.", "Item Code", "Description", "Width", "Length", "Qty"}

// ExportDeliveryNote 导出可打印的送货单
func (s *DeliveryService) ExportDeliveryNote(ctx context.Context, doNumber string) (*excelize.File, string, error) {
	do, err := s.GetDelivery(ctx, doNumber)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	sheet := "Delivery Order"
	f.SetSheetName("Sheet1", sheet)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	labelStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	f.MergeCell(sheet, "A1", "F1")
	f.SetCellValue(sheet, "A1", "DELIVERY ORDER")
	f.SetCellStyle(sheet, "A1", "F1", titleStyle)

	// 表头信息
	info := [][2]string{
		{"DO No.", do.DOClientNumber},
		{"Issue Date", do.IssueDate},
		{"JO No.", do.JONumber},
		{"Client", strings.TrimSpace(do.ClientCode + " " + do.ClientName)},
		{"Delivery Address", do.DeliveryAddress},
		{"Attn", do.ClientPIC},
		{"Contact", do.ClientContact},
		{"Client PO", strings.Join(do.ClientPOList, ", ")},
		{"Remark", do.Remark},
	}
	for i, kv := range info {
		row := i + 3
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), kv[0])
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.MergeCell(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("F%d", row))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), kv[1])
	}

	// 行项
	headerRow := len(info) + 4
	for i, h := range deliveryNoteHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s%d", col, headerRow)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}
	for i, item := range do.Items {
		row := headerRow + i + 1
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.ItemCode)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.ItemDescription)
		setQuantityCell(f, sheet, fmt.Sprintf("D%d", row), item.Width)
		setQuantityCell(f, sheet, fmt.Sprintf("E%d", row), item.Length)
		setQuantityCell(f, sheet, fmt.Sprintf("F%d", row), item.Qty)
	}

	// 签收栏
	signRow := headerRow + len(do.Items) + 3
	f.SetCellValue(sheet, fmt.Sprintf("A%d", signRow), "Received By")
	f.SetCellValue(sheet, fmt.Sprintf("D%d", signRow), "Date")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", signRow), fmt.Sprintf("F%d", signRow), labelStyle)

	colWidths := []float64{8, 16, 40, 10, 10, 10}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	s.logger.Debug("delivery note exported", zap.String("do_client_number", doNumber), zap.Int("items", len(do.Items)))
	filename := fmt.Sprintf("DeliveryOrder_%s.xlsx", do.DOClientNumber)
	return f, filename, nil
}

func setQuantityCell(f *excelize.File, sheet, cell string, q entity.Quantity) {
	if !q.Valid {
		return
	}
	v, _ := q.Decimal.Float64()
	f.SetCellValue(sheet, cell, v)
}
