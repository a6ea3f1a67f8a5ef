package repository

import (
	"github.com/bitfantasy/nimo-fab/internal/oms/entity"
	"github.com/bitfantasy/nimo-fab/internal/shared/sheet"
)

// 各表表头顺序
var (
	JobOrderColumns = []string{
		"id", "jo_number", "issue_date", "client_po_list", "client_code", "client_name",
		"required_date", "local_export", "remark", "do_to_supplier_list", "do_to_client_number",
		"status", "complete_date", "created_at", "updated_at",
	}
	JobOrderItemColumns = []string{
		"id", "jo_number", "item_code", "item_description", "width", "length", "qty",
		"created_at", "updated_at",
	}
	DeliveryOrderColumns = []string{
		"id", "do_client_number", "issue_date", "jo_number", "client_code", "client_name",
		"delivery_address", "client_pic", "client_contact", "client_po_list", "remark",
		"status", "complete_date", "created_at", "updated_at",
	}
	DeliveryOrderItemColumns = []string{
		"id", "do_client_number", "item_code", "item_description", "width", "length", "qty",
		"created_at", "updated_at",
	}
)

func jobOrderToRow(jo *entity.JobOrder) sheet.Row {
	return sheet.Row{
		"id":                  jo.ID,
		"jo_number":           jo.JONumber,
		"issue_date":          jo.IssueDate,
		"client_po_list":      sheet.EncodeList(jo.ClientPOList),
		"client_code":         jo.ClientCode,
		"client_name":         jo.ClientName,
		"required_date":       jo.RequiredDate,
		"local_export":        jo.LocalExport,
		"remark":              jo.Remark,
		"do_to_supplier_list": sheet.EncodeList(jo.DOToSupplierList),
		"do_to_client_number": jo.DOToClientNumber,
		"status":              jo.Status,
		"complete_date":       jo.CompleteDate,
		"created_at":          jo.CreatedAt,
		"updated_at":          jo.UpdatedAt,
	}
}

func rowToJobOrder(row sheet.Row) entity.JobOrder {
	return entity.JobOrder{
		ID:               row["id"],
		JONumber:         row["jo_number"],
		IssueDate:        row["issue_date"],
		ClientPOList:     sheet.DecodeList(row["client_po_list"]),
		ClientCode:       row["client_code"],
		ClientName:       row["client_name"],
		RequiredDate:     row["required_date"],
		LocalExport:      row["local_export"],
		Remark:           row["remark"],
		DOToSupplierList: sheet.DecodeList(row["do_to_supplier_list"]),
		DOToClientNumber: row["do_to_client_number"],
		Status:           row["status"],
		CompleteDate:     row["complete_date"],
		CreatedAt:        row["created_at"],
		UpdatedAt:        row["updated_at"],
	}
}

func jobOrderItemToRow(item *entity.JobOrderItem) sheet.Row {
	return sheet.Row{
		"id":               item.ID,
		"jo_number":        item.JONumber,
		"item_code":        item.ItemCode,
		"item_description": item.ItemDescription,
		"width":            item.Width.Cell(),
		"length":           item.Length.Cell(),
		"qty":              item.Qty.Cell(),
		"created_at":       item.CreatedAt,
		"updated_at":       item.UpdatedAt,
	}
}

func rowToJobOrderItem(row sheet.Row) entity.JobOrderItem {
	return entity.JobOrderItem{
		ID:              row["id"],
		JONumber:        row["jo_number"],
		ItemCode:        row["item_code"],
		ItemDescription: row["item_description"],
		Width:           entity.ParseQuantity(row["width"]),
		Length:          entity.ParseQuantity(row["length"]),
		Qty:             entity.ParseQuantity(row["qty"]),
		CreatedAt:       row["created_at"],
		UpdatedAt:       row["updated_at"],
	}
}

func deliveryOrderToRow(do *entity.DeliveryOrder) sheet.Row {
	return sheet.Row{
		"id":               do.ID,
		"do_client_number": do.DOClientNumber,
		"issue_date":       do.IssueDate,
		"jo_number":        do.JONumber,
		"client_code":      do.ClientCode,
		"client_name":      do.ClientName,
		"delivery_address": do.DeliveryAddress,
		"client_pic":       do.ClientPIC,
		"client_contact":   do.ClientContact,
		"client_po_list":   sheet.EncodeList(do.ClientPOList),
		"remark":           do.Remark,
		"status":           do.Status,
		"complete_date":    do.CompleteDate,
		"created_at":       do.CreatedAt,
		"updated_at":       do.UpdatedAt,
	}
}

func rowToDeliveryOrder(row sheet.Row) entity.DeliveryOrder {
	return entity.DeliveryOrder{
		ID:              row["id"],
		DOClientNumber:  row["do_client_number"],
		IssueDate:       row["issue_date"],
		JONumber:        row["jo_number"],
		ClientCode:      row["client_code"],
		ClientName:      row["client_name"],
		DeliveryAddress: row["delivery_address"],
		ClientPIC:       row["client_pic"],
		ClientContact:   row["client_contact"],
		ClientPOList:    sheet.DecodeList(row["client_po_list"]),
		Remark:          row["remark"],
		Status:          row["status"],
		CompleteDate:    row["complete_date"],
		CreatedAt:       row["created_at"],
		UpdatedAt:       row["updated_at"],
	}
}

func deliveryOrderItemToRow(item *entity.DeliveryOrderItem) sheet.Row {
	return sheet.Row{
		"id":               item.ID,
		"do_client_number": item.DOClientNumber,
		"item_code":        item.ItemCode,
		"item_description": item.ItemDescription,
		"width":            item.Width.Cell(),
		"length":           item.Length.Cell(),
		"qty":              item.Qty.Cell(),
		"created_at":       item.CreatedAt,
		"updated_at":       item.UpdatedAt,
	}
}

func rowToDeliveryOrderItem(row sheet.Row) entity.DeliveryOrderItem {
	return entity.DeliveryOrderItem{
		ID:              row["id"],
		DOClientNumber:  row["do_client_number"],
		ItemCode:        row["item_code"],
		ItemDescription: row["item_description"],
		Width:           entity.ParseQuantity(row["width"]),
		Length:          entity.ParseQuantity(row["length"]),
		Qty:             entity.ParseQuantity(row["qty"]),
		CreatedAt:       row["created_at"],
		UpdatedAt:       row["updated_at"],
	}
}
