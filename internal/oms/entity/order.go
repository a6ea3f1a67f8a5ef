package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// JobOrder 工单（JO）
type JobOrder struct {
	ID               string   `json:"id"`
	JONumber         string   `json:"jo_number"`
	IssueDate        string   `json:"issue_date"`
	ClientPOList     []string `json:"client_po_list"`
	ClientCode       string   `json:"client_code"`
	ClientName       string   `json:"client_name"` // 创建时的客户名快照
	RequiredDate     string   `json:"required_date"`
	LocalExport      string   `json:"local_export"`
	Remark           string   `json:"remark"`
	DOToSupplierList []string `json:"do_to_supplier_list"`
	DOToClientNumber string   `json:"do_to_client_number"` // 确认前为空
	Status           string   `json:"status"`
	CompleteDate     string   `json:"complete_date"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`

	Items []JobOrderItem `json:"items,omitempty"`
}

// JobOrderItem 工单行项
type JobOrderItem struct {
	ID              string   `json:"id"`
	JONumber        string   `json:"jo_number"`
	ItemCode        string   `json:"item_code"`
	ItemDescription string   `json:"item_description"`
	Width           Quantity `json:"width"`
	Length          Quantity `json:"length"`
	Qty             Quantity `json:"qty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// DeliveryOrder 送货单（DO），由 JO 确认时生成
type DeliveryOrder struct {
	ID              string   `json:"id"`
	DOClientNumber  string   `json:"do_client_number"`
	IssueDate       string   `json:"issue_date"`
	JONumber        string   `json:"jo_number"`
	ClientCode      string   `json:"client_code"`
	ClientName      string   `json:"client_name"`
	DeliveryAddress string   `json:"delivery_address"`
	ClientPIC       string   `json:"client_pic"`
	ClientContact   string   `json:"client_contact"`
	ClientPOList    []string `json:"client_po_list"`
	Remark          string   `json:"remark"`
	Status          string   `json:"status"`
	CompleteDate    string   `json:"complete_date"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`

	Items []DeliveryOrderItem `json:"items,omitempty"`
}

// DeliveryOrderItem 送货单行项，确认时从 JO 行项原样复制
type DeliveryOrderItem struct {
	ID              string   `json:"id"`
	DOClientNumber  string   `json:"do_client_number"`
	ItemCode        string   `json:"item_code"`
	ItemDescription string   `json:"item_description"`
	Width           Quantity `json:"width"`
	Length          Quantity `json:"length"`
	Qty             Quantity `json:"qty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// ClientSnapshot 客户主数据快照
type ClientSnapshot struct {
	ClientCode      string `json:"client_code,omitempty"`
	ClientName      string `json:"client_name"`
	DeliveryAddress string `json:"delivery_address"`
	ClientPIC       string `json:"client_pic"`
	ClientContact   string `json:"client_contact"`
}

// ItemSnapshot 物料主数据快照
type ItemSnapshot struct {
	ItemCode        string `json:"item_code"`
	ItemDescription string `json:"item_description"`
}

// StringList 请求中的字符串列表，兼容单个字符串
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var single *string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == nil || strings.TrimSpace(*single) == "" {
		*l = nil
		return nil
	}
	*l = StringList{*single}
	return nil
}

// Code 客户/物料编码。表格导出的编码常是数字，JSON 数字按原文本接收
type Code string

func (c *Code) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Code(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("code must be a string or number: %s", data)
	}
	*c = Code(n.String())
	return nil
}
