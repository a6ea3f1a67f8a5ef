package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bitfantasy/nimo-fab/internal/oms/entity"
	"github.com/bitfantasy/nimo-fab/internal/oms/repository"
	"github.com/bitfantasy/nimo-fab/internal/shared/sheet"
	"go.uber.org/zap"
)

// OrderService 工单创建与确认
type OrderService struct {
	repos  *repository.Repositories
	master *MasterService
	audit  *auditor
	logger *zap.Logger
	now    Clock
}

func NewOrderService(repos *repository.Repositories, master *MasterService, audit *auditor, logger *zap.Logger) *OrderService {
	return &OrderService{
		repos:  repos,
		master: master,
		audit:  audit,
		logger: logger,
		now:    time.Now,
	}
}

// CreateOrderRequest 创建工单请求
type CreateOrderRequest struct {
	ClientCode       entity.Code       `json:"client_code"`
	ClientName       string            `json:"client_name"`
	ClientPOList     entity.StringList `json:"client_po_list"`
	DOToSupplierList entity.StringList `json:"do_to_supplier_list"`
	RequiredDate     string            `json:"required_date"`
	LocalExport      string            `json:"local_export"`
	Remark           string            `json:"remark"`
	Items            []CreateOrderItem `json:"items"`
}

// CreateOrderItem 工单行项请求
type CreateOrderItem struct {
	ItemCode        entity.Code     `json:"item_code"`
	ItemDescription string          `json:"item_description"`
	Width           entity.Quantity `json:"width"`
	Length          entity.Quantity `json:"length"`
	Qty             entity.Quantity `json:"qty"`
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func (req *CreateOrderRequest) validate() error {
	if blank(string(req.ClientCode)) {
		return &ValidationError{Field: "client_code"}
	}
	if len(req.Items) == 0 {
		return &ValidationError{Field: "items"}
	}
	if blank(req.RequiredDate) {
		return &ValidationError{Field: "required_date"}
	}
	if blank(req.LocalExport) {
		return &ValidationError{Field: "local_export"}
	}
	return nil
}

func validateItems(items []CreateOrderItem) error {
	for i, item := range items {
		if blank(string(item.ItemCode)) {
			return &ValidationError{Field: fmt.Sprintf("items[%d].item_code", i+1)}
		}
		if !item.Qty.Valid {
			return &ValidationError{Field: fmt.Sprintf("items[%d].qty", i+1)}
		}
	}
	return nil
}

// CreateDraft 创建工单草稿（Preparing）
func (s *OrderService) CreateDraft(ctx context.Context, operator string, req *CreateOrderRequest) (*entity.JobOrder, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	client, err := s.master.ResolveClient(ctx, string(req.ClientCode))
	if err != nil {
		return nil, err
	}
	clientName := req.ClientName
	if clientName == "" {
		clientName = client.ClientName
	}

	if err := validateItems(req.Items); err != nil {
		return nil, err
	}
	descriptions := make([]string, len(req.Items))
	for i, item := range req.Items {
		descriptions[i] = item.ItemDescription
		if descriptions[i] == "" {
			descriptions[i] = s.master.ItemDescription(ctx, string(item.ItemCode))
		}
	}

	var jo *entity.JobOrder
	tables := s.repos.Tables
	err = s.repos.Store.Transaction(ctx, func(tx *sheet.Tx) error {
		joRepo := s.repos.JobOrder.WithTx(tx)
		now := s.now()
		number, err := joRepo.GenerateNumber(ctx, now)
		if err != nil {
			return fmt.Errorf("生成JO编号失败: %w", err)
		}

		ts := now.Format(timestampLayout)
		jo = &entity.JobOrder{
			ID:               "jo-" + number,
			JONumber:         number,
			IssueDate:        now.Format(dateLayout),
			ClientPOList:     nonNil(req.ClientPOList),
			ClientCode:       string(req.ClientCode),
			ClientName:       clientName,
			RequiredDate:     req.RequiredDate,
			LocalExport:      req.LocalExport,
			Remark:           req.Remark,
			DOToSupplierList: nonNil(req.DOToSupplierList),
			Status:           entity.StatusPreparing,
			CreatedAt:        ts,
			UpdatedAt:        ts,
		}
		for i, item := range req.Items {
			jo.Items = append(jo.Items, entity.JobOrderItem{
				ID:              fmt.Sprintf("jo-%s-item-%d", number, i+1),
				JONumber:        number,
				ItemCode:        string(item.ItemCode),
				ItemDescription: descriptions[i],
				Width:           item.Width,
				Length:          item.Length,
				Qty:             item.Qty,
				CreatedAt:       ts,
				UpdatedAt:       ts,
			})
		}
		return joRepo.Create(ctx, jo)
	}, tables.JobOrders, tables.JobOrderItems)
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, &entity.TransitionLog{
		EntityID:    jo.JONumber,
		Event:       entity.EventCreate,
		ToState:     entity.StatusPreparing,
		TriggeredBy: operator,
	})
	return jo, nil
}

// ConfirmResult 确认工单的结果
type ConfirmResult struct {
	JONumber       string                     `json:"jo_number"`
	DOClientNumber string                     `json:"do_client_number"`
	ClientSnapshot entity.ClientSnapshot      `json:"client_snapshot"`
	Status         string                     `json:"status"`
	Items          []entity.DeliveryOrderItem `json:"items"`
}

// Confirm 确认工单：生成送货单并复制行项，工单进入 Delivering
func (s *OrderService) Confirm(ctx context.Context, operator, joNumber string) (*ConfirmResult, error) {
	var result *ConfirmResult
	tables := s.repos.Tables
	err := s.repos.Store.Transaction(ctx, func(tx *sheet.Tx) error {
		joRepo := s.repos.JobOrder.WithTx(tx)
		doRepo := s.repos.DeliveryOrder.WithTx(tx)

		jo, err := joRepo.FindByNumber(ctx, joNumber)
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Kind: KindJobOrder, Key: joNumber}
		}
		if err != nil {
			return err
		}
		next, ok := entity.NextStatus(jo.Status, entity.EventConfirm)
		if !ok {
			return &TransitionError{JONumber: joNumber, Status: jo.Status, Event: entity.EventConfirm}
		}

		client, err := s.master.ResolveClient(ctx, jo.ClientCode)
		if err != nil {
			return err
		}

		now := s.now()
		doNumber, err := doRepo.GenerateNumber(ctx, now)
		if err != nil {
			return fmt.Errorf("生成DO编号失败: %w", err)
		}
		ts := now.Format(timestampLayout)

		joItems, err := joRepo.FindItems(ctx, joNumber)
		if err != nil {
			return err
		}

		do := &entity.DeliveryOrder{
			ID:              "do-" + doNumber,
			DOClientNumber:  doNumber,
			IssueDate:       now.Format(dateLayout),
			JONumber:        jo.JONumber,
			ClientCode:      jo.ClientCode,
			ClientName:      client.ClientName,
			DeliveryAddress: client.DeliveryAddress,
			ClientPIC:       client.ClientPIC,
			ClientContact:   client.ClientContact,
			ClientPOList:    jo.ClientPOList,
			Remark:          jo.Remark,
			Status:          next,
			CreatedAt:       ts,
			UpdatedAt:       ts,
		}
		do.Items = make([]entity.DeliveryOrderItem, 0, len(joItems))
		for i, item := range joItems {
			do.Items = append(do.Items, entity.DeliveryOrderItem{
				ID:              fmt.Sprintf("do-%s-item-%d", doNumber, i+1),
				DOClientNumber:  doNumber,
				ItemCode:        item.ItemCode,
				ItemDescription: item.ItemDescription,
				Width:           item.Width,
				Length:          item.Length,
				Qty:             item.Qty,
				CreatedAt:       ts,
				UpdatedAt:       ts,
			})
		}

		jo.Status = next
		jo.DOToClientNumber = doNumber
		jo.UpdatedAt = ts
		if err := joRepo.Update(ctx, jo); err != nil {
			return err
		}
		if err := doRepo.Create(ctx, do); err != nil {
			return err
		}

		result = &ConfirmResult{
			JONumber:       jo.JONumber,
			DOClientNumber: doNumber,
			ClientSnapshot: *client,
			Status:         next,
			Items:          do.Items,
		}
		return nil
	}, tables.JobOrders, tables.JobOrderItems, tables.DeliveryOrders, tables.DeliveryOrderItems)
	if err != nil {
		return nil, err
	}

	s.audit.record(ctx, &entity.TransitionLog{
		EntityID:    joNumber,
		Event:       entity.EventConfirm,
		FromState:   entity.StatusPreparing,
		ToState:     result.Status,
		TriggeredBy: operator,
		Detail:      result.DOClientNumber,
	})
	return result, nil
}

// GetOrder 获取工单详情（含行项）
func (s *OrderService) GetOrder(ctx context.Context, joNumber string) (*entity.JobOrder, error) {
	jo, err := s.repos.JobOrder.FindByNumber(ctx, joNumber)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Kind: KindJobOrder, Key: joNumber}
	}
	if err != nil {
		return nil, err
	}
	items, err := s.repos.JobOrder.FindItems(ctx, joNumber)
	if err != nil {
		return nil, err
	}
	jo.Items = items
	return jo, nil
}

// History 工单状态变更记录；未配置审计数据库时返回空列表
func (s *OrderService) History(ctx context.Context, joNumber string) ([]entity.TransitionLog, error) {
	if _, err := s.GetOrder(ctx, joNumber); err != nil {
		return nil, err
	}
	if s.repos.TransitionLog == nil {
		return []entity.TransitionLog{}, nil
	}
	return s.repos.TransitionLog.ListByJONumber(ctx, joNumber)
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
