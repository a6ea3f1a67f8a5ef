package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/bitfantasy/nimo-fab/internal/oms/repository"
)

// DashboardService 工单看板
type DashboardService struct {
	joRepo *repository.JobOrderRepository
	now    Clock
}

func NewDashboardService(joRepo *repository.JobOrderRepository) *DashboardService {
	return &DashboardService{joRepo: joRepo, now: time.Now}
}

// ListOrdersQuery 看板筛选条件，月或年缺省时取当前日期
type ListOrdersQuery struct {
	Month  string `form:"month"`
	Year   string `form:"year"`
	Status string `form:"status"`
}

// OrderSummary 看板行
type OrderSummary struct {
	IssueDate         string `json:"issue_date"`
	JONumber          string `json:"jo_number"`
	ClientPOList      string `json:"client_po_list"`
	ClientCode        string `json:"client_code"`
	ClientName        string `json:"client_name"`
	RequiredDate      string `json:"required_date"`
	DOToSupplierFirst string `json:"do_to_supplier_first"`
	DOClientNumber    string `json:"do_client_number"`
	Status            string `json:"status"`
	CompleteDate      string `json:"complete_date"`
}

// ListOrders 按签发月份和状态筛选工单，保持表内顺序
func (s *DashboardService) ListOrders(ctx context.Context, q ListOrdersQuery) ([]OrderSummary, error) {
	month, year := q.Month, q.Year
	if month == "" || year == "" {
		today := s.now()
		if month == "" {
			month = strconv.Itoa(int(today.Month()))
		}
		if year == "" {
			year = strconv.Itoa(today.Year())
		}
	}

	results := make([]OrderSummary, 0)
	wantMonth, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil {
		return results, nil
	}
	wantYear, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return results, nil
	}

	orders, err := s.joRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, jo := range orders {
		y, m, ok := issueYearMonth(jo.IssueDate)
		if !ok || y != wantYear || m != wantMonth {
			continue
		}
		if q.Status != "" && jo.Status != q.Status {
			continue
		}
		supplierFirst := ""
		if len(jo.DOToSupplierList) > 0 {
			supplierFirst = jo.DOToSupplierList[0]
		}
		results = append(results, OrderSummary{
			IssueDate:         jo.IssueDate,
			JONumber:          jo.JONumber,
			ClientPOList:      strings.Join(jo.ClientPOList, ", "),
			ClientCode:        jo.ClientCode,
			ClientName:        jo.ClientName,
			RequiredDate:      jo.RequiredDate,
			DOToSupplierFirst: supplierFirst,
			DOClientNumber:    jo.DOToClientNumber,
			Status:            jo.Status,
			CompleteDate:      jo.CompleteDate,
		})
	}
	return results, nil
}

// issueYearMonth 取 issue_date 按 "-" 分割后的前两段
func issueYearMonth(value string) (year, month int, ok bool) {
	parts := strings.Split(value, "-")
	if len(parts) < 2 {
		return 0, 0, false
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	month, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	return year, month, true
}
