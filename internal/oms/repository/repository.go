package repository

import (
	"errors"

	"github.com/bitfantasy/nimo-fab/internal/shared/sheet"
	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Tables 各表在存储中的位置
type Tables struct {
	JobOrders          string
	JobOrderItems      string
	DeliveryOrders     string
	DeliveryOrderItems string
	ClientMaster       string
	ItemMaster         string
}

// DefaultTables 默认表位置
func DefaultTables() Tables {
	return Tables{
		JobOrders:          "data/job_order.xlsx",
		JobOrderItems:      "data/job_order_items.xlsx",
		DeliveryOrders:     "data/delivery_order.xlsx",
		DeliveryOrderItems: "data/delivery_order_items.xlsx",
		ClientMaster:       "master/client_master.xlsx",
		ItemMaster:         "master/item_master.xlsx",
	}
}

// Repositories OMS仓库集合
type Repositories struct {
	Tables        Tables
	Store         *sheet.Store
	JobOrder      *JobOrderRepository
	DeliveryOrder *DeliveryOrderRepository
	Master        *MasterRepository
	TransitionLog *TransitionLogRepository // 未配置数据库时为 nil
}

// NewRepositories 创建OMS仓库集合，db 可为 nil
func NewRepositories(store *sheet.Store, tables Tables, db *gorm.DB) *Repositories {
	repos := &Repositories{
		Tables:        tables,
		Store:         store,
		JobOrder:      NewJobOrderRepository(store, tables),
		DeliveryOrder: NewDeliveryOrderRepository(store, tables),
		Master:        NewMasterRepository(store, tables),
	}
	if db != nil {
		repos.TransitionLog = NewTransitionLogRepository(db)
	}
	return repos
}
