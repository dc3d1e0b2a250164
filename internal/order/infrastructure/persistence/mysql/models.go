package mysql

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/shopping/internal/order/domain"
)

// OrderModel maps the orders table.
type OrderModel struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
	OrderID         string          `gorm:"column:order_id;type:varchar(36);uniqueIndex;not null"`
	CustomerID      string          `gorm:"column:customer_id;type:varchar(50);index;not null"`
	Status          string          `gorm:"column:status;type:varchar(20);index;not null"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:decimal(20,2);not null"`
	Shipping        decimal.Decimal `gorm:"column:shipping;type:decimal(20,2);not null"`
	Tax             decimal.Decimal `gorm:"column:tax;type:decimal(20,2);not null"`
	Total           decimal.Decimal `gorm:"column:total;type:decimal(20,2);not null"`
	Street          string          `gorm:"column:street;type:varchar(255)"`
	City            string          `gorm:"column:city;type:varchar(100)"`
	State           string          `gorm:"column:state;type:varchar(100)"`
	ZipCode         string          `gorm:"column:zip_code;type:varchar(20)"`
	Country         string          `gorm:"column:country;type:varchar(100)"`
	PaymentType     string          `gorm:"column:payment_type;type:varchar(20)"`
	PaymentDetails  string          `gorm:"column:payment_details;type:varchar(255)"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderRowID"`
}

func (OrderModel) TableName() string { return "orders" }

// OrderItemModel maps the order_items table. Rows are snapshots,
// frozen at order creation.
type OrderItemModel struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	OrderRowID  uint            `gorm:"column:order_row_id;index;not null"`
	ProductID   uint            `gorm:"column:product_id;not null"`
	ProductName string          `gorm:"column:product_name;type:varchar(255);not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:decimal(20,2);not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	Total       decimal.Decimal `gorm:"column:total;type:decimal(20,2);not null"`
}

func (OrderItemModel) TableName() string { return "order_items" }

func toOrderModel(o *domain.Order) *OrderModel {
	if o == nil {
		return nil
	}
	items := make([]OrderItemModel, 0, len(o.Items))
	for _, line := range o.Items {
		items = append(items, OrderItemModel{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
			Total:       line.Total,
		})
	}
	return &OrderModel{
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		OrderID:        o.OrderID,
		CustomerID:     o.CustomerID,
		Status:         string(o.Status),
		Subtotal:       o.Subtotal,
		Shipping:       o.Shipping,
		Tax:            o.Tax,
		Total:          o.Total,
		Street:         o.ShippingAddress.Street,
		City:           o.ShippingAddress.City,
		State:          o.ShippingAddress.State,
		ZipCode:        o.ShippingAddress.ZipCode,
		Country:        o.ShippingAddress.Country,
		PaymentType:    string(o.PaymentMethod.Type),
		PaymentDetails: o.PaymentMethod.Details,
		Items:          items,
	}
}

func toOrder(m *OrderModel) *domain.Order {
	if m == nil {
		return nil
	}
	lines := make([]domain.Line, 0, len(m.Items))
	for _, item := range m.Items {
		lines = append(lines, domain.Line{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Total:       item.Total,
		})
	}
	return &domain.Order{
		OrderID:    m.OrderID,
		CustomerID: m.CustomerID,
		Items:      lines,
		Status:     domain.Status(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		Subtotal:   m.Subtotal,
		Shipping:   m.Shipping,
		Tax:        m.Tax,
		Total:      m.Total,
		ShippingAddress: domain.Address{
			Street:  m.Street,
			City:    m.City,
			State:   m.State,
			ZipCode: m.ZipCode,
			Country: m.Country,
		},
		PaymentMethod: domain.PaymentMethod{
			Type:    domain.PaymentType(m.PaymentType),
			Details: m.PaymentDetails,
		},
	}
}
