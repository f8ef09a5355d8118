package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden de venta.
const (
	SalesOrderStatusOpen         = "Open"
	SalesOrderStatusConfirmed    = "Confirmed"
	SalesOrderStatusInProduction = "In Production"
	SalesOrderStatusShipped      = "Shipped"
	SalesOrderStatusCompleted    = "Completed"
	SalesOrderStatusCancelled    = "Cancelled"
)

// OpenSalesOrderStatuses estados cuya demanda aún no se ha despachado.
var OpenSalesOrderStatuses = []string{
	SalesOrderStatusOpen,
	SalesOrderStatusConfirmed,
	SalesOrderStatusInProduction,
}

// SalesOrderDemand una línea de orden de venta unida con su cabecera, la parte y el cliente.
type SalesOrderDemand struct {
	LineID       string
	SONumber     string
	CustomerName string
	Status       string
	DeliveryDate time.Time
	PartID       string
	PartNumber   string
	PartName     string
	Quantity     decimal.Decimal
}
