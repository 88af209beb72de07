package models

import "time"

// Well-known configuration keys.
const (
	ConfigAdminEmail        = "admin_email"
	ConfigStoreName         = "store_name"
	ConfigHotline           = "hotline"
	ConfigFreeShipThreshold = "free_ship_threshold"
	ConfigLowStockThreshold = "low_stock_threshold"
)

type SystemConfig struct {
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
