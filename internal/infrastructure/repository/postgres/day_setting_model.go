package postgres

import "time"

type daySettingTableModel struct {
	Day       int       `db:"day"`
	IsEnabled bool      `db:"is_enabled"`
	UpdatedAt time.Time `db:"updated_at"`
}

type daySettingInsertModel struct {
	Day       int  `db:"day"`
	IsEnabled bool `db:"is_enabled"`
}
