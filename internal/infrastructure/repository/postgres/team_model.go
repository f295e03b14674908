package postgres

import "time"

type teamTableModel struct {
	ID        string    `db:"team_id"`
	Name      string    `db:"name"`
	Logo      string    `db:"logo"`
	Seed      int       `db:"seed"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	ID   string `db:"team_id"`
	Name string `db:"name"`
	Logo string `db:"logo"`
	Seed int    `db:"seed"`
}
