package domain

import "time"

// PushSubscription stores a web-push endpoint. Delivery is performed by an
// external worker reading these rows; this service only records them.
type PushSubscription struct {
	ID        int64     `db:"id" json:"id"`
	PlayerID  int64     `db:"player_id" json:"-"`
	Endpoint  string    `db:"endpoint" json:"endpoint"`
	P256DH    string    `db:"p256dh" json:"p256dh"`
	AuthKey   string    `db:"auth_key" json:"auth_key"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NotificationPrefs is the per-category opt-in set.
type NotificationPrefs struct {
	PlayerID   int64 `db:"player_id" json:"-"`
	Production bool  `db:"production" json:"production"`
	Market     bool  `db:"market" json:"market"`
	Coven      bool  `db:"coven" json:"coven"`
	Daily      bool  `db:"daily" json:"daily"`
}
